package emi

import (
	"context"

	"github.com/robfig/cron/v3"
	log "github.com/sirupsen/logrus"
)

// RolloverJob periodically persists the paid-cycle rollover that reads
// already apply on the fly.
type RolloverJob struct {
	service Service
}

func NewRolloverJob(service Service) *RolloverJob {
	return &RolloverJob{service: service}
}

func (j *RolloverJob) Run() {
	count, err := j.service.RollOver(context.Background())
	if err != nil {
		log.Errorf("Error rolling over paid EMI reminders: %v", err)
	}
	if count > 0 {
		log.Infof("Rolled over %d paid EMI reminders", count)
	}
}

// Schedule registers the job on c using a standard cron spec or descriptor
// such as "@daily".
func (j *RolloverJob) Schedule(c *cron.Cron, spec string) error {
	_, err := c.AddJob(spec, j)
	return err
}
