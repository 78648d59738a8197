package emi

import (
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRolloverJob_Run(t *testing.T) {
	teardown := setup(t)
	defer teardown()

	// given
	created, err := service.Create(ctx, homeLoan())
	require.NoError(t, err)
	_, err = service.MarkPaid(ctx, created.Id)
	require.NoError(t, err)
	clock.SetNow(time.Date(2024, 7, 20, 0, 0, 0, 0, time.UTC))

	// when
	NewRolloverJob(service).Run()

	// then
	stored, err := repoStub.Get(ctx, 1, created.Id)
	require.NoError(t, err)
	assert.Equal(t, Active, stored.Status)
	assert.Equal(t, day(time.August, 15), stored.NextDueDate)
}

func TestRolloverJob_Schedule(t *testing.T) {
	job := NewRolloverJob(service)
	c := cron.New()

	assert.NoError(t, job.Schedule(c, "@daily"))
	assert.Len(t, c.Entries(), 1)
	assert.Error(t, job.Schedule(c, "not a cron spec"))
}
