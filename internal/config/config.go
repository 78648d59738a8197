package config

import (
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

const envPrefix = "FINBOARD_"

type Application struct {
	Host      string    `koanf:"host"`
	Port      int       `koanf:"port"`
	Database  Database  `koanf:"db"`
	Currency  Currency  `koanf:"currency"`
	Scheduler Scheduler `koanf:"scheduler"`
	Metrics   Metrics   `koanf:"metrics"`
}

type Database struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

// Currency is the single display currency of the dashboard.
type Currency struct {
	Code   string `koanf:"code"`
	Locale string `koanf:"locale"`
}

type Scheduler struct {
	Enabled bool `koanf:"enabled"`
	// EMIRollover is a cron spec for reactivating paid EMI reminders.
	EMIRollover string `koanf:"emirollover"`
}

type Metrics struct {
	Enabled bool `koanf:"enabled"`
}

func Defaults() Application {
	return Application{
		Host: "http://localhost:3000",
		Port: 8181,
		Database: Database{
			Host:   "localhost",
			Port:   5432,
			User:   "finboard",
			Pass:   "",
			Name:   "finboard",
			Schema: "finboard",
		},
		Currency: Currency{
			Code:   "INR",
			Locale: "en-IN",
		},
		Scheduler: Scheduler{
			Enabled:     true,
			EMIRollover: "@daily",
		},
		Metrics: Metrics{
			Enabled: true,
		},
	}
}

// Load layers the defaults, the optional YAML file at path and FINBOARD_*
// environment variables (FINBOARD_DB_HOST sets db.host).
func Load(path string) (Application, error) {
	var k = koanf.New(".")

	if err := k.Load(structs.Provider(Defaults(), "koanf"), nil); err != nil {
		log.Errorf("error loading config from structs: %v", err)
		return Application{}, err
	}

	if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
		if os.IsNotExist(err) {
			log.Infof("Config file not found at %s, using defaults and environment variables", path)
		} else {
			log.Errorf("error loading config from YAML: %v", err)
			return Application{}, err
		}
	} else {
		log.Infof("Loaded configuration from file: %s", path)
	}

	err := k.Load(env.Provider(".", env.Opt{
		Prefix: envPrefix,
		TransformFunc: func(k, v string) (string, any) {
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, envPrefix)), "_", ".")
			return k, v
		},
	}), nil)
	if err != nil {
		log.Errorf("error loading config from envs: %v", err)
		return Application{}, err
	}

	var app Application
	if err := k.Unmarshal("", &app); err != nil {
		return Application{}, err
	}

	return app, nil
}
