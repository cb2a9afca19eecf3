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

type Application struct {
	Listen   string   `koanf:"listen"`
	Frontend Frontend `koanf:"frontend"`
	Store    Store    `koanf:"store"`
	Form     Form     `koanf:"form"`
	Week     Week     `koanf:"week"`
	Google   Google   `koanf:"google"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Store selects and configures the remote event store backend.
// Provider is either "rest" or "google".
type Store struct {
	Provider string `koanf:"provider"`
	BaseURL  string `koanf:"baseurl"`
	Token    string `koanf:"token"`
}

// Form configures the event creation form. TimeIncrementMinutes controls the
// granularity of the start/end time option set and must be 15 or 30.
type Form struct {
	TimeIncrementMinutes int `koanf:"timeincrementminutes"`
}

type Week struct {
	// FirstDay is 0 (Sunday) through 6 (Saturday).
	FirstDay int `koanf:"firstday"`
}

type Google struct {
	ClientId     string `koanf:"clientid"`
	ClientSecret string `koanf:"clientsecret"`
	CalendarId   string `koanf:"calendarid"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Listen: ":8181",
		Frontend: Frontend{
			Enabled: true,
		},
		Store: Store{
			Provider: "rest",
			BaseURL:  "http://localhost:4000",
		},
		Form: Form{
			TimeIncrementMinutes: 15,
		},
		Week: Week{
			FirstDay: 0,
		},
	}, "koanf"), nil)
	if err != nil {
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

	err = k.Load(env.Provider(".", env.Opt{
		Prefix: "CALEVENTS_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "CALEVENTS_")), "_", ".")
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
