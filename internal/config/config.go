package config

import (
	"os"
	"strings"
	"time"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env/v2"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/providers/structs"
	"github.com/knadh/koanf/v2"
	log "github.com/sirupsen/logrus"
)

type Application struct {
	Host      string    `koanf:"host"`
	Frontend  Frontend  `koanf:"frontend"`
	Storage   Storage   `koanf:"storage"`
	Schedule  Schedule  `koanf:"schedule"`
	Calendar  Calendar  `koanf:"calendar"`
	Countdown Countdown `koanf:"countdown"`
}

type Frontend struct {
	Enabled bool `koanf:"enabled"`
}

// Storage selects the key-value backend that persists the fan data.
type Storage struct {
	// Backend is one of "postgres", "redis", "memory".
	Backend  string   `koanf:"backend"`
	Postgres Postgres `koanf:"postgres"`
	Redis    Redis    `koanf:"redis"`
}

type Postgres struct {
	Host   string `koanf:"host"`
	Port   int    `koanf:"port"`
	User   string `koanf:"user"`
	Pass   string `koanf:"pass"`
	Name   string `koanf:"name"`
	Schema string `koanf:"schema"`
}

type Redis struct {
	Addr string `koanf:"addr"`
	Pass string `koanf:"pass"`
	DB   int    `koanf:"db"`
}

type Schedule struct {
	// MaxEvents caps the stored schedule; oldest events beyond the cap are
	// dropped on save.
	MaxEvents int `koanf:"maxevents"`
}

type Calendar struct {
	// WeekStart is the weekday the calendar grid starts on ("sunday" or "monday").
	WeekStart string `koanf:"weekstart"`
}

// WeekStartDay maps the configured week start to a time.Weekday.
// Anything other than "monday" falls back to Sunday.
func (c Calendar) WeekStartDay() time.Weekday {
	if strings.EqualFold(c.WeekStart, "monday") {
		return time.Monday
	}
	return time.Sunday
}

type Countdown struct {
	// Birthday is the countdown target date in YYYY-MM-DD (midnight local time).
	Birthday string `koanf:"birthday"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Frontend: Frontend{
			Enabled: true,
		},
		Storage: Storage{
			Backend: "postgres",
			Postgres: Postgres{
				Host:   "localhost",
				Port:   5432,
				User:   "oshilog",
				Pass:   "",
				Name:   "oshilog",
				Schema: "oshilog",
			},
			Redis: Redis{
				Addr: "localhost:6379",
			},
		},
		Schedule: Schedule{
			MaxEvents: 50,
		},
		Calendar: Calendar{
			WeekStart: "sunday",
		},
		Countdown: Countdown{
			Birthday: "2026-04-06",
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
		Prefix: "OSHILOG_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "OSHILOG_")), "_", ".")
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
