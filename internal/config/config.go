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
	Host           string         `koanf:"host"`
	Database       Database       `koanf:"db"`
	Budget         BudgetPolicy   `koanf:"budget"`
	Recommendation Recommendation `koanf:"recommendation"`
}

type Database struct {
	Path string `koanf:"path"`
}

// BudgetPolicy holds the tunable thresholds used by the budget status
// classifier and the alert generator. Threshold values are percentages.
type BudgetPolicy struct {
	WarningThreshold   float64 `koanf:"warningthreshold"`
	ExceededThreshold  float64 `koanf:"exceededthreshold"`
	AggregationWorkers int     `koanf:"aggregationworkers"`
}

// Recommendation holds the tunable knobs of the recommendation engine.
type Recommendation struct {
	WindowMonths     int     `koanf:"windowmonths"`
	TrendSampleSize  int     `koanf:"trendsamplesize"`
	Limit            int     `koanf:"limit"`
	IncreasingBand   float64 `koanf:"increasingband"`
	DecreasingBand   float64 `koanf:"decreasingband"`
	IncreasingBuffer float64 `koanf:"increasingbuffer"`
	DecreasingBuffer float64 `koanf:"decreasingbuffer"`
	StableBuffer     float64 `koanf:"stablebuffer"`
	MinConfidence    float64 `koanf:"minconfidence"`
	MaxConfidence    float64 `koanf:"maxconfidence"`
}

func Load(path string) (Application, error) {
	var k = koanf.New(".")

	err := k.Load(structs.Provider(Application{
		Host: "http://localhost:3000",
		Database: Database{
			Path: "pennywise.db",
		},
		Budget: BudgetPolicy{
			WarningThreshold:   80,
			ExceededThreshold:  100,
			AggregationWorkers: 4,
		},
		Recommendation: Recommendation{
			WindowMonths:     3,
			TrendSampleSize:  10,
			Limit:            6,
			IncreasingBand:   1.1,
			DecreasingBand:   0.9,
			IncreasingBuffer: 1.15,
			DecreasingBuffer: 1.05,
			StableBuffer:     1.10,
			MinConfidence:    50,
			MaxConfidence:    95,
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
		Prefix: "PENNYWISE_",
		TransformFunc: func(k, v string) (string, any) {
			// Transform the key.
			k = strings.ReplaceAll(strings.ToLower(strings.TrimPrefix(k, "PENNYWISE_")), "_", ".")
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
