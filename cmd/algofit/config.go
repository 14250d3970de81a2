package main

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// runConfig mirrors the command-line flags so a run can be described by a
// YAML file. Explicitly set flags take precedence over file values.
type runConfig struct {
	Input       string `yaml:"input"`
	GroundTruth string `yaml:"gt"`
	Adjustable  string `yaml:"adjustable"`

	LossFunction string  `yaml:"lossfunction"`
	LearningRate float64 `yaml:"learningrate"`
	Sensitivity  float64 `yaml:"sensitivity"`
	Iterations   int     `yaml:"iterations"`
	StreakLimit  int     `yaml:"streaklimit"`

	SampleRate float64 `yaml:"samplerate"`
	BlockSize  int     `yaml:"blocksize"`

	CSVPath string `yaml:"csv"`
	Quiet   bool   `yaml:"quiet"`
}

func defaultRunConfig() runConfig {
	return runConfig{
		LossFunction: "l2",
		LearningRate: 0.1,
		Sensitivity:  1e-4,
		Iterations:   1000,
		StreakLimit:  20,
		SampleRate:   48000,
		BlockSize:    1024,
		CSVPath:      "loss.csv",
	}
}

// loadRunConfig reads a YAML run file over the defaults.
func loadRunConfig(path string) (runConfig, error) {
	cfg := defaultRunConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("read config file: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse config file %s: %w", path, err)
	}
	return cfg, nil
}
