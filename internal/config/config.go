package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

const (
	DefaultDepth = 50
	DefaultWidth = 50
	DefaultSteps = 500
	DefaultFPS   = 10
)

type Config struct {
	Depth int   `yaml:"depth"`
	Width int   `yaml:"width"`
	Steps int   `yaml:"steps"`
	Seed  int64 `yaml:"seed"`
	FPS   int   `yaml:"fps"`
}

func DefaultConfig() *Config {
	return &Config{
		Depth: DefaultDepth,
		Width: DefaultWidth,
		Steps: DefaultSteps,
		FPS:   DefaultFPS,
	}
}

// Load reads a yaml config. Keys missing from the file keep their defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	cfg := DefaultConfig()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse %s: %w", path, err)
	}
	return cfg, nil
}

func Save(path string, cfg *Config) error {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
