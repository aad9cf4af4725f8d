// Package config handles run configuration loading and validation.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Defaults match the most common DJI capture setup: NTSC video sampled
// at five frames per second.
const (
	DefaultSourceFPS     = 29.97
	DefaultExtractionFPS = 5.0
)

// Config holds the parameters of one geotagging run.
type Config struct {
	// Dir is the directory scanned for DJI frames and SRT tracks.
	Dir string `yaml:"dir,omitempty"`

	// SourceFPS is the native frame rate of the recorded video. It is
	// operator context only (extraction ratio display); frame timing is
	// governed entirely by ExtractionFPS.
	SourceFPS float64 `yaml:"source_fps,omitempty"`

	// ExtractionFPS is the rate at which frames were sampled from the
	// video. Frame N's timestamp is (N-1)/ExtractionFPS seconds.
	ExtractionFPS float64 `yaml:"extraction_fps,omitempty"`
}

// Default returns a configuration populated with the standard DJI values.
func Default() Config {
	return Config{
		Dir:           ".",
		SourceFPS:     DefaultSourceFPS,
		ExtractionFPS: DefaultExtractionFPS,
	}
}

// Load reads and parses the YAML configuration file from the specified path.
// Fields absent from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("parse %s: %w", path, err)
	}
	if cfg.Dir == "" {
		cfg.Dir = "."
	}

	return cfg, nil
}

// Validate rejects frame rates that would break timestamp computation.
// A validation error is fatal for the whole run.
func (c Config) Validate() error {
	if c.SourceFPS <= 0 {
		return fmt.Errorf("source_fps must be positive, got %g", c.SourceFPS)
	}
	if c.ExtractionFPS <= 0 {
		return fmt.Errorf("extraction_fps must be positive, got %g", c.ExtractionFPS)
	}
	return nil
}

// ExtractionRatio reports how many source frames lie between two extracted
// frames, for operator display only.
func (c Config) ExtractionRatio() float64 {
	return c.SourceFPS / c.ExtractionFPS
}
