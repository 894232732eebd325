// internal/config/config.go
package config

import (
	"fmt"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v3"
)

// Env holds settings taken from SEQGEOM_* environment variables.
type Env struct {
	Logging LogConfig
	Xform   XformConfig
}

// LogConfig holds logging configuration.
type LogConfig struct {
	Level       string `envconfig:"SEQGEOM_LOG_LEVEL" default:"info"`
	Development bool   `envconfig:"SEQGEOM_LOG_DEV" default:"false"`
}

// XformConfig tunes the streaming transform.
type XformConfig struct {
	WriteBuffer   int    `envconfig:"SEQGEOM_WRITE_BUFFER" default:"262144"`
	TempDir       string `envconfig:"SEQGEOM_TMPDIR"`
	ProgressEvery uint64 `envconfig:"SEQGEOM_PROGRESS_EVERY" default:"0"`
}

// Load reads the environment.
func Load() (*Env, error) {
	var cfg Env
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}
	if cfg.Xform.WriteBuffer <= 0 {
		return nil, fmt.Errorf("failed to load config: SEQGEOM_WRITE_BUFFER must be > 0")
	}
	return &cfg, nil
}

// LoadOrDefault loads configuration from environment or returns default.
func LoadOrDefault() *Env {
	cfg, err := Load()
	if err != nil {
		return Default()
	}
	return cfg
}

// Default returns default configuration.
func Default() *Env {
	return &Env{
		Logging: LogConfig{
			Level:       "info",
			Development: false,
		},
		Xform: XformConfig{
			WriteBuffer: 256 << 10,
		},
	}
}

// Manifest is a YAML description of one transform run. Every field can be
// overridden on the command line.
type Manifest struct {
	Geometry string   `yaml:"geometry"`
	Read1    []string `yaml:"read1"`
	Read2    []string `yaml:"read2"`
	Output1  string   `yaml:"output1"`
	Output2  string   `yaml:"output2"`
	Stats    string   `yaml:"stats"`
}

// LoadManifest reads a run manifest. Unknown keys are rejected.
func LoadManifest(path string) (*Manifest, error) {
	fh, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("manifest: %w", err)
	}
	defer fh.Close()

	dec := yaml.NewDecoder(fh)
	dec.KnownFields(true)
	var m Manifest
	if err := dec.Decode(&m); err != nil {
		return nil, fmt.Errorf("manifest %s: %w", path, err)
	}
	return &m, nil
}
