package config

import (
	"fmt"
	"os"

	"github.com/ilyakaznacheev/cleanenv"
)

// PathEnvs name the config file, checked in order when Load gets no path.
var PathEnvs = []string{"BITVOYAGER_CONFIG", "CONFIG_PATH"}

// Load reads configuration from a YAML file and environment variables.
// Priority: ENV > YAML > defaults (via env-default tags).
// An empty path falls back to PathEnvs; with neither set, configuration
// comes from ENV and defaults only. A named file must exist.
func Load(path string) (*Config, error) {
	if path == "" {
		path = pathFromEnv()
	}

	var cfg Config
	if path != "" {
		if _, err := os.Stat(path); err != nil {
			return nil, fmt.Errorf("config: file %s: %w", path, err)
		}
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

func pathFromEnv() string {
	for _, env := range PathEnvs {
		if p := os.Getenv(env); p != "" {
			return p
		}
	}
	return ""
}
