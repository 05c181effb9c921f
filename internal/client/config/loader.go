package config

import (
	"fmt"
	"os"

	"github.com/dmitrijs2005/docmind/internal/flagx"
	"github.com/ilyakaznacheev/cleanenv"
)

// Load builds a Config from, in increasing precedence: env-default tags, an
// optional config file, environment variables and command-line flags found in
// args (usually os.Args[1:]).
func Load(args []string) (*Config, error) {
	var cfg Config

	if path := flagx.ConfigPath(args); path != "" {
		if err := cleanenv.ReadConfig(path, &cfg); err != nil {
			return nil, fmt.Errorf("config: read %s: %w", path, err)
		}
	} else if err := cleanenv.ReadEnv(&cfg); err != nil {
		return nil, fmt.Errorf("config: read env: %w", err)
	}

	if err := parseFlags(&cfg, args); err != nil {
		return nil, fmt.Errorf("config: flags: %w", err)
	}

	cfg.normalize()

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config: validate: %w", err)
	}
	return &cfg, nil
}

// LoadConfig is Load over the process arguments.
func LoadConfig() (*Config, error) {
	return Load(os.Args[1:])
}
