package config

import (
	"errors"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

// Load builds a Config by layering, low to high precedence:
//  1. defaults (New())
//  2. YAML file named by UMASCAN_CONFIG, if set
//  3. environment variables with the UMASCAN_ prefix
func Load() (*Config, error) {
	base := New()

	k := koanf.New(".")

	if path := os.Getenv("UMASCAN_CONFIG"); path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, err
		}
	}

	// UMASCAN_MATCH_THRESHOLD -> match_threshold, preserving underscores
	// to line up with the koanf tags on Config.
	envProvider := env.Provider("UMASCAN_", ".", func(s string) string {
		s = strings.ToLower(s)
		return strings.TrimPrefix(s, "umascan_")
	})
	if err := k.Load(envProvider, nil); err != nil {
		return nil, err
	}

	cfg := *base
	if err := k.UnmarshalWithConf("", &cfg, koanf.UnmarshalConf{Tag: "koanf"}); err != nil {
		return nil, err
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	if c.ScaleMin <= 0 || c.ScaleMax <= c.ScaleMin {
		return errors.New("scale search bounds must satisfy 0 < scale_min < scale_max")
	}
	if c.ScaleIterations < 1 {
		return errors.New("scale_iterations must be at least 1")
	}
	if c.MatchThreshold < 0 || c.MatchThreshold > 1 {
		return errors.New("match_threshold must be in [0,1]")
	}
	if c.SkillThreshold < 0 || c.SkillThreshold > 1 {
		return errors.New("skill_threshold must be in [0,1]")
	}
	return nil
}
