// Package config loads the declarative bootstrap description (risk modules
// and capital pools) a protocol.Protocol is seeded with at startup.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Load reads a Bootstrap from path. The format is chosen by file extension:
// .toml decodes with BurntSushi/toml, .yaml/.yml with gopkg.in/yaml.v3. Any
// other extension is rejected rather than guessed. A missing file is not an
// error: Load writes a starter default to path and returns it, mirroring
// the teacher's config.createDefault fallback.
func Load(path string) (*Bootstrap, error) {
	if _, err := os.Stat(path); os.IsNotExist(err) {
		if err := WriteDefault(path); err != nil {
			return nil, err
		}
	} else if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	cfg := &Bootstrap{}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".toml":
		if err := toml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode toml: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("config: decode yaml: %w", err)
		}
	default:
		return nil, fmt.Errorf("config: unsupported extension %q (want .toml, .yaml, or .yml)", ext)
	}

	if err := Validate(*cfg); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return cfg, nil
}

// WriteDefault writes a minimal starter Bootstrap to path, for first-run
// scaffolding. A .yaml or .yml path is written as YAML; any other path is
// written as TOML.
func WriteDefault(path string) error {
	cfg := Bootstrap{
		RiskModules: []RiskModuleSpec{
			{Name: "default", MCRPercentage: 100, PremiumShare: 0, EnsuroShare: 0},
		},
		Pools: []PoolSpec{
			{Name: "main", ExpirationPeriodSeconds: 365 * 24 * 3600},
		},
	}

	f, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("config: encode default: %w", err)
		}
	default:
		if err := toml.NewEncoder(f).Encode(cfg); err != nil {
			return fmt.Errorf("config: encode default: %w", err)
		}
	}
	return nil
}
