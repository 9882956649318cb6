package config

import (
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in the search directories.
const FileName = "frogcore.yaml"

// Load loads the frogcore configuration and validates it.
// Search order: customPath -> ~/.frogcore/config.yaml -> ./configs/frogcore.yaml -> embedded default
//
// Files are decoded over the defaults, so a file only needs the keys it
// changes.
func Load(customPath string) (Config, error) {
	cfg, _, err := LoadWithSource(customPath)
	return cfg, err
}

// LoadWithSource is Load that also reports where the configuration came
// from: a file path or "embedded".
func LoadWithSource(customPath string) (Config, string, error) {
	cfg := Default()

	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return cfg, customPath, fmt.Errorf("config: read %s: %w", customPath, err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, customPath, fmt.Errorf("config: parse %s: %w", customPath, err)
		}
		if err := cfg.Validate(); err != nil {
			return cfg, customPath, fmt.Errorf("config: %s: %w", customPath, err)
		}
		return cfg, customPath, nil
	}

	// Try user config directory, then the local configs directory
	for _, path := range []string{userConfigPath(), filepath.Join("configs", FileName)} {
		if path == "" {
			continue
		}
		data, err := os.ReadFile(path)
		if err != nil {
			continue
		}
		candidate := Default()
		if err := yaml.Unmarshal(data, &candidate); err != nil {
			continue
		}
		if err := candidate.Validate(); err != nil {
			return candidate, path, fmt.Errorf("config: %s: %w", path, err)
		}
		return candidate, path, nil
	}

	// Use embedded default YAML
	if err := yaml.Unmarshal(defaultYAML, &cfg); err != nil {
		return Default(), "default", nil // Fallback to hardcoded if embed fails
	}
	return cfg, "embedded", nil
}

// Marshal renders cfg as YAML.
func Marshal(cfg Config) ([]byte, error) {
	data, err := yaml.Marshal(cfg)
	if err != nil {
		return nil, fmt.Errorf("config: marshal: %w", err)
	}
	return data, nil
}

// userConfigPath returns the path to the user config file, or empty if home is unavailable.
func userConfigPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".frogcore", "config.yaml")
}
