package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
)

const (
	// KeyEnvVar overrides the marketplace signing key when set.
	KeyEnvVar = "RUZZLE_MARKETPLACE_KEY"
	// DefaultKey is the development signing key used when nothing else is
	// configured. Production deployments are expected to set KeyEnvVar.
	DefaultKey = "ruzzle-dev-key"

	// BundleExt is the file extension of module bundles.
	BundleExt = ".rpiece"
)

// Config holds tool-wide settings loaded from an optional JSON file.
type Config struct {
	// ModulesDir is the default directory scanned for bundles.
	ModulesDir string `json:"modules_dir"`
	// IndexPath is the default output path of the market index.
	IndexPath string `json:"index_path"`
	// SigningKey, when set, replaces the built-in development key. The
	// environment variable and the --key flag still take precedence.
	SigningKey string `json:"signing_key,omitempty"`
}

// Default returns the configuration used when no config file is given.
func Default() *Config {
	return &Config{
		ModulesDir: "modules",
		IndexPath:  filepath.Join("modules", "index.toml"),
	}
}

// LoadConfig reads a JSON config file and fills in defaults for anything the
// file leaves unset.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := json.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}
	if cfg.ModulesDir == "" {
		cfg.ModulesDir = Default().ModulesDir
	}
	if cfg.IndexPath == "" {
		cfg.IndexPath = Default().IndexPath
	}
	return cfg, nil
}

// ResolveKey picks the signing key for one invocation. Precedence: explicit
// flag value, then RUZZLE_MARKETPLACE_KEY, then the config file, then the
// development default. The result is threaded into bundle and index calls;
// there is no process-wide key state.
func (c *Config) ResolveKey(flagKey string) []byte {
	if flagKey != "" {
		return []byte(flagKey)
	}
	if env := os.Getenv(KeyEnvVar); env != "" {
		return []byte(env)
	}
	if c != nil && c.SigningKey != "" {
		return []byte(c.SigningKey)
	}
	return []byte(DefaultKey)
}
