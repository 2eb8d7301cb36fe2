package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	toml "github.com/pelletier/go-toml/v2"
	"gopkg.in/yaml.v3"
)

// Settings holds runtime parameters for the manager service. Zero values
// mean "unspecified" and will be replaced by defaults in main. The swap URL,
// models dir and config path can later be changed through /api/settings for
// the process lifetime; nothing written there survives a restart.
type Settings struct {
	Addr           string `json:"addr" yaml:"addr" toml:"addr"`
	SwapURL        string `json:"llama_swap_url" yaml:"llama_swap_url" toml:"llama_swap_url"`
	ModelsDir      string `json:"models_path" yaml:"models_path" toml:"models_path"`
	ConfigPath     string `json:"config_path" yaml:"config_path" toml:"config_path"`
	DataDir        string `json:"data_dir" yaml:"data_dir" toml:"data_dir"`
	MaxUploadBytes int64  `json:"max_file_size" yaml:"max_file_size" toml:"max_file_size"`
}

// BackupDir returns the directory backup copies are written to.
func (s Settings) BackupDir() string {
	return filepath.Join(s.DataDir, "backups")
}

// Load reads a settings file based on its extension.
// Supports: .yaml/.yml, .json, .toml
func Load(path string) (Settings, error) {
	var cfg Settings
	if path == "" {
		return cfg, fmt.Errorf("empty config path")
	}
	b, err := os.ReadFile(path)
	if err != nil {
		return cfg, err
	}
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".json":
		if err := json.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	case ".toml":
		if err := toml.Unmarshal(b, &cfg); err != nil {
			return cfg, err
		}
	default:
		return cfg, fmt.Errorf("unsupported config extension: %s", ext)
	}
	return cfg, nil
}
