package config

import (
	"fmt"
	"os"
	"path/filepath"

	json "github.com/goccy/go-json"
)

// Config represents the typeforge.json project file.
type Config struct {
	Name    string    `json:"name"`
	Bundle  string    `json:"bundle"`
	Targets []Target  `json:"targets"`
	Dev     DevConfig `json:"dev"`
}

// Target selects one backend and where its artifact is written.
type Target struct {
	Language     string            `json:"language"`
	Output       string            `json:"output"`
	TypeMappings map[string]string `json:"typeMappings"`
	OmitComments bool              `json:"omitComments"`
}

// DevConfig configures watch mode.
type DevConfig struct {
	Watch   []string `json:"watch"`
	Exclude []string `json:"exclude"`
}

// LoadConfig loads typeforge.json from the current directory or a parent
// directory, returning the config and the directory it was found in.
func LoadConfig() (*Config, string, error) {
	dir, err := os.Getwd()
	if err != nil {
		return nil, "", fmt.Errorf("failed to get current directory: %w", err)
	}

	return loadConfigFromDir(dir)
}

// LoadConfigFromPath loads the configuration from a specific file.
func LoadConfigFromPath(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	var config Config
	if err := json.Unmarshal(data, &config); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}

	// Set defaults
	if config.Bundle == "" {
		config.Bundle = "./types.bundle.json"
	}
	for i := range config.Targets {
		if config.Targets[i].Output == "" {
			config.Targets[i].Output = defaultOutput(config.Targets[i].Language)
		}
	}
	if len(config.Dev.Watch) == 0 {
		config.Dev.Watch = []string{"*.bundle.json", "typeforge.json"}
	}

	return &config, nil
}

func defaultOutput(language string) string {
	switch language {
	case "python", "py":
		return "./generated/types.py"
	case "typescript", "ts":
		return "./generated/types.ts"
	default:
		return "./generated/types." + language
	}
}

// loadConfigFromDir searches for typeforge.json in dir and its parents.
func loadConfigFromDir(startDir string) (*Config, string, error) {
	dir := startDir
	for {
		configPath := filepath.Join(dir, "typeforge.json")
		if _, err := os.Stat(configPath); err == nil {
			config, err := LoadConfigFromPath(configPath)
			if err != nil {
				return nil, "", err
			}
			return config, dir, nil
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			// Reached root directory
			break
		}
		dir = parent
	}

	return nil, "", fmt.Errorf("no typeforge.json found in %s or any parent directory", startDir)
}
