package app

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

type Config struct {
	Matrix struct {
		HomeserverURL string `yaml:"homeserver_url"`
		Username      string `yaml:"username"`
		Password      string `yaml:"password"`
		RoomID        string `yaml:"room_id"`
		Debug         bool   `yaml:"debug"`
	} `yaml:"matrix"`
	Firefly struct {
		URL             string `yaml:"url"`
		APIKey          string `yaml:"api_key"`
		SourceAccountID int64  `yaml:"source_account_id"`
	} `yaml:"firefly"`
	Server struct {
		Host    string `yaml:"host"`
		Port    int    `yaml:"port"`
		IsDevel bool   `yaml:"is_devel"`
	} `yaml:"server"`
}

// LoadConfig reads a YAML config file. Secrets may be left out of the
// file and supplied via MATRIX_PASSWORD / FIREFLY_API_KEY instead.
func LoadConfig(path string) (Config, error) {
	var cfg Config

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config file: %w", err)
	}

	if v := os.Getenv("MATRIX_PASSWORD"); v != "" {
		cfg.Matrix.Password = v
	}
	if v := os.Getenv("FIREFLY_API_KEY"); v != "" {
		cfg.Firefly.APIKey = v
	}

	if cfg.Server.Port == 0 {
		cfg.Server.Port = 8080
	}

	return cfg, nil
}

// Validate checks the configuration and reports all problems at once.
func (c Config) Validate() error {
	var problems []string

	if c.Matrix.HomeserverURL == "" {
		problems = append(problems, "matrix.homeserver_url is required")
	}
	if c.Matrix.Username == "" {
		problems = append(problems, "matrix.username is required")
	}
	if c.Matrix.Password == "" {
		problems = append(problems, "matrix.password is required")
	}
	if c.Matrix.RoomID == "" {
		problems = append(problems, "matrix.room_id is required")
	}
	if c.Firefly.URL == "" {
		problems = append(problems, "firefly.url is required")
	}
	if c.Firefly.APIKey == "" {
		problems = append(problems, "firefly.api_key is required")
	}
	if c.Firefly.SourceAccountID <= 0 {
		problems = append(problems, "firefly.source_account_id must be a positive account id")
	}
	if c.Server.Port < 1 || c.Server.Port > 65535 {
		problems = append(problems, fmt.Sprintf("invalid server port %d", c.Server.Port))
	}

	if len(problems) > 0 {
		return fmt.Errorf("invalid config: %s", strings.Join(problems, "; "))
	}
	return nil
}
