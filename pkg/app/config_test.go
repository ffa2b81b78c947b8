package app

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
)

const validConfig = `
matrix:
  homeserver_url: https://matrix.example.org
  username: firefly-bot
  password: hunter2
  room_id: "!abc123:example.org"
firefly:
  url: https://firefly.example.org
  api_key: token
  source_account_id: 3
server:
  host: 127.0.0.1
  port: 8080
`

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}

	if cfg.Matrix.HomeserverURL != "https://matrix.example.org" {
		t.Errorf("homeserver url = %q", cfg.Matrix.HomeserverURL)
	}
	if cfg.Matrix.RoomID != "!abc123:example.org" {
		t.Errorf("room id = %q", cfg.Matrix.RoomID)
	}
	if cfg.Firefly.SourceAccountID != 3 {
		t.Errorf("source account id = %d, expected 3", cfg.Firefly.SourceAccountID)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("valid config failed validation: %v", err)
	}
}

func TestLoadConfigEnvOverride(t *testing.T) {
	t.Setenv("FIREFLY_API_KEY", "from-env")

	cfg, err := LoadConfig(writeConfig(t, validConfig))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Firefly.APIKey != "from-env" {
		t.Errorf("api key = %q, expected env override", cfg.Firefly.APIKey)
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "nope.yml")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestValidateCollectsAllProblems(t *testing.T) {
	var cfg Config
	cfg.Server.Port = 8080

	err := cfg.Validate()
	if err == nil {
		t.Fatal("empty config must fail validation")
	}

	for _, want := range []string{
		"matrix.homeserver_url",
		"matrix.username",
		"matrix.password",
		"matrix.room_id",
		"firefly.url",
		"firefly.api_key",
		"firefly.source_account_id",
	} {
		if !strings.Contains(err.Error(), want) {
			t.Errorf("validation error missing %q: %v", want, err)
		}
	}
}
