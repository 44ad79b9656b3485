package shared

import (
	"os"
	"path/filepath"
	"testing"
)

func TestConfig(t *testing.T) {
	t.Run("DefaultConfig", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		config := DefaultConfig()

		if config.Database.Path != "./popcorn.db" {
			t.Errorf("expected database path ./popcorn.db, got %s", config.Database.Path)
		}

		if config.Catalog.BaseURL != "https://www.omdbapi.com/" {
			t.Errorf("expected catalog base URL https://www.omdbapi.com/, got %s", config.Catalog.BaseURL)
		}

		if config.Catalog.MinQueryLength != 3 {
			t.Errorf("expected min query length 3, got %d", config.Catalog.MinQueryLength)
		}

		if config.Catalog.APIKey == "" {
			t.Error("expected embedded API key")
		}

		if config.Log.Level != "info" {
			t.Errorf("expected log level info, got %s", config.Log.Level)
		}
	})

	t.Run("CreateConfigFile", func(t *testing.T) {
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		if err := CreateConfigFile(configPath); err != nil {
			t.Fatalf("failed to create config file: %v", err)
		}

		if _, err := os.Stat(configPath); err != nil {
			t.Fatalf("config file should exist: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load created config: %v", err)
		}

		defaultConfig := DefaultConfig()
		if config.Database.Path != defaultConfig.Database.Path {
			t.Errorf("created config database path doesn't match default")
		}

		if err := CreateConfigFile(configPath); err == nil {
			t.Error("creating config file again should fail")
		}
	})

	t.Run("LoadConfig", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "")
		tmpDir := t.TempDir()
		configPath := filepath.Join(tmpDir, "config.toml")

		testConfig := `[catalog]
base_url = "http://localhost:9090/"
api_key = "test_api_key"
rate_limit = 2

[database]
path = "/custom/path.db"
max_open_conns = 20
max_idle_conns = 10
`
		if err := os.WriteFile(configPath, []byte(testConfig), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		config, err := LoadConfig(configPath)
		if err != nil {
			t.Fatalf("failed to load config: %v", err)
		}

		if config.Database.Path != "/custom/path.db" {
			t.Errorf("expected database path /custom/path.db, got %s", config.Database.Path)
		}

		if config.Catalog.APIKey != "test_api_key" {
			t.Errorf("expected api key test_api_key, got %s", config.Catalog.APIKey)
		}

		if config.Catalog.RateLimit != 2 {
			t.Errorf("expected rate limit 2, got %v", config.Catalog.RateLimit)
		}

		if config.Catalog.MinQueryLength != 3 {
			t.Errorf("expected default min query length to survive, got %d", config.Catalog.MinQueryLength)
		}
	})

	t.Run("LoadConfig With Invalid TOML", func(t *testing.T) {
		configPath := filepath.Join(t.TempDir(), "config.toml")
		if err := os.WriteFile(configPath, []byte("[catalog\nbase_url ="), 0644); err != nil {
			t.Fatalf("failed to write test config: %v", err)
		}

		if _, err := LoadConfig(configPath); err == nil {
			t.Error("expected parse error")
		}
	})

	t.Run("Env Overrides API Key", func(t *testing.T) {
		t.Setenv(APIKeyEnv, "from-env")

		if got := DefaultConfig().Catalog.APIKey; got != "from-env" {
			t.Errorf("expected api key from-env, got %s", got)
		}
	})

	t.Run("ResolveConfig Without File", func(t *testing.T) {
		config, err := ResolveConfig(filepath.Join(t.TempDir(), "missing.toml"))
		if err != nil {
			t.Fatalf("expected defaults, got error %v", err)
		}
		if config.Database.Path != DefaultConfig().Database.Path {
			t.Error("expected default database path")
		}
	})
}
