package config

import (
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/spf13/viper"
)

func TestDefaultConfig(t *testing.T) {
	config := Default()

	if err := config.Validate(); err != nil {
		t.Fatalf("Expected default config to be valid, got %v", err)
	}

	if config.User.Table != "app_user" {
		t.Errorf("Expected user table to be 'app_user', got '%s'", config.User.Table)
	}

	if config.Links.MinTagsPerCertificate != 0 {
		t.Errorf("Expected min tags per certificate to be 0, got %d", config.Links.MinTagsPerCertificate)
	}

	if config.Links.MinCertificatesPerOrder != 1 {
		t.Errorf("Expected min certificates per order to be 1, got %d", config.Links.MinCertificatesPerOrder)
	}

	if config.Output.Dialect != "postgresql" {
		t.Errorf("Expected dialect to be 'postgresql', got '%s'", config.Output.Dialect)
	}
}

func TestLoadFromFile(t *testing.T) {
	tempDir := t.TempDir()
	configPath := filepath.Join(tempDir, ConfigFileName)

	content := `counts:
  certificates: 3
  tags: 2
  users: 0
output:
  dialect: postgres
words:
  source: file
  file: words.txt
  retry_delay: 10ms
`
	if err := os.WriteFile(configPath, []byte(content), 0644); err != nil {
		t.Fatalf("Failed to write config: %v", err)
	}

	v := viper.New()
	v.SetConfigFile(configPath)
	if err := v.ReadInConfig(); err != nil {
		t.Fatalf("Failed to read config: %v", err)
	}

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Counts.Certificates != 3 || cfg.Counts.Tags != 2 || cfg.Counts.Users != 0 {
		t.Errorf("Unexpected counts: %+v", cfg.Counts)
	}
	if cfg.Counts.Orders != 10 {
		t.Errorf("Expected orders to fall back to default 10, got %d", cfg.Counts.Orders)
	}
	if cfg.Output.Dialect != "postgresql" {
		t.Errorf("Expected dialect alias to normalize to 'postgresql', got '%s'", cfg.Output.Dialect)
	}
	if cfg.Words.RetryDelay != 10*time.Millisecond {
		t.Errorf("Expected retry delay 10ms, got %v", cfg.Words.RetryDelay)
	}
	if cfg.Bounds.MaxNameLength != 50 {
		t.Errorf("Expected default max name length 50, got %d", cfg.Bounds.MaxNameLength)
	}
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("CERTSEED_COUNTS_TAGS", "7")

	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg, err := LoadFrom(v)
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}
	if cfg.Counts.Tags != 7 {
		t.Errorf("Expected tags from env to be 7, got %d", cfg.Counts.Tags)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(c *Config)
		wantErr string
	}{
		{"negative count", func(c *Config) { c.Counts.Orders = -1 }, "counts.orders"},
		{"inverted name length", func(c *Config) { c.Bounds.MaxNameLength = 2 }, "name length"},
		{"zero min length", func(c *Config) { c.Bounds.MinUsernameLength = 0 }, "username length"},
		{"inverted price", func(c *Config) { c.Bounds.MaxPrice = 0.5 }, "max_price"},
		{"empty duration range", func(c *Config) { c.Bounds.MaxDuration = c.Bounds.MinDuration }, "max_duration"},
		{"bad date", func(c *Config) { c.Dates.Min = "01-01-2019" }, "dates.min"},
		{"inverted dates", func(c *Config) { c.Dates.Max = "2018-01-01 00:00:00" }, "before"},
		{"inverted tag links", func(c *Config) { c.Links.MinTagsPerCertificate = 5 }, "tags per certificate"},
		{"negative order links", func(c *Config) { c.Links.MinCertificatesPerOrder = -1 }, "certificates per order"},
		{"bad user table", func(c *Config) { c.User.Table = "app user;" }, "user table"},
		{"user table named tag", func(c *Config) { c.User.Table = "tag" }, "collides with the tag table"},
		{"user table named order table", func(c *Config) { c.User.Table = "APP_ORDER" }, "collides with the app_order table"},
		{"user table named link table", func(c *Config) { c.User.Table = "certificate_tag" }, "collides"},
		{"unknown word source", func(c *Config) { c.Words.Source = "ftp" }, "word source"},
		{"file source without file", func(c *Config) { c.Words.Source = "file" }, "words.file"},
		{"unknown dialect", func(c *Config) { c.Output.Dialect = "oracle" }, "dialect"},
		{"empty output", func(c *Config) { c.Output.Path = "" }, "output.path"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(cfg)
			err := cfg.Validate()
			if err == nil {
				t.Fatalf("Expected validation error containing %q, got nil", tt.wantErr)
			}
			if !strings.Contains(err.Error(), tt.wantErr) {
				t.Errorf("Expected error containing %q, got %q", tt.wantErr, err.Error())
			}
		})
	}
}

func TestIsInitialized(t *testing.T) {
	tempDir := t.TempDir()

	originalDir, err := os.Getwd()
	if err != nil {
		t.Fatalf("Failed to get current directory: %v", err)
	}
	defer os.Chdir(originalDir)

	if err := os.Chdir(tempDir); err != nil {
		t.Fatalf("Failed to change to temp directory: %v", err)
	}

	if IsInitialized() {
		t.Error("Expected project to not be initialized, but it was")
	}

	if err := os.WriteFile(ConfigFileName, []byte("{}"), 0644); err != nil {
		t.Fatalf("Failed to create config file: %v", err)
	}

	if !IsInitialized() {
		t.Error("Expected project to be initialized, but it wasn't")
	}
}
