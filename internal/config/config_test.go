package config

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestDefault_Valid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error: %v", err)
	}
	if cfg.ArchiveDir != "html" || cfg.Parser.OutputFile != "zip_code_list.txt" {
		t.Errorf("defaults = %q, %q", cfg.ArchiveDir, cfg.Parser.OutputFile)
	}
	if !cfg.Parser.Filter || cfg.Parser.MaxLength != 15 || cfg.Parser.Selector != "td.main" {
		t.Errorf("parser defaults = %+v", cfg.Parser)
	}
}

func TestLoad_File(t *testing.T) {
	path := filepath.Join(t.TempDir(), "zipcodes.yaml")
	content := `
archive_dir: pages
scraper:
  form_url: http://localhost:8080/form
  timeout: 5s
parser:
  filter: false
  selector: td.zip
`
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.ArchiveDir != "pages" {
		t.Errorf("ArchiveDir = %q, want pages", cfg.ArchiveDir)
	}
	if cfg.Scraper.FormURL != "http://localhost:8080/form" {
		t.Errorf("FormURL = %q", cfg.Scraper.FormURL)
	}
	if cfg.Scraper.Timeout != 5*time.Second {
		t.Errorf("Timeout = %s, want 5s", cfg.Scraper.Timeout)
	}
	if cfg.Parser.Filter {
		t.Error("Filter = true, want false from file")
	}
	if cfg.Parser.Selector != "td.zip" {
		t.Errorf("Selector = %q, want td.zip", cfg.Parser.Selector)
	}
	// Untouched keys keep their defaults
	if cfg.Scraper.CityField != "city" || cfg.Parser.OutputFile != DefaultOutputFile {
		t.Errorf("defaults lost: %+v", cfg)
	}
}

func TestLoad_ExplicitMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if !errors.Is(err, ErrConfigNotFound) {
		t.Errorf("Load() error = %v, want ErrConfigNotFound", err)
	}
}

func TestLoad_ImplicitMissing(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load(\"\") error: %v", err)
	}
	if cfg.Scraper.FormURL != DefaultFormURL {
		t.Errorf("FormURL = %q, want default", cfg.Scraper.FormURL)
	}
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	if err := os.WriteFile(path, []byte("scraper: [not, a, map"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := Load(path); err == nil {
		t.Error("Load() with malformed YAML expected error")
	}
}

func TestLoad_Env(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("ZIPCODES_FORM_URL", "http://env.example/form")
	t.Setenv("ZIPCODES_ARCHIVE_DIR", "env-html")
	t.Setenv("ZIPCODES_OUTPUT", "env.txt")
	t.Setenv("ZIPCODES_TIMEOUT_SEC", "12")
	t.Setenv("ZIPCODES_LOG_LEVEL", "debug")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error: %v", err)
	}

	if cfg.Scraper.FormURL != "http://env.example/form" {
		t.Errorf("FormURL = %q", cfg.Scraper.FormURL)
	}
	if cfg.ArchiveDir != "env-html" || cfg.Parser.OutputFile != "env.txt" {
		t.Errorf("dirs = %q, %q", cfg.ArchiveDir, cfg.Parser.OutputFile)
	}
	if cfg.Scraper.Timeout != 12*time.Second {
		t.Errorf("Timeout = %s, want 12s", cfg.Scraper.Timeout)
	}
	if err := cfg.Validate(); err != nil {
		t.Errorf("Validate() error: %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
		want   error
	}{
		{"empty form URL", func(c *Config) { c.Scraper.FormURL = "" }, ErrEmptyFormURL},
		{"empty city field", func(c *Config) { c.Scraper.CityField = "" }, ErrEmptyFieldName},
		{"zero timeout", func(c *Config) { c.Scraper.Timeout = 0 }, ErrInvalidTimeout},
		{"empty archive dir", func(c *Config) { c.ArchiveDir = "" }, ErrEmptyArchiveDir},
		{"empty output", func(c *Config) { c.Parser.OutputFile = "" }, ErrEmptyOutputFile},
		{"bad selector", func(c *Config) { c.Parser.Selector = "td[" }, ErrInvalidSelector},
		{"zero max length", func(c *Config) { c.Parser.MaxLength = 0 }, ErrInvalidMaxLength},
		{"unknown log level", func(c *Config) { c.LogLevel = "loud" }, ErrInvalidLogLevel},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.modify(cfg)
			if err := cfg.Validate(); !errors.Is(err, tt.want) {
				t.Errorf("Validate() error = %v, want %v", err, tt.want)
			}
		})
	}
}
