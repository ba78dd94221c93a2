package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/andybalholm/cascadia"
	"github.com/pfrederiksen/usps-zipcodes/internal/extract"
	"github.com/pfrederiksen/usps-zipcodes/internal/logger"
	"gopkg.in/yaml.v3"
)

// DefaultConfigFile is looked up in the working directory when no --config is given
const DefaultConfigFile = ".usps-zipcodes.yaml"

const (
	DefaultFormURL    = "http://zip4.usps.com/zip4/citytown.jsp"
	DefaultUserAgent  = "usps-zipcodes/1.0 (github.com/pfrederiksen/usps-zipcodes)"
	DefaultTimeout    = 30 * time.Second
	DefaultArchiveDir = "html"
	DefaultOutputFile = "zip_code_list.txt"
)

// Config holds all settings for acquisition and extraction
type Config struct {
	Scraper ScraperConfig `yaml:"scraper"`
	Parser  ParserConfig  `yaml:"parser"`

	// ArchiveDir is shared by both stages
	ArchiveDir string `yaml:"archive_dir"`
	LogLevel   string `yaml:"log_level"`
}

type ScraperConfig struct {
	FormURL    string        `yaml:"form_url"`
	CityField  string        `yaml:"city_field"`
	StateField string        `yaml:"state_field"`
	UserAgent  string        `yaml:"user_agent"`
	Timeout    time.Duration `yaml:"timeout"`
}

type ParserConfig struct {
	Selector   string `yaml:"selector"`
	Filter     bool   `yaml:"filter"`
	MaxLength  int    `yaml:"max_length"`
	OutputFile string `yaml:"output_file"`
}

// Default returns the built-in settings
func Default() *Config {
	return &Config{
		Scraper: ScraperConfig{
			FormURL:    DefaultFormURL,
			CityField:  "city",
			StateField: "state",
			UserAgent:  DefaultUserAgent,
			Timeout:    DefaultTimeout,
		},
		Parser: ParserConfig{
			Selector:   extract.DefaultSelector,
			Filter:     true,
			MaxLength:  extract.MaxZipCodeLength,
			OutputFile: DefaultOutputFile,
		},
		ArchiveDir: DefaultArchiveDir,
		LogLevel:   string(logger.LevelInfo),
	}
}

// Load builds a Config from defaults, the YAML file at path and the
// environment. An empty path falls back to DefaultConfigFile if it exists;
// an explicit path that does not exist returns ErrConfigNotFound.
func Load(path string) (*Config, error) {
	cfg := Default()

	explicit := path != ""
	if !explicit {
		path = DefaultConfigFile
	}

	if err := cfg.mergeFile(path); err != nil {
		if !errors.Is(err, ErrConfigNotFound) || explicit {
			return nil, err
		}
	}

	cfg.applyEnv()
	return cfg, nil
}

func (c *Config) mergeFile(path string) error {
	data, err := os.ReadFile(path) //nolint:gosec // user-provided config path is intentional
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrConfigNotFound, path)
		}
		return fmt.Errorf("reading config: %w", err)
	}

	if err := yaml.Unmarshal(data, c); err != nil {
		return fmt.Errorf("parsing config %s: %w", path, err)
	}
	return nil
}

func (c *Config) applyEnv() {
	c.Scraper.FormURL = getEnv("ZIPCODES_FORM_URL", c.Scraper.FormURL)
	c.Scraper.UserAgent = getEnv("ZIPCODES_USER_AGENT", c.Scraper.UserAgent)
	if secs := getEnvInt("ZIPCODES_TIMEOUT_SEC", 0); secs > 0 {
		c.Scraper.Timeout = time.Duration(secs) * time.Second
	}
	c.ArchiveDir = getEnv("ZIPCODES_ARCHIVE_DIR", c.ArchiveDir)
	c.Parser.OutputFile = getEnv("ZIPCODES_OUTPUT", c.Parser.OutputFile)
	c.Parser.Selector = getEnv("ZIPCODES_SELECTOR", c.Parser.Selector)
	c.LogLevel = getEnv("ZIPCODES_LOG_LEVEL", c.LogLevel)
}

// Validate reports the first invalid setting
func (c *Config) Validate() error {
	if c.Scraper.FormURL == "" {
		return ErrEmptyFormURL
	}
	if c.Scraper.CityField == "" || c.Scraper.StateField == "" {
		return ErrEmptyFieldName
	}
	if c.Scraper.Timeout <= 0 {
		return ErrInvalidTimeout
	}
	if c.ArchiveDir == "" {
		return ErrEmptyArchiveDir
	}
	if c.Parser.OutputFile == "" {
		return ErrEmptyOutputFile
	}
	if _, err := cascadia.ParseGroup(c.Parser.Selector); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidSelector, c.Parser.Selector, err)
	}
	if c.Parser.MaxLength <= 0 {
		return ErrInvalidMaxLength
	}
	if _, err := logger.ParseLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %q", ErrInvalidLogLevel, c.LogLevel)
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
