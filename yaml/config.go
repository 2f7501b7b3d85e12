// Package yaml loads the scraper configuration file.
package yaml

import (
	"bytes"
	"errors"
	"io"
	"os"
	"path/filepath"
	"regexp"
	"time"

	"github.com/adrg/xdg"
	"github.com/offenesjena/vorhaben"
	"gopkg.in/yaml.v3"
)

// AppName names the configuration directory.
const AppName = "vorhaben"

// DefaultConfigFile is the configuration file name inside the config directory.
const DefaultConfigFile = "config.yaml"

// ErrConfigNotFound is returned when the configuration file does not exist.
var ErrConfigNotFound = errors.New("configuration file not found")

// Config is the contents of the configuration file. Zero values mean the
// setting is absent and the built-in default applies.
type Config struct {
	IndexURL    string            `yaml:"indexUrl"`
	PageURL     string            `yaml:"pageUrl"`
	PagePattern string            `yaml:"pagePattern"`
	Concurrency int               `yaml:"concurrency"`
	Timeout     time.Duration     `yaml:"timeout"`
	UserAgent   string            `yaml:"userAgent"`
	MaxBodySize int64             `yaml:"maxBodySize"`
	Output      string            `yaml:"output"`
	DB          string            `yaml:"db"`
	Aliases     map[string]string `yaml:"aliases"`
}

// ConfigDir returns the XDG config directory for the scraper.
// On Linux: ~/.config/vorhaben
func ConfigDir() string {
	return filepath.Join(xdg.ConfigHome, AppName)
}

// DefaultPath returns the default configuration file location.
func DefaultPath() string {
	return filepath.Join(ConfigDir(), DefaultConfigFile)
}

// LoadFile loads the configuration from path.
// If the file does not exist, it returns ErrConfigNotFound.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, ErrConfigNotFound
		}
		return nil, err
	}
	return Parse(data)
}

// Load loads the configuration file named by path. An empty path reads the
// default location, where a missing file yields an empty Config.
func Load(path string) (*Config, error) {
	if path != "" {
		return LoadFile(path)
	}
	cfg, err := LoadFile(DefaultPath())
	if errors.Is(err, ErrConfigNotFound) {
		return &Config{}, nil
	}
	return cfg, err
}

// Parse decodes and validates a configuration document. Unknown keys are
// rejected.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(&cfg); err != nil && !errors.Is(err, io.EOF) {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "parse config: %v", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks value ranges and the page pattern.
func (c *Config) Validate() error {
	if c.Concurrency < 0 {
		return vorhaben.Errorf(vorhaben.EINVALID, "concurrency must not be negative")
	}
	if c.Timeout < 0 {
		return vorhaben.Errorf(vorhaben.EINVALID, "timeout must not be negative")
	}
	if c.MaxBodySize < 0 {
		return vorhaben.Errorf(vorhaben.EINVALID, "maxBodySize must not be negative")
	}
	if _, err := c.Pattern(); err != nil {
		return err
	}
	if _, err := c.Classifier(); err != nil {
		return err
	}
	return nil
}

// Pattern compiles PagePattern. It returns nil if no pattern is set.
func (c *Config) Pattern() (*regexp.Regexp, error) {
	if c.PagePattern == "" {
		return nil, nil
	}
	re, err := regexp.Compile(c.PagePattern)
	if err != nil {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "pagePattern: %v", err)
	}
	if re.NumSubexp() < 1 {
		return nil, vorhaben.Errorf(vorhaben.EINVALID, "pagePattern %q has no capture group", c.PagePattern)
	}
	return re, nil
}

// Classifier builds a section classifier from the built-in headings plus
// the configured aliases. Alias values are canonical section labels.
func (c *Config) Classifier() (*vorhaben.Classifier, error) {
	if len(c.Aliases) == 0 {
		return vorhaben.DefaultClassifier(), nil
	}
	extra := make(map[string]vorhaben.SectionName, len(c.Aliases))
	for text, label := range c.Aliases {
		extra[text] = vorhaben.SectionName(label)
	}
	return vorhaben.NewClassifier(extra)
}
