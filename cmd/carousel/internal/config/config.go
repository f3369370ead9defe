// Package config loads the carousel.yaml file used by the carousel CLI.
package config

import (
	stderrors "errors"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/go-drift/carousel/pkg/carousel"
	"github.com/go-drift/carousel/pkg/transition"
	"github.com/go-playground/validator/v10"
	"github.com/pkg/errors"
	"golang.org/x/mod/semver"
	"gopkg.in/yaml.v3"
)

// FileName is the configuration file looked up in a project directory.
const FileName = "carousel.yaml"

// DefaultVersion is assumed when the file does not declare one.
const DefaultVersion = "v1.0.0"

// validate checks the struct tags of a decoded document.
var validate = validator.New()

// Config represents the optional carousel.yaml configuration.
type Config struct {
	Version  string         `yaml:"version,omitempty"`
	Items    []string       `yaml:"items" validate:"dive,required"`
	Carousel CarouselConfig `yaml:"carousel"`
	Logging  LoggingConfig  `yaml:"logging"`
	Debug    DebugConfig    `yaml:"debug"`
}

// CarouselConfig mirrors carousel.Config. Unset fields keep their defaults.
type CarouselConfig struct {
	Interval     *time.Duration    `yaml:"interval,omitempty"`
	SettleDelay  *time.Duration    `yaml:"settle_delay,omitempty"`
	Height       *float64          `yaml:"height,omitempty"`
	Padding      *float64          `yaml:"padding,omitempty"`
	CornerRadius *float64          `yaml:"corner_radius,omitempty"`
	Transition   *transition.Style `yaml:"transition,omitempty"`
	ScreenWidth  *float64          `yaml:"screen_width,omitempty"`
}

// LoggingConfig contains logging settings.
type LoggingConfig struct {
	Level string `yaml:"level,omitempty" validate:"omitempty,oneof=error warn warning info debug"`
}

// DebugConfig contains the debug feed settings.
type DebugConfig struct {
	Addr string `yaml:"addr,omitempty" validate:"omitempty,hostname_port"`
}

// Resolved contains resolved configuration values.
type Resolved struct {
	Path      string
	Version   string
	Items     []string
	Carousel  carousel.Config
	LogLevel  string
	DebugAddr string
}

// Path returns the configuration file path inside dir.
func Path(dir string) string {
	return filepath.Join(dir, FileName)
}

// LoadOptional reads carousel.yaml from dir if present.
func LoadOptional(dir string) (*Config, error) {
	data, err := os.ReadFile(Path(dir))
	if err != nil {
		if stderrors.Is(err, os.ErrNotExist) {
			return &Config{}, nil
		}
		return nil, errors.Wrapf(err, "failed to read %s", FileName)
	}
	return Parse(data)
}

// Parse decodes a configuration document and checks its field constraints.
func Parse(data []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, errors.Wrapf(err, "failed to parse %s", FileName)
	}
	if err := validate.Struct(cfg); err != nil {
		return nil, errors.Wrapf(err, "invalid %s", FileName)
	}
	return &cfg, nil
}

// Resolve loads carousel.yaml from dir (if present) and resolves defaults.
func Resolve(dir string) (*Resolved, error) {
	cfg, err := LoadOptional(dir)
	if err != nil {
		return nil, err
	}
	res, err := cfg.Resolve()
	if err != nil {
		return nil, err
	}
	res.Path = Path(dir)
	return res, nil
}

// Resolve applies defaults and validation.
func (c *Config) Resolve() (*Resolved, error) {
	version, err := resolveVersion(c.Version)
	if err != nil {
		return nil, err
	}

	cc := carousel.DefaultConfig()
	if v := c.Carousel.Interval; v != nil {
		cc.Interval = *v
	}
	if v := c.Carousel.SettleDelay; v != nil {
		cc.SettleDelay = *v
	}
	if v := c.Carousel.Height; v != nil {
		cc.Height = *v
	}
	if v := c.Carousel.Padding; v != nil {
		cc.HorizontalPadding = *v
	}
	if v := c.Carousel.CornerRadius; v != nil {
		cc.CornerRadius = *v
	}
	if v := c.Carousel.Transition; v != nil {
		cc.Transition = *v
	}
	if v := c.Carousel.ScreenWidth; v != nil {
		cc.ScreenWidth = *v
	}
	if err := cc.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid carousel section")
	}

	items := make([]string, 0, len(c.Items))
	for _, item := range c.Items {
		items = append(items, strings.TrimSpace(item))
	}

	level := strings.TrimSpace(c.Logging.Level)
	if level == "" {
		level = "info"
	}

	return &Resolved{
		Version:   version,
		Items:     items,
		Carousel:  cc,
		LogLevel:  level,
		DebugAddr: strings.TrimSpace(c.Debug.Addr),
	}, nil
}

func resolveVersion(v string) (string, error) {
	v = strings.TrimSpace(v)
	if v == "" {
		return DefaultVersion, nil
	}
	if !strings.HasPrefix(v, "v") {
		v = "v" + v
	}
	if !semver.IsValid(v) {
		return "", errors.Errorf("version %q is not a semantic version", v)
	}
	if semver.Major(v) != "v1" {
		return "", errors.Errorf("unsupported config version %s (this build reads v1)", v)
	}
	return semver.Canonical(v), nil
}
