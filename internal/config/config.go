// Package config resolves tether settings from defaults, a YAML file,
// TETHER_* environment variables and command-line flags, in that order.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/spf13/pflag"
	"gopkg.in/yaml.v3"

	"github.com/jmylchreest/tether/internal/security"
)

// Output formats.
const (
	FormatTable = "table"
	FormatJSON  = "json"
)

// Preview modes.
const (
	PreviewAuto   = "auto"
	PreviewAlways = "always"
	PreviewNever  = "never"
)

// Flag names read by WithFlags.
const (
	FlagFormat      = "format"
	FlagPreview     = "preview"
	FlagHost        = "host"
	FlagMetricsFile = "metrics-file"
	FlagMaxBytes    = "max-bytes"
	FlagTimeout     = "timeout"
)

// envPrefix prefixes every environment variable.
const envPrefix = "TETHER_"

// Config holds resolved settings.
type Config struct {
	// Format is the analyze report format.
	Format string `yaml:"format" validate:"oneof=table json"`

	// Preview controls colour swatches in table output.
	Preview string `yaml:"preview" validate:"oneof=auto always never"`

	// Host is a document host binary used instead of a document file.
	Host string `yaml:"host"`

	// MetricsFile receives prometheus metrics after each analysis when set.
	MetricsFile string `yaml:"metrics_file"`

	// MaxDocumentBytes bounds documents read from disk or over HTTP.
	MaxDocumentBytes int64 `yaml:"max_document_bytes" validate:"min=1"`

	// Timeout bounds remote document downloads.
	Timeout time.Duration `yaml:"timeout" validate:"min=0"`

	// Headers are sent with remote document requests.
	Headers map[string]string `yaml:"headers"`
}

// Default returns the built-in settings.
func Default() Config {
	return Config{
		Format:           FormatTable,
		Preview:          PreviewAuto,
		MaxDocumentBytes: security.DefaultMaxDocumentBytes,
		Timeout:          30 * time.Second,
	}
}

// DefaultPath returns $XDG_CONFIG_HOME/tether/config.yaml, or the platform
// equivalent.
func DefaultPath() string {
	dir, err := os.UserConfigDir()
	if err != nil {
		return ""
	}
	return filepath.Join(dir, "tether", "config.yaml")
}

// Builder provides a fluent interface for resolving a Config.
type Builder struct {
	config   Config
	path     string
	required bool
	useEnv   bool
	flags    *pflag.FlagSet
	lookup   func(string) (string, bool)
}

// NewBuilder creates a builder starting from Default.
func NewBuilder() *Builder {
	return &Builder{
		config: Default(),
		lookup: os.LookupEnv,
	}
}

// WithFile reads path as YAML. When required is false a missing file is
// ignored.
func (b *Builder) WithFile(path string, required bool) *Builder {
	b.path = path
	b.required = required
	return b
}

// WithEnvConfig applies TETHER_FORMAT, TETHER_PREVIEW, TETHER_HOST,
// TETHER_METRICS_FILE, TETHER_MAX_DOCUMENT_BYTES and TETHER_TIMEOUT.
func (b *Builder) WithEnvConfig() *Builder {
	b.useEnv = true
	return b
}

// WithLookup replaces the environment lookup (useful for testing).
func (b *Builder) WithLookup(lookup func(string) (string, bool)) *Builder {
	b.lookup = lookup
	return b
}

// WithFlags applies flags that were set explicitly on the command line.
func (b *Builder) WithFlags(fs *pflag.FlagSet) *Builder {
	b.flags = fs
	return b
}

// Build resolves and validates the configuration.
func (b *Builder) Build() (Config, error) {
	cfg := b.config

	if b.path != "" {
		if err := loadFile(b.path, b.required, &cfg); err != nil {
			return Config{}, err
		}
	}
	if b.useEnv {
		if err := applyEnv(b.lookup, &cfg); err != nil {
			return Config{}, err
		}
	}
	if b.flags != nil {
		if err := applyFlags(b.flags, &cfg); err != nil {
			return Config{}, err
		}
	}

	if err := validate.Struct(cfg); err != nil {
		return Config{}, formatValidationError(err)
	}
	return cfg, nil
}

func loadFile(path string, required bool, cfg *Config) error {
	data, err := os.ReadFile(path) // #nosec G304 - config path is chosen by the user
	if err != nil {
		if errors.Is(err, os.ErrNotExist) && !required {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file %s: %w", path, err)
	}
	return nil
}

func applyEnv(lookup func(string) (string, bool), cfg *Config) error {
	strs := map[string]*string{
		"FORMAT":       &cfg.Format,
		"PREVIEW":      &cfg.Preview,
		"HOST":         &cfg.Host,
		"METRICS_FILE": &cfg.MetricsFile,
	}
	for key, dst := range strs {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup(envPrefix + "MAX_DOCUMENT_BYTES"); ok && v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			return fmt.Errorf("invalid %sMAX_DOCUMENT_BYTES: %w", envPrefix, err)
		}
		cfg.MaxDocumentBytes = n
	}
	if v, ok := lookup(envPrefix + "TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("invalid %sTIMEOUT: %w", envPrefix, err)
		}
		cfg.Timeout = d
	}
	return nil
}

func applyFlags(fs *pflag.FlagSet, cfg *Config) error {
	var err error
	fs.Visit(func(f *pflag.Flag) {
		if err != nil {
			return
		}
		switch f.Name {
		case FlagFormat:
			cfg.Format = strings.ToLower(f.Value.String())
		case FlagHost:
			cfg.Host = f.Value.String()
		case FlagMetricsFile:
			cfg.MetricsFile = f.Value.String()
		case FlagPreview:
			var on bool
			on, err = fs.GetBool(FlagPreview)
			if on {
				cfg.Preview = PreviewAlways
			} else {
				cfg.Preview = PreviewNever
			}
		case FlagMaxBytes:
			cfg.MaxDocumentBytes, err = fs.GetInt64(FlagMaxBytes)
		case FlagTimeout:
			cfg.Timeout, err = fs.GetDuration(FlagTimeout)
		}
	})
	if err != nil {
		return fmt.Errorf("invalid flag: %w", err)
	}
	return nil
}

// validate is a singleton validator instance.
var validate = validator.New()

func formatValidationError(err error) error {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) {
		return err
	}

	msgs := make([]string, 0, len(verrs))
	for _, e := range verrs {
		switch e.Tag() {
		case "oneof":
			msgs = append(msgs, fmt.Sprintf("%s: must be one of [%s], got %q", e.Field(), e.Param(), e.Value()))
		case "min":
			msgs = append(msgs, fmt.Sprintf("%s: must be at least %s", e.Field(), e.Param()))
		default:
			msgs = append(msgs, fmt.Sprintf("%s: failed %s validation", e.Field(), e.Tag()))
		}
	}
	return fmt.Errorf("invalid configuration: %s", strings.Join(msgs, "; "))
}
