// =============================================================================
// creditstream configuration loader
// =============================================================================
// Unified config loading: defaults, then an optional YAML file, then
// environment variable overrides.
//
// Usage:
//
//	cfg, err := config.NewLoader().
//	    WithConfigPath("creditstream.yaml").
//	    WithEnvPrefix("CREDITSTREAM").
//	    Load()
//
// Precedence: defaults -> YAML file -> environment variables
// =============================================================================
package config

import (
	"fmt"
	"os"
	"reflect"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds every tunable creditstream and cipher knob that a host
// application might want to change without recompiling.
type Config struct {
	// Stream holds the CreditStream buffer/backpressure defaults.
	Stream StreamConfig `yaml:"stream" env:"STREAM"`

	// Cipher holds the CipherPipeline block-size default.
	Cipher CipherConfig `yaml:"cipher" env:"CIPHER"`

	// Log configures the injected *zap.Logger construction for callers
	// that build one from this config rather than supplying their own.
	Log LogConfig `yaml:"log" env:"LOG"`

	// Telemetry configures the library's OpenTelemetry span sampling hint.
	Telemetry TelemetryConfig `yaml:"telemetry" env:"TELEMETRY"`
}

// StreamConfig configures CreditStream defaults. There is deliberately no
// knob for a generic generator's buffer budget: Generator.BufferBudget is
// a required method and zero/negative values already carry rendezvous
// semantics, so no "unset" value exists to fall back from.
type StreamConfig struct {
	// DefaultByteBudget is the size-in-bytes budget NewByteStream uses
	// when creditstream.WithByteStreamConfig applies this config, unless a
	// later WithByteBufferBudget option overrides it.
	DefaultByteBudget int `yaml:"default_byte_budget" env:"DEFAULT_BYTE_BUDGET"`
	// GenerateTimeout bounds how long a single Generator.Generate call may
	// run before the consumer treats the worker as faulted. Zero disables
	// the timeout.
	GenerateTimeout time.Duration `yaml:"generate_timeout" env:"GENERATE_TIMEOUT"`
}

// CipherConfig configures the CipherPipeline's default block cipher.
type CipherConfig struct {
	// BlockSizeName names an AES key size: "aes-128", "aes-192", or
	// "aes-256". BlockKeySize maps it to a key length in bytes; the cipher
	// package does not read it.
	BlockSizeName string `yaml:"block_size_name" env:"BLOCK_SIZE_NAME"`
}

// LogConfig configures the logger a host builds via config.NewLogger.
type LogConfig struct {
	// Level is one of debug, info, warn, error.
	Level string `yaml:"level" env:"LEVEL"`
	// Format is json or console.
	Format string `yaml:"format" env:"FORMAT"`
}

// TelemetryConfig configures span sampling hints passed to a host's
// TracerProvider; creditstream never constructs the provider itself.
type TelemetryConfig struct {
	// Enabled is carried for the host; creditstream does not read it and
	// starts its spans either way, and cipher starts no spans.
	Enabled bool `yaml:"enabled" env:"ENABLED"`
	// SampleRate is advisory; it is surfaced for a host's sampler, since
	// this library never installs its own TracerProvider.
	SampleRate float64 `yaml:"sample_rate" env:"SAMPLE_RATE"`
}

// Loader loads a Config using the builder pattern.
type Loader struct {
	configPath string
	envPrefix  string
	validators []func(*Config) error
}

// NewLoader creates a new configuration loader.
func NewLoader() *Loader {
	return &Loader{
		envPrefix:  "CREDITSTREAM",
		validators: make([]func(*Config) error, 0),
	}
}

// WithConfigPath sets an optional YAML config file path.
func (l *Loader) WithConfigPath(path string) *Loader {
	l.configPath = path
	return l
}

// WithEnvPrefix sets the environment variable prefix.
func (l *Loader) WithEnvPrefix(prefix string) *Loader {
	l.envPrefix = prefix
	return l
}

// WithValidator adds a configuration validator.
func (l *Loader) WithValidator(v func(*Config) error) *Loader {
	l.validators = append(l.validators, v)
	return l
}

// Load loads config with precedence defaults -> YAML file -> environment.
func (l *Loader) Load() (*Config, error) {
	cfg := DefaultConfig()

	if l.configPath != "" {
		if err := l.loadFromFile(cfg); err != nil {
			return nil, fmt.Errorf("failed to load config from file: %w", err)
		}
	}

	if err := l.loadFromEnv(cfg); err != nil {
		return nil, fmt.Errorf("failed to load config from env: %w", err)
	}

	for _, v := range l.validators {
		if err := v(cfg); err != nil {
			return nil, fmt.Errorf("config validation failed: %w", err)
		}
	}

	return cfg, nil
}

func (l *Loader) loadFromFile(cfg *Config) error {
	data, err := os.ReadFile(l.configPath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil
		}
		return fmt.Errorf("failed to read config file: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return fmt.Errorf("failed to parse config file: %w", err)
	}

	return nil
}

func (l *Loader) loadFromEnv(cfg *Config) error {
	return l.setFieldsFromEnv(reflect.ValueOf(cfg).Elem(), l.envPrefix)
}

func (l *Loader) setFieldsFromEnv(v reflect.Value, prefix string) error {
	t := v.Type()

	for i := 0; i < v.NumField(); i++ {
		field := v.Field(i)
		fieldType := t.Field(i)

		envTag := fieldType.Tag.Get("env")
		if envTag == "" || envTag == "-" {
			continue
		}

		envKey := prefix + "_" + envTag

		if field.Kind() == reflect.Struct {
			if err := l.setFieldsFromEnv(field, envKey); err != nil {
				return err
			}
			continue
		}

		envValue := os.Getenv(envKey)
		if envValue == "" {
			continue
		}

		if err := setFieldValue(field, envValue); err != nil {
			return fmt.Errorf("failed to set %s: %w", envKey, err)
		}
	}

	return nil
}

func setFieldValue(field reflect.Value, value string) error {
	if !field.CanSet() {
		return nil
	}

	switch field.Kind() {
	case reflect.String:
		field.SetString(value)

	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		if field.Type() == reflect.TypeOf(time.Duration(0)) {
			d, err := time.ParseDuration(value)
			if err != nil {
				return err
			}
			field.SetInt(int64(d))
		} else {
			i, err := strconv.ParseInt(value, 10, 64)
			if err != nil {
				return err
			}
			field.SetInt(i)
		}

	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		u, err := strconv.ParseUint(value, 10, 64)
		if err != nil {
			return err
		}
		field.SetUint(u)

	case reflect.Float32, reflect.Float64:
		f, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return err
		}
		field.SetFloat(f)

	case reflect.Bool:
		b, err := strconv.ParseBool(value)
		if err != nil {
			return err
		}
		field.SetBool(b)

	case reflect.Slice:
		if field.Type().Elem().Kind() == reflect.String {
			parts := strings.Split(value, ",")
			for i := range parts {
				parts[i] = strings.TrimSpace(parts[i])
			}
			field.Set(reflect.ValueOf(parts))
		}
	}

	return nil
}

// MustLoad loads config, panicking on failure.
func MustLoad(path string) *Config {
	cfg, err := NewLoader().WithConfigPath(path).Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

// LoadFromEnv loads config from environment variables only.
func LoadFromEnv() (*Config, error) {
	return NewLoader().Load()
}

// Validate checks that the config is self-consistent.
func (c *Config) Validate() error {
	var errs []string

	if c.Stream.DefaultByteBudget <= 0 {
		errs = append(errs, "stream.default_byte_budget must be positive")
	}
	if c.Stream.GenerateTimeout < 0 {
		errs = append(errs, "stream.generate_timeout must not be negative")
	}
	switch c.Cipher.BlockSizeName {
	case "aes-128", "aes-192", "aes-256":
	default:
		errs = append(errs, "cipher.block_size_name must be one of aes-128, aes-192, aes-256")
	}
	if c.Telemetry.SampleRate < 0 || c.Telemetry.SampleRate > 1 {
		errs = append(errs, "telemetry.sample_rate must be between 0 and 1")
	}

	if len(errs) > 0 {
		return fmt.Errorf("config validation errors: %s", strings.Join(errs, "; "))
	}

	return nil
}
