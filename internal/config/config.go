package config

import (
	"bytes"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

// Config is the root configuration for spot, stored in ~/.spotsecure/config.json.
// The file supports single-line // comments for documentation purposes.
// Every value can be overridden from the environment.
type Config struct {
	Storage StorageConfig `json:"storage"`
	Redis   RedisConfig   `json:"redis"`
	Billing BillingConfig `json:"billing"`
	Notify  NotifyConfig  `json:"notify"`
	Log     LogConfig     `json:"log"`
}

// StorageConfig selects where entries are persisted.
type StorageConfig struct {
	// Backend is "file" or "redis".
	Backend string `json:"backend" env:"SPOT_STORAGE_BACKEND"`
}

// RedisConfig is used when Storage.Backend is "redis".
type RedisConfig struct {
	Addr      string `json:"addr" env:"SPOT_REDIS_ADDR"`
	Password  string `json:"password" env:"SPOT_REDIS_PASSWORD"`
	DB        int    `json:"db" env:"SPOT_REDIS_DB"`
	Namespace string `json:"namespace" env:"SPOT_REDIS_NAMESPACE"`
}

// BillingConfig holds lot size and tariff.
type BillingConfig struct {
	Capacity    int     `json:"capacity" env:"SPOT_CAPACITY"`
	RatePerHour float64 `json:"rate_per_hour" env:"SPOT_RATE_PER_HOUR"`
}

// NotifyConfig holds push notification settings. An empty AppKey disables
// notifications.
type NotifyConfig struct {
	BaseURL string   `json:"base_url" env:"SPOT_NOTIFY_BASE_URL"`
	AppKey  string   `json:"app_key" env:"SPOT_NOTIFY_APP_KEY"`
	Timeout Duration `json:"timeout" env:"SPOT_NOTIFY_TIMEOUT"`
}

// LogConfig holds the zap level name.
type LogConfig struct {
	Level string `json:"level" env:"SPOT_LOG_LEVEL"`
}

// Duration is a time.Duration written as "10s" in both the file and the
// environment.
type Duration time.Duration

// UnmarshalText parses a Go duration string.
func (d *Duration) UnmarshalText(b []byte) error {
	v, err := time.ParseDuration(string(b))
	if err != nil {
		return fmt.Errorf("invalid duration %q: %w", b, err)
	}
	*d = Duration(v)
	return nil
}

// SetValue lets cleanenv fill the field from an environment variable.
func (d *Duration) SetValue(s string) error {
	return d.UnmarshalText([]byte(s))
}

// Std returns d as a time.Duration.
func (d Duration) Std() time.Duration { return time.Duration(d) }

// MarshalText renders the duration in Go syntax.
func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

const (
	BackendFile  = "file"
	BackendRedis = "redis"

	DefaultCapacity    = 20
	DefaultRatePerHour = 5.0
	DefaultRedisAddr   = "localhost:6379"
	DefaultNamespace   = "spotsecure"
	DefaultBaseURL     = "https://api.infobip.com"
	DefaultTimeout     = Duration(10 * time.Second)
	DefaultLogLevel    = "warn"
)

// Default returns a Config pre-filled with the built-in defaults.
func Default() Config {
	return Config{
		Storage: StorageConfig{Backend: BackendFile},
		Redis:   RedisConfig{Addr: DefaultRedisAddr, Namespace: DefaultNamespace},
		Billing: BillingConfig{Capacity: DefaultCapacity, RatePerHour: DefaultRatePerHour},
		Notify:  NotifyConfig{BaseURL: DefaultBaseURL, Timeout: DefaultTimeout},
		Log:     LogConfig{Level: DefaultLogLevel},
	}
}

// configTemplate is the annotated config written on first run.
// Lines whose trimmed content starts with // are stripped before JSON parsing,
// allowing human-readable documentation inside the file.
const configTemplate = `// spot configuration - ~/.spotsecure/config.json
//
// All settings are optional. Every value can also be set from the
// environment (SPOT_CAPACITY, SPOT_STORAGE_BACKEND, SPOT_NOTIFY_APP_KEY, ...),
// which takes precedence over this file.
{
  // Where entries are kept: "file" (~/.spotsecure/entries.json) or "redis".
  "storage": {
    "backend": "file"
  },

  // Only used with the redis backend. Entries live under <namespace>:entries.
  "redis": {
    "addr": "localhost:6379",
    "password": "",
    "db": 0,
    "namespace": "spotsecure"
  },

  // Number of slots and the hourly rate charged for Paid parking.
  "billing": {
    "capacity": 20,
    "rate_per_hour": 5
  },

  // Push notification sent when a car with a mobile number is added.
  // Leave app_key empty to disable notifications.
  "notify": {
    "base_url": "https://api.infobip.com",
    "app_key": "",
    "timeout": "10s"
  },

  // debug, info, warn or error. Logs go to stderr.
  "log": {
    "level": "warn"
  }
}
`

// DefaultPath returns the path to ~/.spotsecure/config.json.
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("cannot determine home directory: %w", err)
	}
	return filepath.Join(home, ".spotsecure", "config.json"), nil
}

// stripLineComments removes lines whose leading non-whitespace content starts
// with //. Only full-line comments are handled; inline comments are not stripped.
func stripLineComments(data []byte) []byte {
	var out []byte
	for _, line := range bytes.Split(data, []byte("\n")) {
		if bytes.HasPrefix(bytes.TrimLeft(line, " \t"), []byte("//")) {
			continue
		}
		out = append(out, line...)
		out = append(out, '\n')
	}
	return out
}

// Load reads the config at path (DefaultPath when empty), creating it with
// annotated defaults on first run, then applies environment overrides.
// Values missing from the file keep their defaults.
func Load(path string) (Config, error) {
	cfg := Default()

	if path == "" {
		p, err := DefaultPath()
		if err != nil {
			return cfg, err
		}
		path = p
	}

	data, err := os.ReadFile(path)
	switch {
	case os.IsNotExist(err):
		if writeErr := writeDefault(path); writeErr != nil {
			fmt.Fprintf(os.Stderr, "Warning: could not create config file %s: %v\n", path, writeErr)
		}
	case err != nil:
		return cfg, fmt.Errorf("reading config file %s: %w", path, err)
	default:
		if err := cleanenv.ParseJSON(bytes.NewReader(stripLineComments(data)), &cfg); err != nil {
			return Default(), fmt.Errorf("parsing config file %s: %w\nTip: delete the file to regenerate defaults", path, err)
		}
	}

	if err := cleanenv.ReadEnv(&cfg); err != nil {
		return cfg, fmt.Errorf("reading environment: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate rejects values no command can work with.
func (c Config) Validate() error {
	var errs []error
	if c.Billing.Capacity <= 0 {
		errs = append(errs, fmt.Errorf("billing.capacity must be positive, got %d", c.Billing.Capacity))
	}
	if c.Billing.RatePerHour < 0 {
		errs = append(errs, fmt.Errorf("billing.rate_per_hour must not be negative, got %v", c.Billing.RatePerHour))
	}
	switch c.Storage.Backend {
	case BackendFile, BackendRedis:
	default:
		errs = append(errs, fmt.Errorf("storage.backend must be %q or %q, got %q", BackendFile, BackendRedis, c.Storage.Backend))
	}
	if c.Notify.Timeout < 0 {
		errs = append(errs, fmt.Errorf("notify.timeout must not be negative"))
	}
	if len(errs) > 0 {
		return fmt.Errorf("invalid configuration: %w", errors.Join(errs...))
	}
	return nil
}

// Help lists the supported environment variables.
func Help() (string, error) {
	cfg := Default()
	return cleanenv.GetDescription(&cfg, nil)
}

// writeDefault creates the config directory and writes the annotated default
// config template.
func writeDefault(path string) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("creating config directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(configTemplate), 0o600); err != nil {
		return fmt.Errorf("writing default config: %w", err)
	}
	return nil
}
