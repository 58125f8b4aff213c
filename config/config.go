// Package config loads the zen command settings from an optional yaml file,
// the environment (ZEN_ prefixed, .env supported) and command line overrides.
package config

import (
	"context"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/etnz/zenvoice"
	"github.com/etnz/zenvoice/kv"
	"github.com/go-playground/validator/v10"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config is the complete configuration of the zen command.
type Config struct {
	Storage  StorageConfig `mapstructure:"storage" validate:"required"`
	Redis    RedisConfig   `mapstructure:"redis"`
	Currency string        `mapstructure:"currency" validate:"len=3"`
	Locale   string        `mapstructure:"locale"`
	TaxRate  float64       `mapstructure:"tax_rate" validate:"gte=0"`
	Log      LogConfig     `mapstructure:"log" validate:"required"`
}

type StorageConfig struct {
	Backend string `mapstructure:"backend" validate:"oneof=dir memory redis"`
	Dir     string `mapstructure:"dir" validate:"required_if=Backend dir"`
}

type RedisConfig struct {
	Addr     string `mapstructure:"addr"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db" validate:"gte=0"`
	Prefix   string `mapstructure:"prefix"`
}

type LogConfig struct {
	Level string `mapstructure:"level" validate:"oneof=debug info warn error"`
}

// defaults are the settings used when nothing else is configured.
var defaults = map[string]any{
	"storage.backend": "dir",
	"storage.dir":     ".zenvoice",
	"redis.addr":      "localhost:6379",
	"redis.password":  "",
	"redis.db":        0,
	"redis.prefix":    "",
	"currency":        zenvoice.DefaultCurrency,
	"locale":          zenvoice.DefaultLocale,
	"tax_rate":        18,
	"log.level":       "warn",
}

// Load reads the configuration.
//
// file is an explicit configuration file, when empty zenvoice.yaml is looked
// up in the current directory then in $HOME/.config/zenvoice, and it is fine
// if there is none. overrides take precedence over everything else, keys are
// dotted paths like "storage.dir", empty string values are ignored.
func Load(file string, overrides map[string]any) (*Config, error) {
	// A missing .env file is fine.
	_ = godotenv.Load()

	v := viper.New()
	for k, val := range defaults {
		v.SetDefault(k, val)
	}

	if file != "" {
		v.SetConfigFile(file)
	} else {
		v.SetConfigName("zenvoice")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".config", "zenvoice"))
		}
	}

	v.SetEnvPrefix("ZEN")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		if file != "" || !errors.As(err, &viper.ConfigFileNotFoundError{}) {
			return nil, errors.Wrap(err, "reading configuration")
		}
	}

	for k, val := range overrides {
		if s, ok := val.(string); ok && s == "" {
			continue
		}
		v.Set(k, val)
	}

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return nil, errors.Wrap(err, "decoding configuration")
	}
	if err := c.Validate(); err != nil {
		return nil, err
	}
	return &c, nil
}

// Validate checks field constraints and that the currency is known.
func (c Config) Validate() error {
	if err := validator.New(validator.WithRequiredStructEnabled()).Struct(c); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	if _, err := c.Formatter(); err != nil {
		return errors.Wrap(err, "invalid configuration")
	}
	return nil
}

// Formatter returns the currency formatter.
func (c Config) Formatter() (zenvoice.Formatter, error) {
	return zenvoice.NewFormatter(c.Currency, c.Locale)
}

// DefaultTaxRate returns the tax rate of new invoices, in percent.
func (c Config) DefaultTaxRate() decimal.Decimal { return decimal.NewFromFloat(c.TaxRate) }

// Logger builds a console logger writing to w at the configured level.
// verbose forces the debug level.
func (c Config) Logger(w io.Writer, verbose bool) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(c.Log.Level)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", c.Log.Level)
	}
	if verbose {
		level = zapcore.DebugLevel
	}
	enc := zap.NewDevelopmentEncoderConfig()
	enc.EncodeTime = zapcore.ISO8601TimeEncoder
	core := zapcore.NewCore(zapcore.NewConsoleEncoder(enc), zapcore.AddSync(w), level)
	return zap.New(core), nil
}

// Store opens the configured storage backend. closer releases it.
func (c Config) Store(ctx context.Context) (s kv.Store, closer func() error, err error) {
	nop := func() error { return nil }
	switch c.Storage.Backend {
	case "memory":
		return kv.NewMemory(), nop, nil
	case "dir":
		return kv.NewDir(c.Storage.Dir), nop, nil
	case "redis":
		r := kv.NewRedis(kv.RedisOptions{
			Addr:     c.Redis.Addr,
			Password: c.Redis.Password,
			DB:       c.Redis.DB,
			Prefix:   c.Redis.Prefix,
		})
		if err := r.Ping(ctx); err != nil {
			r.Close()
			return nil, nil, errors.Wrapf(err, "cannot reach redis at %s", c.Redis.Addr)
		}
		return r, r.Close, nil
	}
	return nil, nil, errors.Newf("unknown storage backend %q", c.Storage.Backend)
}
