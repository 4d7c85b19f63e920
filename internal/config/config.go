package config

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/leebrouse/favorites/internal/validator"
)

const (
	SeedBuiltin  = "builtin"
	SeedPostgres = "postgres"
)

type Config struct {
	Port     int    `mapstructure:"port"`
	Env      string `mapstructure:"env"`
	LogLevel string `mapstructure:"log_level"`
	Seed     struct {
		Source string `mapstructure:"source"` // builtin or postgres
	} `mapstructure:"seed"`
	DB struct {
		DSN          string        `mapstructure:"dsn"`
		MaxOpenConns int           `mapstructure:"max_open_conns"`
		MaxIdleConns int           `mapstructure:"max_idle_conns"`
		MaxIdleTime  time.Duration `mapstructure:"max_idle_time"`
	} `mapstructure:"db"`
	Limiter struct {
		Enabled bool    `mapstructure:"enabled"`
		RPS     float64 `mapstructure:"rps"`
		Burst   int     `mapstructure:"burst"`
	} `mapstructure:"limiter"`
	CORS struct {
		TrustedOrigins []string `mapstructure:"trusted_origins"`
	} `mapstructure:"cors"`
}

// Flags returns the command-line flag set understood by Load. Flag names use
// dashes in place of the dots of the configuration keys (db-dsn for db.dsn).
func Flags() *pflag.FlagSet {
	fs := pflag.NewFlagSet("favorites", pflag.ContinueOnError)

	fs.String("config", "", "Path to a config file (default: config.yaml in . or ./config)")
	fs.Int("port", 4000, "API server port")
	fs.String("env", "development", "Environment (development|staging|production)")
	fs.String("log-level", "info", "Minimum log level (info|error|fatal|off)")

	fs.String("seed-source", SeedBuiltin, "Where the movie list comes from (builtin|postgres)")

	fs.String("db-dsn", "", "PostgreSQL DSN, required when seed-source is postgres")
	fs.Int("db-max-open-conns", 25, "PostgreSQL max open connections")
	fs.Int("db-max-idle-conns", 25, "PostgreSQL max idle connections")
	fs.Duration("db-max-idle-time", 15*time.Minute, "PostgreSQL max connection idle time")

	fs.Bool("limiter-enabled", true, "Enable rate limiter")
	fs.Float64("limiter-rps", 2, "Rate limiter maximum requests per second")
	fs.Int("limiter-burst", 4, "Rate limiter maximum burst")

	fs.StringSlice("cors-trusted-origins", nil, "Trusted CORS origins (comma separated)")

	return fs
}

// Load resolves the configuration from, in increasing priority: flag
// defaults, the config file, FAVORITES_* environment variables and flags set
// explicitly on the command line.
func Load(args []string) (*Config, error) {
	fs := Flags()
	if err := fs.Parse(args); err != nil {
		return nil, err
	}

	v := viper.New()

	fs.VisitAll(func(f *pflag.Flag) {
		if f.Name == "config" {
			return
		}
		_ = v.BindPFlag(flagKey(f.Name), f)
	})

	v.SetEnvPrefix("FAVORITES")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	path, _ := fs.GetString("config")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("./config")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		// A missing file is only fine when none was asked for.
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("decode config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// flagKey maps a flag name to its configuration key: the first dash of a
// sectioned flag becomes a dot, the rest become underscores.
func flagKey(name string) string {
	for _, section := range []string{"seed", "db", "limiter", "cors"} {
		if rest, ok := strings.CutPrefix(name, section+"-"); ok {
			return section + "." + strings.ReplaceAll(rest, "-", "_")
		}
	}
	return strings.ReplaceAll(name, "-", "_")
}

func (c *Config) Validate() error {
	v := validator.New()

	v.Check(c.Port > 0 && c.Port <= 65535, "port", "must be between 1 and 65535")
	v.Check(validator.PermittedValue(c.Env, "development", "staging", "production"), "env", "must be development, staging or production")
	v.Check(validator.PermittedValue(c.Seed.Source, SeedBuiltin, SeedPostgres), "seed.source", "must be builtin or postgres")
	if c.Seed.Source == SeedPostgres {
		v.Check(c.DB.DSN != "", "db.dsn", "must be provided when seed.source is postgres")
	}
	if c.Limiter.Enabled {
		v.Check(c.Limiter.RPS > 0, "limiter.rps", "must be greater than zero")
		v.Check(c.Limiter.Burst > 0, "limiter.burst", "must be greater than zero")
	}

	if v.Valid() {
		return nil
	}

	msgs := make([]string, 0, len(v.Errors))
	for key, msg := range v.Errors {
		msgs = append(msgs, key+" "+msg)
	}
	sort.Strings(msgs)
	return fmt.Errorf("invalid config: %s", strings.Join(msgs, "; "))
}
