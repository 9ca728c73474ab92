package config

import (
	"errors"
	"os"

	"github.com/kelseyhightower/envconfig"
	"gopkg.in/yaml.v2"
	"handhistory-server/internal/util"
	"handhistory-server/pkg/holdem"
)

// Storage drivers
const (
	DriverPostgres = "postgres"
	DriverRedis    = "redis"
	DriverMemory   = "memory"
)

// Redis configures the redis hand store
type Redis struct {
	Addr     string `yaml:"addr" envconfig:"addr"`
	Password string `yaml:"password" envconfig:"password"`
	DB       int    `yaml:"db" envconfig:"db"`
}

// Storage selects where hand histories are kept
type Storage struct {
	Driver string `yaml:"driver" envconfig:"driver"`
	Redis  Redis  `yaml:"redis" envconfig:"redis"`
}

// Table configures the simulated table
type Table struct {
	Players         []string               `yaml:"players" envconfig:"players"`
	SmallBlind      int                    `yaml:"smallBlind" envconfig:"small_blind"`
	BigBlind        int                    `yaml:"bigBlind" envconfig:"big_blind"`
	StartingStack   int                    `yaml:"startingStack" envconfig:"starting_stack"`
	RoundCompletion holdem.RoundCompletion `yaml:"roundCompletion" envconfig:"round_completion"`
}

// Options returns the engine options for the table
func (t Table) Options() holdem.Options {
	return holdem.Options{
		SmallBlind:      t.SmallBlind,
		BigBlind:        t.BigBlind,
		StartingStack:   t.StartingStack,
		RoundCompletion: t.RoundCompletion,
	}
}

// Config provides configuration for the hand history server
type Config struct {
	loaded         bool
	Addr           string  `yaml:"addr" envconfig:"addr"`
	PGDSN          string  `yaml:"pgDsn" envconfig:"pg_dsn"`
	MigrationsPath string  `yaml:"migrationsPath" envconfig:"migrations_path"`
	Storage        Storage `yaml:"storage" envconfig:"storage"`
	Table          Table   `yaml:"table" envconfig:"table"`
	Log            struct {
		Level             string `yaml:"level" envconfig:"level"`
		DisableAccessLogs bool   `yaml:"disableAccessLogs" envconfig:"disable_access_logs"`
	} `yaml:"log" envconfig:"log"`
	CORS struct {
		AllowedOrigins []string `yaml:"allowedOrigins" envconfig:"allowed_origins"`
	} `yaml:"cors" envconfig:"cors"`
}

var config Config

// DefaultConfig returns the configuration used when nothing overrides it
func DefaultConfig() Config {
	opts := holdem.DefaultOptions()

	cfg := Config{
		Addr:           ":5000",
		PGDSN:          "postgres://postgres@localhost:5432/postgres?sslmode=disable",
		MigrationsPath: "./sql",
		Storage: Storage{
			Driver: DriverPostgres,
			Redis:  Redis{Addr: "localhost:6379"},
		},
		Table: Table{
			Players:         append([]string{}, holdem.DefaultNames...),
			SmallBlind:      opts.SmallBlind,
			BigBlind:        opts.BigBlind,
			StartingStack:   opts.StartingStack,
			RoundCompletion: opts.RoundCompletion,
		},
	}

	cfg.Log.Level = "info"
	cfg.CORS.AllowedOrigins = []string{"http://localhost:3000"}
	return cfg
}

// Instance returns a singleton instance
// If the config hasn't been loaded, it will be loaded
func Instance() Config {
	if !config.loaded {
		if err := Load(); err != nil {
			panic(err)
		}
	}

	return config
}

// Load will load the configuration
// The config file is optional; environment variables prefixed with HHS_ override it
func Load() error {
	cfg := DefaultConfig()

	configFile := util.Getenv("HHS_CONFIG_FILE", "config.yaml")
	file, err := os.Open(configFile)
	if err != nil && !errors.Is(err, os.ErrNotExist) {
		return err
	}

	if file != nil {
		defer file.Close()
		if err := yaml.NewDecoder(file).Decode(&cfg); err != nil {
			return err
		}
	}

	if err := envconfig.Process("hhs", &cfg); err != nil {
		return err
	}

	if err := cfg.Validate(); err != nil {
		return err
	}

	cfg.loaded = true
	config = cfg
	return nil
}

// Validate checks values that would otherwise fail later at runtime
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverPostgres, DriverRedis, DriverMemory:
	default:
		return errors.New("storage.driver must be one of postgres, redis or memory")
	}

	if len(c.Table.Players) != holdem.SeatCount {
		return errors.New("table.players must name exactly 6 players")
	}

	seen := make(map[string]bool, len(c.Table.Players))
	for _, name := range c.Table.Players {
		if name == "" || seen[name] {
			return errors.New("table.players must be unique and non-empty")
		}

		seen[name] = true
	}

	return nil
}
