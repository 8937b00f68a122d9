// Package config loads the pushfold settings from the environment, then lets
// command-line flags override them.
package config

import (
	crand "crypto/rand"
	"encoding/binary"
	"errors"
	"flag"
	"fmt"
	"strings"

	"github.com/caarlos0/env/v11"
)

const (
	StoreSQLite = "sqlite"
	StoreMemory = "memory"
)

type Config struct {
	Store    string `env:"PUSHFOLD_STORE" envDefault:"sqlite"`
	DBPath   string `env:"PUSHFOLD_DB_PATH" envDefault:"pushfold.db"`
	Seed     int64  `env:"PUSHFOLD_SEED"`
	Preset   bool   `env:"PUSHFOLD_SEED_DEFAULT" envDefault:"true"`
	LogLevel string `env:"PUSHFOLD_LOG_LEVEL" envDefault:"info"`
}

// Parse reads the environment and then parses args with fs.
func Parse(fs *flag.FlagSet, args []string) (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if fs == nil {
		return Config{}, errors.New("flag parser is required")
	}
	fs.StringVar(&cfg.Store, "store", cfg.Store, "Range storage: sqlite or memory")
	fs.StringVar(&cfg.DBPath, "db", cfg.DBPath, "SQLite database path")
	fs.Int64Var(&cfg.Seed, "seed", cfg.Seed, "Random seed for dealing (0 picks one)")
	fs.StringVar(&cfg.LogLevel, "log-level", cfg.LogLevel, "Log level: debug, info, warn or error")
	if args == nil {
		args = []string{}
	}
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, cfg.Validate()
}

func (c Config) Validate() error {
	switch c.Store {
	case StoreSQLite:
		if strings.TrimSpace(c.DBPath) == "" {
			return errors.New("database path is required for the sqlite store")
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}
	switch strings.ToLower(c.LogLevel) {
	case "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown log level %q", c.LogLevel)
	}
	return nil
}

// RandSeed returns the configured seed, or a fresh one from crypto/rand when
// none is set.
func (c Config) RandSeed() (int64, error) {
	if c.Seed != 0 {
		return c.Seed, nil
	}
	var b [8]byte
	if _, err := crand.Read(b[:]); err != nil {
		return 0, fmt.Errorf("read random seed: %w", err)
	}
	return int64(binary.LittleEndian.Uint64(b[:])), nil
}
