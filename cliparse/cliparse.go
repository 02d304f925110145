// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package cliparse

import (
	"errors"
	"flag"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/joho/godotenv"
)

// Store types
const (
	StoreSQLite    = "sqlite"
	StorePostgres  = "postgres"
	StoreMongo     = "mongo"
	StoreFirestore = "firestore"
	StoreRedis     = "redis"
)

const (
	defaultPort         = 3318
	defaultDatabaseName = "ballotbox"
	defaultMaxBodySize  = "1 MiB"
	defaultStoreTimeout = 10 * time.Second
)

type Config struct {
	Port            int
	StoreType       string
	DatabaseURL     string
	DatabaseName    string
	ProjectID       string
	CredentialsFile string
	MaxBodyBytes    int64
	StoreTimeout    time.Duration
}

// ParseFlags validates flags and fills the rest from the environment
func ParseFlags(args []string) (Config, error) {
	var cfg Config
	var maxBody, storeTimeout string

	// .env is optional; real environment variables win over it
	_ = godotenv.Load()

	fs := flag.NewFlagSet("ballotbox", flag.ContinueOnError)

	fs.IntVar(&cfg.Port, "p", 0, "Server port")
	fs.StringVar(&cfg.StoreType, "t", "", "Store type (sqlite, postgres, mongo, firestore, redis)")
	fs.StringVar(&cfg.DatabaseURL, "d", "", "Database URL")
	fs.StringVar(&cfg.DatabaseName, "db-name", "", "Database name (mongo)")
	fs.StringVar(&cfg.ProjectID, "project", "", "Firestore project ID")
	fs.StringVar(&cfg.CredentialsFile, "credentials", "", "Service account credentials file (prefer env)")
	fs.StringVar(&maxBody, "max-body", "", "Maximum request body size, e.g. 512KB")
	fs.StringVar(&storeTimeout, "store-timeout", "", "Per-request store timeout, 0 disables")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	if cfg.Port == 0 {
		if portStr := os.Getenv("PORT"); portStr != "" {
			port, err := strconv.Atoi(portStr)
			if err != nil {
				return Config{}, errors.New("invalid PORT env variable")
			}
			cfg.Port = port
		} else {
			cfg.Port = defaultPort
		}
	}

	if cfg.StoreType == "" {
		cfg.StoreType = os.Getenv("STORE_TYPE")
		if cfg.StoreType == "" {
			cfg.StoreType = StoreSQLite
		}
	}

	if cfg.DatabaseURL == "" {
		cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	}
	if cfg.DatabaseName == "" {
		cfg.DatabaseName = os.Getenv("DATABASE_NAME")
		if cfg.DatabaseName == "" {
			cfg.DatabaseName = defaultDatabaseName
		}
	}
	if cfg.ProjectID == "" {
		cfg.ProjectID = os.Getenv("FIRESTORE_PROJECT_ID")
	}
	if cfg.CredentialsFile == "" {
		cfg.CredentialsFile = os.Getenv("GOOGLE_APPLICATION_CREDENTIALS")
	}

	switch cfg.StoreType {
	case StoreSQLite, StorePostgres, StoreMongo, StoreRedis:
		if cfg.DatabaseURL == "" {
			return Config{}, errors.New("database URL required (use -d or DATABASE_URL env)")
		}
	case StoreFirestore:
		if cfg.ProjectID == "" {
			return Config{}, errors.New("FIRESTORE_PROJECT_ID required for firestore store")
		}
	default:
		return Config{}, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	if maxBody == "" {
		maxBody = os.Getenv("MAX_BODY_SIZE")
		if maxBody == "" {
			maxBody = defaultMaxBodySize
		}
	}
	size, err := humanize.ParseBytes(maxBody)
	if err != nil {
		return Config{}, fmt.Errorf("invalid max body size %q: %w", maxBody, err)
	}
	cfg.MaxBodyBytes = int64(size)

	if storeTimeout == "" {
		storeTimeout = os.Getenv("STORE_TIMEOUT")
	}
	cfg.StoreTimeout = defaultStoreTimeout
	if storeTimeout != "" {
		d, err := time.ParseDuration(storeTimeout)
		if err != nil || d < 0 {
			return Config{}, fmt.Errorf("invalid store timeout %q", storeTimeout)
		}
		cfg.StoreTimeout = d
	}

	return cfg, nil
}
