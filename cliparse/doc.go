// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package cliparse handles command-line argument parsing and configuration.

# Configuration

ParseFlags returns a Config struct with all settings:

	cfg, err := cliparse.ParseFlags(os.Args[1:])

# Config Fields

  - Port: Server listen port (default: 3318)
  - StoreType: sqlite, postgres, mongo, firestore or redis (default: sqlite)
  - DatabaseURL: Connection string for sqlite, postgres, mongo and redis
  - DatabaseName: Mongo database name (default: ballotbox)
  - ProjectID: Firestore project ID (firestore only)
  - CredentialsFile: Service account JSON for Firestore (optional)
  - MaxBodyBytes: Request body limit (default: 1 MiB)
  - StoreTimeout: Deadline for store calls per request (default: 10s)

# CLI Flags

	-p              Server port
	-t              Store type
	-d              Database URL
	-db-name        Mongo database name
	-project        Firestore project ID
	-credentials    Credentials file
	-max-body       Body size limit, humanized ("512KB", "2 MiB")
	-store-timeout  Go duration, 0 disables

# Environment Variables

Flags fall back to environment variables:

	PORT                           → -p
	STORE_TYPE                     → -t
	DATABASE_URL                   → -d
	DATABASE_NAME                  → -db-name
	FIRESTORE_PROJECT_ID           → -project
	GOOGLE_APPLICATION_CREDENTIALS → -credentials
	MAX_BODY_SIZE                  → -max-body
	STORE_TIMEOUT                  → -store-timeout

A .env file in the working directory is loaded first if present. Variables
already set in the environment are not overridden by it. CLI flags take
precedence over both.

# Validation

ParseFlags returns an error if:

  - DATABASE_URL is missing for sqlite, postgres, mongo or redis
  - FIRESTORE_PROJECT_ID is missing for firestore
  - the store type is unknown
  - the body size or timeout cannot be parsed
*/
package cliparse
