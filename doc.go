// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package main provides the entry point for the ballotbox API server.

ballotbox stores voters and elections as schemaless documents and records
votes against an election's candidate list.

# Starting the Server

The server reads environment variables or CLI flags:

	DATABASE_URL=file:ballotbox.db go run .

Or with flags:

	go run . -p 3318 -t postgres -d "postgres://..."

# Configuration

  - STORE_TYPE (-t): sqlite, postgres, mongo, firestore or redis
  - DATABASE_URL (-d): connection string (all but firestore)
  - FIRESTORE_PROJECT_ID (-project): firestore only
  - PORT (-p): Server port (default: 3318)

See package cliparse for the full list.

# Architecture

  - handlers: HTTP request handlers (voters, elections, voting)
  - router: Route definitions using Go 1.22+ routing, dispatch shim
  - middleware: CORS, logging, timeouts, JSON helpers
  - models: Documents, response types, messages
  - store: Document store interface and backends
  - db: SQL schema creation
  - cliparse: Configuration parsing
  - function: Serverless HTTP entry point

See package documentation for each component.
*/
package main
