// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package db handles database schema creation for the SQL document store.

# Schema Creation

CreateSchema initializes all required tables:

	if err := db.CreateSchema(conn); err != nil {
		log.Fatal(err)
	}

Safe to call multiple times - uses IF NOT EXISTS for all tables.

# Tables

One table per document collection:

  - voter: voters collection
  - election: elections collection

Each row is (id, doc, created_at, updated_at) where doc is the JSON-encoded
document. The same DDL runs on PostgreSQL and SQLite.
*/
package db
