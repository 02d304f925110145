// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"fmt"

	"github.com/danielhkuo/ballotbox/cliparse"
)

// Open connects to the backend selected by cfg.StoreType
func Open(ctx context.Context, cfg cliparse.Config) (Store, error) {
	var (
		st  Store
		err error
	)

	switch cfg.StoreType {
	case cliparse.StoreSQLite:
		st, err = asStore(OpenSQL(ctx, DialectSQLite, cfg.DatabaseURL))
	case cliparse.StorePostgres:
		st, err = asStore(OpenSQL(ctx, DialectPostgres, cfg.DatabaseURL))
	case cliparse.StoreMongo:
		st, err = asStore(OpenMongo(ctx, cfg.DatabaseURL, cfg.DatabaseName))
	case cliparse.StoreFirestore:
		st, err = asStore(OpenFirestore(ctx, cfg.ProjectID, cfg.CredentialsFile))
	case cliparse.StoreRedis:
		st, err = asStore(OpenRedis(ctx, cfg.DatabaseURL))
	default:
		return nil, fmt.Errorf("unknown store type %q", cfg.StoreType)
	}

	if err != nil {
		return nil, fmt.Errorf("failed to open %s store: %w", cfg.StoreType, err)
	}
	return st, nil
}

// asStore drops the concrete pointer on error so callers never see a
// non-nil Store holding a nil backend
func asStore[S Store](s S, err error) (Store, error) {
	if err != nil {
		return nil, err
	}
	return s, nil
}
