// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package function

import (
	"context"
	"log/slog"
	"net/http"
	"sync"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/router"
	"github.com/danielhkuo/ballotbox/store"
)

var (
	initOnce sync.Once
	handler  http.Handler
	initErr  error
)

// VotersAPI is the HTTP function entry point. Configuration comes from the
// environment; the store is opened on the first request and reused for the
// life of the instance.
func VotersAPI(w http.ResponseWriter, r *http.Request) {
	initOnce.Do(func() {
		handler, initErr = newHandler(context.Background(), nil)
	})
	if initErr != nil {
		slog.Error("function init failed", "error", initErr)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Service unavailable")
		return
	}

	handler.ServeHTTP(w, r)
}

func newHandler(ctx context.Context, args []string) (http.Handler, error) {
	cfg, err := cliparse.ParseFlags(args)
	if err != nil {
		return nil, err
	}

	st, err := store.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}
	slog.Info("Store ready", "store", cfg.StoreType)

	return middleware.CORS(router.NewDispatcher(st, cfg)), nil
}
