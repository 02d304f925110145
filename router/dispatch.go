// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/store"
)

// NewDispatcher is the entry handler for function-style hosting, where a
// single function receives every request. Registration and election creation
// are served directly; everything else is forwarded unchanged to the router.
func NewDispatcher(st store.Store, cfg cliparse.Config) http.Handler {
	mux := NewRouter(st, cfg)
	register := wrap(cfg, handlers.NewVoterHandler(st, cfg).Register)
	createElection := wrap(cfg, handlers.NewElectionHandler(st, cfg).Create)

	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch {
		case r.Method == http.MethodPost && r.URL.Path == "/register":
			register(w, r)
		case r.Method == http.MethodPost && r.URL.Path == "/create_election":
			createElection(w, r)
		default:
			mux.ServeHTTP(w, r)
		}
	})
}
