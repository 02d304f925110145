// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package router

import (
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/handlers"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

func NewRouter(st store.Store, cfg cliparse.Config) *http.ServeMux {
	mux := http.NewServeMux()

	// Initialize handlers
	voterHandler := handlers.NewVoterHandler(st, cfg)
	electionHandler := handlers.NewElectionHandler(st, cfg)
	votingHandler := handlers.NewVotingHandler(st, cfg)

	// Health check
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		w.Write([]byte("OK"))
	})

	// Voter management
	mux.HandleFunc("POST /register", wrap(cfg, voterHandler.Register))
	mux.HandleFunc("DELETE /deregister/{id}", wrap(cfg, voterHandler.Deregister))
	mux.HandleFunc("PATCH /update/{id}", wrap(cfg, voterHandler.Update))
	mux.HandleFunc("GET /retrieve/{id}", wrap(cfg, voterHandler.Retrieve))

	// Election management
	mux.HandleFunc("POST /create_election", wrap(cfg, electionHandler.Create))
	mux.HandleFunc("GET /retrieve_election/{id}", wrap(cfg, electionHandler.Retrieve))
	mux.HandleFunc("DELETE /delete_election/{id}", wrap(cfg, electionHandler.Delete))

	// Voting
	mux.HandleFunc("PATCH /elections/{election_id}/voters/{voter_id}/candidates/{candidate_id}",
		wrap(cfg, votingHandler.CastVote))

	// Root endpoint
	mux.HandleFunc("GET /{$}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.Write([]byte(models.MsgGreeting))
	})

	return mux
}

// wrap applies the per-request middleware shared by every store-backed route
func wrap(cfg cliparse.Config, h http.HandlerFunc) http.HandlerFunc {
	h = middleware.WithBodyLimit(cfg.MaxBodyBytes, h)
	h = middleware.WithTimeout(cfg.StoreTimeout, h)
	return middleware.WithLogging(h)
}
