// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/middleware"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

type ElectionHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewElectionHandler(st store.Store, cfg cliparse.Config) *ElectionHandler {
	return &ElectionHandler{store: st, cfg: cfg}
}

// Create handles POST /create_election
func (h *ElectionHandler) Create(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := middleware.ParseJSONBody(r, &doc); err != nil || len(doc) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Please provide election information")
		return
	}

	electionID, ok := doc.StringField(models.FieldElectionID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id is required")
		return
	}

	err := h.store.Create(r.Context(), store.Elections, electionID, doc)
	if errors.Is(err, store.ErrAlreadyExists) {
		middleware.ErrorResponse(w, http.StatusForbidden, models.MsgElectionExists)
		return
	}
	if err != nil {
		slog.Error("failed to create election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("election created", "election_id", electionID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MsgElectionCreated,
		Data:    doc,
	})
}

// Retrieve handles GET /retrieve_election/:id
func (h *ElectionHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	doc, err := h.store.Get(r.Context(), store.Elections, electionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgElectionMissing)
		return
	}
	if err != nil {
		slog.Error("failed to query election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{Data: doc})
}

// Delete handles DELETE /delete_election/:id
// Returns 204 with no body on success
func (h *ElectionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("id")
	if electionID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.store.Delete(r.Context(), store.Elections, electionID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgElectionMissing)
		return
	}
	if err != nil {
		slog.Error("failed to delete election", "error", err, "election_id", electionID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("election deleted", "election_id", electionID)

	w.WriteHeader(http.StatusNoContent)
}
