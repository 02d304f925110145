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

type VoterHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewVoterHandler(st store.Store, cfg cliparse.Config) *VoterHandler {
	return &VoterHandler{store: st, cfg: cfg}
}

// Register handles POST /register
func (h *VoterHandler) Register(w http.ResponseWriter, r *http.Request) {
	var doc models.Document
	if err := middleware.ParseJSONBody(r, &doc); err != nil || len(doc) == 0 {
		middleware.ErrorResponse(w, http.StatusBadRequest, models.MsgNoVoterInfo)
		return
	}

	voterID, ok := doc.StringField(models.FieldVoterID)
	if !ok {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.store.Create(r.Context(), store.Voters, voterID, doc)
	if errors.Is(err, store.ErrAlreadyExists) {
		middleware.ErrorResponse(w, http.StatusForbidden, models.MsgVoterExists)
		return
	}
	if err != nil {
		slog.Error("failed to create voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("voter registered", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MsgVoterCreated,
		Data:    doc,
	})
}

// Deregister handles DELETE /deregister/:id
func (h *VoterHandler) Deregister(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	err := h.store.Delete(r.Context(), store.Voters, voterID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgVoterMissing)
		return
	}
	if err != nil {
		slog.Error("failed to delete voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("voter deregistered", "voter_id", voterID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MsgVoterDeleted,
	})
}

// Update handles PATCH /update/:id
// A missing voter is reported with 200 and a message, not an error status
func (h *VoterHandler) Update(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	var fields models.Document
	if err := middleware.ParseJSONBody(r, &fields); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "Invalid JSON")
		return
	}
	if fields == nil {
		fields = models.Document{}
	}

	err := h.store.Update(r.Context(), store.Voters, voterID, fields)
	if errors.Is(err, store.ErrNotFound) {
		middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
			Message: models.MsgUserMissing,
		})
		return
	}
	if err != nil {
		slog.Error("failed to update voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{Data: fields})
}

// Retrieve handles GET /retrieve/:id
func (h *VoterHandler) Retrieve(w http.ResponseWriter, r *http.Request) {
	voterID := r.PathValue("id")
	if voterID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "id is required")
		return
	}

	doc, err := h.store.Get(r.Context(), store.Voters, voterID)
	if errors.Is(err, store.ErrNotFound) {
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgUserMissing)
		return
	}
	if err != nil {
		slog.Error("failed to query voter", "error", err, "voter_id", voterID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.DataResponse{Data: doc})
}
