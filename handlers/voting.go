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

type VotingHandler struct {
	store store.Store
	cfg   cliparse.Config
}

func NewVotingHandler(st store.Store, cfg cliparse.Config) *VotingHandler {
	return &VotingHandler{store: st, cfg: cfg}
}

// CastVote handles PATCH /elections/:election_id/voters/:voter_id/candidates/:candidate_id
func (h *VotingHandler) CastVote(w http.ResponseWriter, r *http.Request) {
	electionID := r.PathValue("election_id")
	voterID := r.PathValue("voter_id")
	candidateID := r.PathValue("candidate_id")
	if electionID == "" || voterID == "" || candidateID == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "election_id, voter_id and candidate_id are required")
		return
	}

	err := h.store.CastVote(r.Context(), electionID, voterID, candidateID)
	switch {
	case err == nil:
	case errors.Is(err, store.ErrElectionNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgNoElection)
		return
	case errors.Is(err, store.ErrVoterNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgNoVoter)
		return
	case errors.Is(err, store.ErrAlreadyVoted):
		middleware.ErrorResponse(w, http.StatusForbidden, models.MsgAlreadyVoted)
		return
	case errors.Is(err, store.ErrCandidateNotFound):
		middleware.ErrorResponse(w, http.StatusNotFound, models.MsgNoCandidate)
		return
	default:
		slog.Error("failed to record vote", "error", err,
			"election_id", electionID, "voter_id", voterID, "candidate_id", candidateID)
		middleware.ErrorResponse(w, http.StatusInternalServerError, "Database error")
		return
	}

	slog.Info("vote recorded", "election_id", electionID, "candidate_id", candidateID)

	middleware.JSONResponse(w, http.StatusOK, models.MessageResponse{
		Message: models.MsgVoteRecorded,
	})
}
