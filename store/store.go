// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"

	"github.com/danielhkuo/ballotbox/models"
)

var (
	ErrNotFound      = errors.New("document not found")
	ErrAlreadyExists = errors.New("document already exists")

	ErrElectionNotFound  = errors.New("election not found")
	ErrVoterNotFound     = errors.New("voter not found")
	ErrAlreadyVoted      = errors.New("voter has already voted")
	ErrCandidateNotFound = errors.New("candidate not found")
)

// Collection names a bucket of documents
type Collection string

const (
	Voters    Collection = "voters"
	Elections Collection = "elections"
)

// Store is a document database holding the voters and elections collections.
// Implementations are safe for concurrent use.
type Store interface {
	// Get returns the document stored under id, or ErrNotFound
	Get(ctx context.Context, coll Collection, id string) (models.Document, error)

	// Create stores doc under id unless id is taken, in which case it
	// returns ErrAlreadyExists
	Create(ctx context.Context, coll Collection, id string, doc models.Document) error

	// Update merges the top-level fields into an existing document, or
	// returns ErrNotFound
	Update(ctx context.Context, coll Collection, id string, fields models.Document) error

	// Delete removes the document, or returns ErrNotFound
	Delete(ctx context.Context, coll Collection, id string) error

	// CastVote atomically increments the candidate's total_votes and adds
	// voterID to the election's voters. It returns ErrElectionNotFound,
	// ErrVoterNotFound, ErrAlreadyVoted or ErrCandidateNotFound, checked
	// in that order, without modifying anything.
	CastVote(ctx context.Context, electionID, voterID, candidateID string) error

	Close() error
}
