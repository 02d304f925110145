// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"fmt"

	"github.com/danielhkuo/ballotbox/models"
)

// ApplyVote records the vote on an election document in place. The document
// is left untouched when an error is returned.
func ApplyVote(election models.Document, voterID, candidateID string) error {
	if HasVoted(election, voterID) {
		return ErrAlreadyVoted
	}

	candidates, _ := election[models.FieldCandidates].([]any)
	for _, c := range candidates {
		candidate, ok := asMap(c)
		if !ok {
			continue
		}
		if id, ok := candidate[models.FieldID].(string); !ok || id != candidateID {
			continue
		}

		total, err := increment(candidate[models.FieldTotalVotes])
		if err != nil {
			return fmt.Errorf("candidate %s: %w", candidateID, err)
		}
		candidate[models.FieldTotalVotes] = total
		election[models.FieldVoters] = append(voterList(election), voterID)
		return nil
	}

	return ErrCandidateNotFound
}

// HasVoted reports whether voterID is already in the election's voters
func HasVoted(election models.Document, voterID string) bool {
	for _, v := range voterList(election) {
		if s, ok := v.(string); ok && s == voterID {
			return true
		}
	}
	return false
}

// Merge copies the top-level fields onto doc
func Merge(doc, fields models.Document) {
	for k, v := range fields {
		doc[k] = v
	}
}

func voterList(election models.Document) []any {
	switch v := election[models.FieldVoters].(type) {
	case []any:
		return v
	case []string:
		out := make([]any, len(v))
		for i, s := range v {
			out[i] = s
		}
		return out
	}
	return nil
}

func asMap(v any) (map[string]any, bool) {
	switch m := v.(type) {
	case map[string]any:
		return m, true
	case models.Document:
		return m, true
	}
	return nil, false
}

// increment adds one to a stored counter, keeping its numeric type.
// A missing counter counts as zero.
func increment(v any) (any, error) {
	switch n := v.(type) {
	case nil:
		return int64(1), nil
	case float64:
		return n + 1, nil
	case int:
		return n + 1, nil
	case int32:
		return n + 1, nil
	case int64:
		return n + 1, nil
	}
	return nil, fmt.Errorf("total_votes has non-numeric type %T", v)
}
