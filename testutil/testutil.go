// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package testutil

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"
	"time"

	"github.com/danielhkuo/ballotbox/cliparse"
	"github.com/danielhkuo/ballotbox/models"
	"github.com/danielhkuo/ballotbox/store"
)

// SetupTestStore creates a fresh SQLite-backed store in a temporary
// directory. It is closed when the test finishes.
func SetupTestStore(t *testing.T) *store.SQLStore {
	t.Helper()

	path := filepath.Join(t.TempDir(), "ballotbox.db")
	st, err := store.OpenSQL(context.Background(), store.DialectSQLite, path)
	if err != nil {
		t.Fatalf("Failed to open test store: %v", err)
	}
	t.Cleanup(func() { st.Close() })

	return st
}

// GetTestConfig returns a standard test configuration
func GetTestConfig() cliparse.Config {
	return cliparse.Config{
		Port:         3318,
		StoreType:    cliparse.StoreSQLite,
		DatabaseURL:  "ballotbox.db",
		DatabaseName: "ballotbox",
		MaxBodyBytes: 1 << 20,
		StoreTimeout: 5 * time.Second,
	}
}

// CreateTestVoter registers a voter document and returns it
func CreateTestVoter(t *testing.T, st store.Store, voterID string) models.Document {
	t.Helper()

	doc := models.Document{
		models.FieldVoterID: voterID,
		"name":              "Voter " + voterID,
	}
	if err := st.Create(context.Background(), store.Voters, voterID, doc); err != nil {
		t.Fatalf("Failed to create test voter: %v", err)
	}

	return doc
}

// CreateTestElection creates an election with zero-vote candidates
func CreateTestElection(t *testing.T, st store.Store, electionID string, candidateIDs ...string) models.Election {
	t.Helper()

	election := models.Election{
		ElectionID: electionID,
		Candidates: make([]models.Candidate, 0, len(candidateIDs)),
		Voters:     []string{},
	}
	for _, id := range candidateIDs {
		election.Candidates = append(election.Candidates, models.Candidate{ID: id})
	}

	doc, err := election.Document()
	if err != nil {
		t.Fatalf("Failed to encode test election: %v", err)
	}
	if err := st.Create(context.Background(), store.Elections, electionID, doc); err != nil {
		t.Fatalf("Failed to create test election: %v", err)
	}

	return election
}

// GetTestElection reads an election back in its typed form
func GetTestElection(t *testing.T, st store.Store, electionID string) models.Election {
	t.Helper()

	doc, err := st.Get(context.Background(), store.Elections, electionID)
	if err != nil {
		t.Fatalf("Failed to get election %s: %v", electionID, err)
	}

	election, err := models.DecodeElection(doc)
	if err != nil {
		t.Fatalf("Failed to decode election %s: %v", electionID, err)
	}

	return election
}

// VoteCounts maps candidate ID to total votes
func VoteCounts(election models.Election) map[string]int {
	counts := make(map[string]int, len(election.Candidates))
	for _, c := range election.Candidates {
		counts[c.ID] = c.TotalVotes
	}
	return counts
}

// MakeRequest creates an HTTP test request
func MakeRequest(method, path string, body interface{}, headers map[string]string) *http.Request {
	var req *http.Request
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		req = httptest.NewRequest(method, path, bytes.NewReader(jsonBody))
		req.Header.Set("Content-Type", "application/json")
	} else {
		req = httptest.NewRequest(method, path, nil)
	}

	for k, v := range headers {
		req.Header.Set(k, v)
	}

	return req
}

// AssertStatus checks that the response has the expected status code
func AssertStatus(t *testing.T, w *httptest.ResponseRecorder, expected int) {
	t.Helper()
	if w.Code != expected {
		t.Errorf("Expected status %d, got %d. Body: %s", expected, w.Code, w.Body.String())
	}
}

// AssertJSON decodes the response body into the provided struct
func AssertJSON(t *testing.T, w *httptest.ResponseRecorder, v interface{}) {
	t.Helper()
	if err := json.NewDecoder(w.Body).Decode(v); err != nil {
		t.Fatalf("Failed to decode JSON response: %v", err)
	}
}
