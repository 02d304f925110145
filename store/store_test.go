// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/danielhkuo/ballotbox/models"
)

// runStoreSuite exercises a backend through the Store interface. IDs are
// unique per run so shared databases need no cleanup.
func runStoreSuite(t *testing.T, st Store) {
	t.Run("create and get", func(t *testing.T) { testCreateGet(t, st) })
	t.Run("update", func(t *testing.T) { testUpdate(t, st) })
	t.Run("delete", func(t *testing.T) { testDelete(t, st) })
	t.Run("cast vote", func(t *testing.T) { testCastVote(t, st) })
	t.Run("cast vote error order", func(t *testing.T) { testCastVoteErrorOrder(t, st) })
	t.Run("concurrent votes", func(t *testing.T) { testConcurrentVotes(t, st) })
	t.Run("concurrent duplicate votes", func(t *testing.T) { testConcurrentDuplicateVotes(t, st) })
}

func uniqueID(prefix string) string {
	return prefix + "-" + uuid.NewString()
}

func seedVoter(t *testing.T, st Store) string {
	t.Helper()
	id := uniqueID("voter")
	require.NoError(t, st.Create(context.Background(), Voters, id, models.Document{"id": id}))
	return id
}

func seedElection(t *testing.T, st Store, candidates ...string) string {
	t.Helper()
	id := uniqueID("election")
	list := make([]any, 0, len(candidates))
	for _, c := range candidates {
		list = append(list, map[string]any{"id": c, "name": "Candidate " + c, "total_votes": float64(0)})
	}
	doc := models.Document{
		"election_id": id,
		"title":       "Board",
		"candidates":  list,
		"voters":      []any{},
	}
	require.NoError(t, st.Create(context.Background(), Elections, id, doc))
	return id
}

func loadElection(t *testing.T, st Store, id string) models.Election {
	t.Helper()
	doc, err := st.Get(context.Background(), Elections, id)
	require.NoError(t, err)
	election, err := models.DecodeElection(doc)
	require.NoError(t, err)
	return election
}

func totals(e models.Election) map[string]int {
	out := make(map[string]int, len(e.Candidates))
	for _, c := range e.Candidates {
		out[c.ID] = c.TotalVotes
	}
	return out
}

func testCreateGet(t *testing.T, st Store) {
	ctx := context.Background()
	id := uniqueID("voter")
	doc := models.Document{
		"id":      id,
		"name":    "Ada",
		"address": map[string]any{"city": "Accra"},
		"tags":    []any{"a", "b"},
	}

	require.NoError(t, st.Create(ctx, Voters, id, doc))

	got, err := st.Get(ctx, Voters, id)
	require.NoError(t, err)
	assert.Equal(t, id, got["id"])
	assert.Equal(t, "Ada", got["name"])
	assert.Equal(t, map[string]any{"city": "Accra"}, got["address"])
	assert.Equal(t, []any{"a", "b"}, got["tags"])

	err = st.Create(ctx, Voters, id, models.Document{"id": id, "name": "Other"})
	assert.ErrorIs(t, err, ErrAlreadyExists)

	got, err = st.Get(ctx, Voters, id)
	require.NoError(t, err)
	assert.Equal(t, "Ada", got["name"], "failed create must not overwrite")

	_, err = st.Get(ctx, Voters, uniqueID("missing"))
	assert.ErrorIs(t, err, ErrNotFound)

	// Collections are independent
	_, err = st.Get(ctx, Elections, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func testUpdate(t *testing.T, st Store) {
	ctx := context.Background()

	err := st.Update(ctx, Voters, uniqueID("missing"), models.Document{"name": "x"})
	assert.ErrorIs(t, err, ErrNotFound)

	id := uniqueID("voter")
	require.NoError(t, st.Create(ctx, Voters, id, models.Document{"id": id, "name": "Ada", "age": float64(30)}))

	require.NoError(t, st.Update(ctx, Voters, id, models.Document{"name": "Grace", "email": "g@example.com"}))

	got, err := st.Get(ctx, Voters, id)
	require.NoError(t, err)
	assert.Equal(t, "Grace", got["name"])
	assert.Equal(t, "g@example.com", got["email"])
	assert.EqualValues(t, 30, got["age"])

	require.NoError(t, st.Update(ctx, Voters, id, models.Document{}), "empty update of existing document")
}

func testDelete(t *testing.T, st Store) {
	ctx := context.Background()
	id := seedElection(t, st, "c1")

	require.NoError(t, st.Delete(ctx, Elections, id))
	assert.ErrorIs(t, st.Delete(ctx, Elections, id), ErrNotFound)

	_, err := st.Get(ctx, Elections, id)
	assert.ErrorIs(t, err, ErrNotFound)
}

func testCastVote(t *testing.T, st Store) {
	ctx := context.Background()
	electionID := seedElection(t, st, "c1", "c2")
	voterID := seedVoter(t, st)

	require.NoError(t, st.CastVote(ctx, electionID, voterID, "c2"))

	election := loadElection(t, st, electionID)
	assert.Equal(t, map[string]int{"c1": 0, "c2": 1}, totals(election))
	assert.Equal(t, []string{voterID}, election.Voters)

	// Second vote by the same voter
	err := st.CastVote(ctx, electionID, voterID, "c1")
	assert.ErrorIs(t, err, ErrAlreadyVoted)

	// Unknown candidate
	other := seedVoter(t, st)
	err = st.CastVote(ctx, electionID, other, "c9")
	assert.ErrorIs(t, err, ErrCandidateNotFound)

	election = loadElection(t, st, electionID)
	assert.Equal(t, map[string]int{"c1": 0, "c2": 1}, totals(election), "failed votes must not change counts")
	assert.Equal(t, []string{voterID}, election.Voters)

	// Other fields survive the write
	doc, err := st.Get(ctx, Elections, electionID)
	require.NoError(t, err)
	assert.Equal(t, "Board", doc["title"])
}

func testCastVoteErrorOrder(t *testing.T, st Store) {
	ctx := context.Background()
	electionID := seedElection(t, st, "c1")
	voterID := seedVoter(t, st)

	err := st.CastVote(ctx, uniqueID("missing"), uniqueID("missing"), "c9")
	assert.ErrorIs(t, err, ErrElectionNotFound)

	err = st.CastVote(ctx, electionID, uniqueID("missing"), "c9")
	assert.ErrorIs(t, err, ErrVoterNotFound)

	require.NoError(t, st.CastVote(ctx, electionID, voterID, "c1"))
	err = st.CastVote(ctx, electionID, voterID, "c9")
	assert.ErrorIs(t, err, ErrAlreadyVoted, "already voted is checked before the candidate")
}

func testConcurrentVotes(t *testing.T, st Store) {
	ctx := context.Background()
	electionID := seedElection(t, st, "c1", "c2")

	const numVoters = 20
	voters := make([]string, numVoters)
	for i := range voters {
		voters[i] = seedVoter(t, st)
	}

	var wg sync.WaitGroup
	errs := make(chan error, numVoters)
	for i, voterID := range voters {
		wg.Add(1)
		go func(i int, voterID string) {
			defer wg.Done()
			candidate := "c1"
			if i%2 == 1 {
				candidate = "c2"
			}
			errs <- st.CastVote(ctx, electionID, voterID, candidate)
		}(i, voterID)
	}
	wg.Wait()
	close(errs)

	for err := range errs {
		require.NoError(t, err)
	}

	election := loadElection(t, st, electionID)
	assert.Equal(t, map[string]int{"c1": numVoters / 2, "c2": numVoters / 2}, totals(election))
	assert.ElementsMatch(t, voters, election.Voters)
}

func testConcurrentDuplicateVotes(t *testing.T, st Store) {
	ctx := context.Background()
	electionID := seedElection(t, st, "c1")
	voterID := seedVoter(t, st)

	const attempts = 10
	var successes, duplicates atomic.Int32
	var wg sync.WaitGroup
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := st.CastVote(ctx, electionID, voterID, "c1")
			switch {
			case err == nil:
				successes.Add(1)
			case assert.ErrorIs(t, err, ErrAlreadyVoted):
				duplicates.Add(1)
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, int32(1), successes.Load())
	assert.Equal(t, int32(attempts-1), duplicates.Load())

	election := loadElection(t, st, electionID)
	assert.Equal(t, map[string]int{"c1": 1}, totals(election))
	assert.Equal(t, []string{voterID}, election.Voters)
}
