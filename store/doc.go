// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package store provides the document database behind the API.

# Store Interface

Every backend implements Store over two collections, Voters and Elections:

	doc, err := st.Get(ctx, store.Voters, "v1")
	err = st.Create(ctx, store.Elections, "e1", doc)
	err = st.Update(ctx, store.Voters, "v1", fields)
	err = st.Delete(ctx, store.Elections, "e1")
	err = st.CastVote(ctx, "e1", "v1", "c1")

Open selects a backend from configuration:

	st, err := store.Open(ctx, cfg)
	defer st.Close()

# Errors

Callers compare with errors.Is:

  - ErrNotFound, ErrAlreadyExists: document operations
  - ErrElectionNotFound, ErrVoterNotFound, ErrAlreadyVoted,
    ErrCandidateNotFound: CastVote, in the order they are checked

Anything else is a backend failure.

# Backends

  - SQLStore: PostgreSQL (lib/pq) or SQLite (modernc.org/sqlite), one table per
    collection with JSON text documents. CastVote runs in a transaction that
    locks the election row (postgres) or holds the only connection (sqlite).
  - MongoStore: one conditional UpdateOne with $inc and $addToSet.
  - FirestoreStore: RunTransaction with ArrayUnion on the voters field.
  - RedisStore: JSON strings, WATCH/MULTI with bounded retries.

Create is atomic create-if-absent on every backend.

# Vote Rules

ApplyVote holds the rules shared by the read-modify-write backends: a voter
listed in "voters" has already voted, candidates match on a string "id", and
"total_votes" is incremented keeping its numeric type (missing counts as 0).
*/
package store
