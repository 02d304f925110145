// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package handlers contains HTTP request handlers for the ballotbox API.

# Handler Types

Each handler is a struct with store and config dependencies:

  - VoterHandler: Register, Deregister, Update, Retrieve
  - ElectionHandler: Create, Retrieve, Delete
  - VotingHandler: CastVote

Handlers are created via constructor functions that accept a store.Store and
Config:

	voterHandler := handlers.NewVoterHandler(st, cfg)

# Voters

	POST   /register       → Register (id taken from the body)
	DELETE /deregister/{id} → Deregister
	PATCH  /update/{id}     → Update (shallow merge)
	GET    /retrieve/{id}   → Retrieve

Update on a missing voter answers 200 with a message rather than 404.

# Elections

	POST   /create_election         → Create (id taken from election_id)
	GET    /retrieve_election/{id}  → Retrieve
	DELETE /delete_election/{id}    → Delete (204)

# Voting

	PATCH /elections/{election_id}/voters/{voter_id}/candidates/{candidate_id}

CastVote maps the store's sentinel errors onto 404 (election, voter,
candidate) and 403 (already voted). The increment and the voter-set update are
a single atomic store operation.

Bodies are stored verbatim; there is no schema validation beyond the ID
fields.
*/
package handlers
