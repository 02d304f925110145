// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package router defines HTTP routes for the ballotbox API.

# Route Registration

NewRouter creates a configured http.ServeMux with all endpoints:

	mux := router.NewRouter(st, cfg)

# Endpoints

Health and root:

	GET /health
	GET /

Voters:

	POST   /register         - Register voter (id in body)
	DELETE /deregister/{id}  - Remove voter
	PATCH  /update/{id}      - Merge fields into voter
	GET    /retrieve/{id}    - Get voter

Elections:

	POST   /create_election          - Create election (election_id in body)
	GET    /retrieve_election/{id}   - Get election
	DELETE /delete_election/{id}     - Remove election

Voting:

	PATCH /elections/{election_id}/voters/{voter_id}/candidates/{candidate_id}

Every store-backed route is wrapped with request logging, the store timeout
and the body size limit from Config.

# Dispatch Shim

NewDispatcher adapts the same handlers to function-style hosting where one
entry point receives every request:

	http.Handle("/", router.NewDispatcher(st, cfg))

POST /register and POST /create_election are served directly; all other
requests are forwarded to the router unchanged.
*/
package router
