// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

/*
Package models defines documents, response envelopes and domain types for the API.

# Documents

Voters and elections are stored as schemaless documents:

	type Document map[string]any

Request bodies are decoded straight into a Document and stored verbatim.

# Response Types

  - MessageResponse: message, data (both optional)
  - DataResponse: data
  - ErrorResponse: error, message

# Domain Types

Typed views used where the service needs to read fields:

  - Election: election_id, candidates, voters
  - Candidate: id, total_votes

DecodeElection and Election.Document convert between the two forms.

# Constants

Document fields:

	FieldElectionID = "election_id"
	FieldCandidates = "candidates"
	FieldVoters     = "voters"
	FieldTotalVotes = "total_votes"

Response messages are the Msg* constants.
*/
package models
