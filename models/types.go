package models

import "encoding/json"

// Response messages
const (
	MsgGreeting        = "Hello, welcome to my voting application!"
	MsgNoVoterInfo     = "Please provide user information"
	MsgVoterCreated    = "Account created successfully"
	MsgVoterExists     = "Account already exists"
	MsgVoterDeleted    = "The voter has been deleted"
	MsgVoterMissing    = "The voter does not exist"
	MsgUserMissing     = "User does not exist"
	MsgElectionCreated = "Election created successfully"
	MsgElectionExists  = "Election already exists"
	MsgElectionMissing = "The election does not exist"
	MsgVoteRecorded    = "Your vote has been recorded successfully"
	MsgAlreadyVoted    = "You have already voted"
	MsgNoElection      = "Election does not exist"
	MsgNoVoter         = "Voter does not exist"
	MsgNoCandidate     = "Candidate not found"
)

// Well-known document fields
const (
	FieldVoterID    = "id"
	FieldElectionID = "election_id"
	FieldCandidates = "candidates"
	FieldVoters     = "voters"
	FieldID         = "id"
	FieldTotalVotes = "total_votes"
)

// Document is a schemaless record as decoded from a JSON object
type Document map[string]any

// StringField returns doc[key] when it is a non-empty string
func (d Document) StringField(key string) (string, bool) {
	s, ok := d[key].(string)
	if !ok || s == "" {
		return "", false
	}
	return s, true
}

// Response types

type MessageResponse struct {
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

type DataResponse struct {
	Data any `json:"data"`
}

// Domain types

// Election is the typed view of an election document. Unknown fields live only
// in the Document form.
type Election struct {
	ElectionID string      `json:"election_id"`
	Candidates []Candidate `json:"candidates"`
	Voters     []string    `json:"voters"`
}

type Candidate struct {
	ID         string `json:"id"`
	TotalVotes int    `json:"total_votes"`
}

// Document converts the election to its stored form
func (e Election) Document() (Document, error) {
	return ToDocument(e)
}

// ToDocument round-trips v through JSON into a Document
func ToDocument(v any) (Document, error) {
	raw, err := json.Marshal(v)
	if err != nil {
		return nil, err
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// DecodeElection reads the typed fields out of an election document
func DecodeElection(doc Document) (Election, error) {
	var e Election
	raw, err := json.Marshal(doc)
	if err != nil {
		return e, err
	}
	err = json.Unmarshal(raw, &e)
	return e, err
}

// Error response

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message,omitempty"`
}
