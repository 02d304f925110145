// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/danielhkuo/ballotbox/models"
)

const mongoIDField = "_id"

// MongoStore keeps each collection in a MongoDB collection of the same name,
// keyed by _id.
type MongoStore struct {
	client *mongo.Client
	db     *mongo.Database
}

// OpenMongo connects to MongoDB and verifies the connection
func OpenMongo(ctx context.Context, uri, database string) (*MongoStore, error) {
	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return nil, fmt.Errorf("failed to connect to mongodb: %w", err)
	}

	if err := client.Ping(ctx, nil); err != nil {
		client.Disconnect(context.Background())
		return nil, fmt.Errorf("failed to ping mongodb: %w", err)
	}

	return NewMongoStore(client, database), nil
}

// NewMongoStore wraps a connected client
func NewMongoStore(client *mongo.Client, database string) *MongoStore {
	return &MongoStore{client: client, db: client.Database(database)}
}

func (s *MongoStore) coll(c Collection) *mongo.Collection {
	return s.db.Collection(string(c))
}

func (s *MongoStore) Get(ctx context.Context, coll Collection, id string) (models.Document, error) {
	var m bson.M
	err := s.coll(coll).FindOne(ctx, bson.M{mongoIDField: id}).Decode(&m)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to find %s %s: %w", coll, id, err)
	}

	return fromBSON(m), nil
}

func (s *MongoStore) Create(ctx context.Context, coll Collection, id string, doc models.Document) error {
	m := make(bson.M, len(doc)+1)
	for k, v := range doc {
		m[k] = v
	}
	m[mongoIDField] = id

	_, err := s.coll(coll).InsertOne(ctx, m)
	if mongo.IsDuplicateKeyError(err) {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to insert %s %s: %w", coll, id, err)
	}
	return nil
}

func (s *MongoStore) Update(ctx context.Context, coll Collection, id string, fields models.Document) error {
	set := make(bson.M, len(fields))
	for k, v := range fields {
		if k != mongoIDField {
			set[k] = v
		}
	}

	// $set refuses an empty document
	if len(set) == 0 {
		_, err := s.Get(ctx, coll, id)
		return err
	}

	res, err := s.coll(coll).UpdateOne(ctx, bson.M{mongoIDField: id}, bson.M{"$set": set})
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", coll, id, err)
	}
	if res.MatchedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) Delete(ctx context.Context, coll Collection, id string) error {
	res, err := s.coll(coll).DeleteOne(ctx, bson.M{mongoIDField: id})
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll, id, err)
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *MongoStore) CastVote(ctx context.Context, electionID, voterID, candidateID string) error {
	if ok, err := s.exists(ctx, Elections, electionID); err != nil {
		return err
	} else if !ok {
		return ErrElectionNotFound
	}
	if ok, err := s.exists(ctx, Voters, voterID); err != nil {
		return err
	} else if !ok {
		return ErrVoterNotFound
	}

	// The filter carries both preconditions so the increment and the
	// voter insert happen in one document write or not at all.
	filter := bson.M{
		mongoIDField:           electionID,
		models.FieldVoters:     bson.M{"$ne": voterID},
		models.FieldCandidates: bson.M{"$elemMatch": bson.M{models.FieldID: candidateID}},
	}
	update := bson.M{
		"$inc":      bson.M{models.FieldCandidates + ".$." + models.FieldTotalVotes: 1},
		"$addToSet": bson.M{models.FieldVoters: voterID},
	}

	res, err := s.coll(Elections).UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to record vote in election %s: %w", electionID, err)
	}
	if res.MatchedCount == 1 {
		return nil
	}

	election, err := s.Get(ctx, Elections, electionID)
	if errors.Is(err, ErrNotFound) {
		return ErrElectionNotFound
	}
	if err != nil {
		return err
	}
	if HasVoted(election, voterID) {
		return ErrAlreadyVoted
	}
	return ErrCandidateNotFound
}

func (s *MongoStore) Close() error {
	return s.client.Disconnect(context.Background())
}

func (s *MongoStore) exists(ctx context.Context, coll Collection, id string) (bool, error) {
	n, err := s.coll(coll).CountDocuments(ctx, bson.M{mongoIDField: id}, options.Count().SetLimit(1))
	if err != nil {
		return false, fmt.Errorf("failed to count %s %s: %w", coll, id, err)
	}
	return n > 0, nil
}

// fromBSON turns a decoded document into plain maps and slices and drops _id
func fromBSON(m bson.M) models.Document {
	doc := make(models.Document, len(m))
	for k, v := range m {
		if k == mongoIDField {
			continue
		}
		doc[k] = plainValue(v)
	}
	return doc
}

func plainValue(v any) any {
	switch t := v.(type) {
	case bson.M:
		out := make(map[string]any, len(t))
		for k, e := range t {
			out[k] = plainValue(e)
		}
		return out
	case bson.D:
		out := make(map[string]any, len(t))
		for _, e := range t {
			out[e.Key] = plainValue(e.Value)
		}
		return out
	case bson.A:
		out := make([]any, len(t))
		for i, e := range t {
			out[i] = plainValue(e)
		}
		return out
	}
	return v
}
