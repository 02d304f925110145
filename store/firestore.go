// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"errors"
	"fmt"

	"cloud.google.com/go/firestore"
	"google.golang.org/api/option"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"

	"github.com/danielhkuo/ballotbox/models"
)

// FirestoreStore keeps each collection in a Firestore collection of the same
// name.
type FirestoreStore struct {
	client *firestore.Client
}

// OpenFirestore creates a Firestore client. With an empty credentialsFile the
// client uses application default credentials, or the emulator when
// FIRESTORE_EMULATOR_HOST is set.
func OpenFirestore(ctx context.Context, projectID, credentialsFile string) (*FirestoreStore, error) {
	var opts []option.ClientOption
	if credentialsFile != "" {
		opts = append(opts, option.WithCredentialsFile(credentialsFile))
	}

	client, err := firestore.NewClient(ctx, projectID, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to create firestore client: %w", err)
	}

	return NewFirestoreStore(client), nil
}

func NewFirestoreStore(client *firestore.Client) *FirestoreStore {
	return &FirestoreStore{client: client}
}

func (s *FirestoreStore) doc(coll Collection, id string) *firestore.DocumentRef {
	return s.client.Collection(string(coll)).Doc(id)
}

func (s *FirestoreStore) Get(ctx context.Context, coll Collection, id string) (models.Document, error) {
	snap, err := s.doc(coll, id).Get(ctx)
	if status.Code(err) == codes.NotFound {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", coll, id, err)
	}

	return models.Document(snap.Data()), nil
}

func (s *FirestoreStore) Create(ctx context.Context, coll Collection, id string, doc models.Document) error {
	_, err := s.doc(coll, id).Create(ctx, map[string]any(doc))
	if status.Code(err) == codes.AlreadyExists {
		return ErrAlreadyExists
	}
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", coll, id, err)
	}
	return nil
}

func (s *FirestoreStore) Update(ctx context.Context, coll Collection, id string, fields models.Document) error {
	if len(fields) == 0 {
		_, err := s.Get(ctx, coll, id)
		return err
	}

	// FieldPath keeps keys containing dots as single top-level fields
	updates := make([]firestore.Update, 0, len(fields))
	for k, v := range fields {
		updates = append(updates, firestore.Update{FieldPath: firestore.FieldPath{k}, Value: v})
	}

	_, err := s.doc(coll, id).Update(ctx, updates)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to update %s %s: %w", coll, id, err)
	}
	return nil
}

func (s *FirestoreStore) Delete(ctx context.Context, coll Collection, id string) error {
	_, err := s.doc(coll, id).Delete(ctx, firestore.Exists)
	if status.Code(err) == codes.NotFound {
		return ErrNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll, id, err)
	}
	return nil
}

func (s *FirestoreStore) CastVote(ctx context.Context, electionID, voterID, candidateID string) error {
	electionRef := s.doc(Elections, electionID)
	voterRef := s.doc(Voters, voterID)

	err := s.client.RunTransaction(ctx, func(ctx context.Context, tx *firestore.Transaction) error {
		snap, err := tx.Get(electionRef)
		if status.Code(err) == codes.NotFound {
			return ErrElectionNotFound
		}
		if err != nil {
			return err
		}

		if _, err := tx.Get(voterRef); status.Code(err) == codes.NotFound {
			return ErrVoterNotFound
		} else if err != nil {
			return err
		}

		election := models.Document(snap.Data())
		if err := ApplyVote(election, voterID, candidateID); err != nil {
			return err
		}

		return tx.Update(electionRef, []firestore.Update{
			{Path: models.FieldCandidates, Value: election[models.FieldCandidates]},
			{Path: models.FieldVoters, Value: firestore.ArrayUnion(voterID)},
		})
	}, firestore.MaxAttempts(maxTxRetries))

	switch {
	case err == nil:
		return nil
	case errors.Is(err, ErrElectionNotFound), errors.Is(err, ErrVoterNotFound),
		errors.Is(err, ErrAlreadyVoted), errors.Is(err, ErrCandidateNotFound):
		return err
	}
	return fmt.Errorf("failed to record vote in election %s: %w", electionID, err)
}

func (s *FirestoreStore) Close() error {
	return s.client.Close()
}
