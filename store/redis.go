// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/redis/go-redis/v9"

	"github.com/danielhkuo/ballotbox/models"
)

// maxTxRetries bounds optimistic transaction retries under contention
const maxTxRetries = 50

// RedisStore keeps each document as a JSON string under "<collection>:<id>".
// Read-modify-write operations use WATCH/MULTI and retry when the watched key
// changes underneath them.
type RedisStore struct {
	client *redis.Client
}

// OpenRedis connects using a redis:// URL and verifies the connection
func OpenRedis(ctx context.Context, url string) (*RedisStore, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("invalid redis URL: %w", err)
	}

	client := redis.NewClient(opts)
	if err := client.Ping(ctx).Err(); err != nil {
		client.Close()
		return nil, fmt.Errorf("failed to connect to Redis: %w", err)
	}

	return NewRedisStore(client), nil
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func redisKey(coll Collection, id string) string {
	return string(coll) + ":" + id
}

func (s *RedisStore) Get(ctx context.Context, coll Collection, id string) (models.Document, error) {
	raw, err := s.client.Get(ctx, redisKey(coll, id)).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s %s: %w", coll, id, err)
	}

	return decodeDoc(raw)
}

func (s *RedisStore) Create(ctx context.Context, coll Collection, id string, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	ok, err := s.client.SetNX(ctx, redisKey(coll, id), raw, 0).Result()
	if err != nil {
		return fmt.Errorf("failed to create %s %s: %w", coll, id, err)
	}
	if !ok {
		return ErrAlreadyExists
	}
	return nil
}

func (s *RedisStore) Update(ctx context.Context, coll Collection, id string, fields models.Document) error {
	key := redisKey(coll, id)
	return s.retryTx(ctx, func(tx *redis.Tx) error {
		doc, err := getWatched(ctx, tx, key)
		if err != nil {
			return err
		}
		Merge(doc, fields)
		return setInTx(ctx, tx, key, doc)
	}, key)
}

func (s *RedisStore) Delete(ctx context.Context, coll Collection, id string) error {
	n, err := s.client.Del(ctx, redisKey(coll, id)).Result()
	if err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", coll, id, err)
	}
	if n == 0 {
		return ErrNotFound
	}
	return nil
}

func (s *RedisStore) CastVote(ctx context.Context, electionID, voterID, candidateID string) error {
	electionKey := redisKey(Elections, electionID)
	voterKey := redisKey(Voters, voterID)

	return s.retryTx(ctx, func(tx *redis.Tx) error {
		election, err := getWatched(ctx, tx, electionKey)
		if errors.Is(err, ErrNotFound) {
			return ErrElectionNotFound
		}
		if err != nil {
			return err
		}

		n, err := tx.Exists(ctx, voterKey).Result()
		if err != nil {
			return fmt.Errorf("failed to check voter %s: %w", voterID, err)
		}
		if n == 0 {
			return ErrVoterNotFound
		}

		if err := ApplyVote(election, voterID, candidateID); err != nil {
			return err
		}
		return setInTx(ctx, tx, electionKey, election)
	}, electionKey, voterKey)
}

func (s *RedisStore) Close() error {
	return s.client.Close()
}

func (s *RedisStore) retryTx(ctx context.Context, fn func(tx *redis.Tx) error, keys ...string) error {
	for i := 0; i < maxTxRetries; i++ {
		err := s.client.Watch(ctx, fn, keys...)
		if errors.Is(err, redis.TxFailedErr) {
			continue
		}
		return err
	}
	return fmt.Errorf("transaction on %v: %w", keys, redis.TxFailedErr)
}

func getWatched(ctx context.Context, tx *redis.Tx, key string) (models.Document, error) {
	raw, err := tx.Get(ctx, key).Result()
	if errors.Is(err, redis.Nil) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to get %s: %w", key, err)
	}
	return decodeDoc(raw)
}

func setInTx(ctx context.Context, tx *redis.Tx, key string, doc models.Document) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode document: %w", err)
	}

	_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
		pipe.Set(ctx, key, raw, 0)
		return nil
	})
	return err
}
