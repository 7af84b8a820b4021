// Package kvstore implements the storage contracts on Redis. Each entity type
// is kept in one hash keyed by record id with the JSON document as value.
package kvstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/UnknownOlympus/tally/internal/storage"
	"github.com/redis/go-redis/v9"
)

const (
	employeesKey   = "employees"
	clientsKey     = "clients"
	workRecordsKey = "work_records"
	settingsKey    = "app_settings"

	// DefaultPrefix namespaces every key written by the store.
	DefaultPrefix = "tally"
)

// Store is the Redis backed record store.
type Store struct {
	client *redis.Client
	prefix string
}

var _ storage.Store = (*Store)(nil)

// New wraps an existing Redis client. An empty prefix falls back to DefaultPrefix.
func New(client *redis.Client, prefix string) *Store {
	if prefix == "" {
		prefix = DefaultPrefix
	}
	return &Store{client: client, prefix: prefix}
}

// Ping checks the Redis connection.
func (s *Store) Ping(ctx context.Context) error {
	if err := s.client.Ping(ctx).Err(); err != nil {
		return fmt.Errorf("failed to ping redis: %w", err)
	}
	return nil
}

func (s *Store) key(name string) string {
	return s.prefix + ":" + name
}

// getDoc loads one document from the hash into dst.
func (s *Store) getDoc(ctx context.Context, name, kind, id string, dst any) error {
	raw, err := s.client.HGet(ctx, s.key(name), id).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
		}
		return fmt.Errorf("failed to get %s: %w", kind, err)
	}
	if err = json.Unmarshal(raw, dst); err != nil {
		return fmt.Errorf("failed to decode %s %s: %w", kind, id, err)
	}
	return nil
}

func (s *Store) putDoc(ctx context.Context, name, kind, id string, doc any) error {
	raw, err := json.Marshal(doc)
	if err != nil {
		return fmt.Errorf("failed to encode %s: %w", kind, err)
	}
	if err = s.client.HSet(ctx, s.key(name), id, raw).Err(); err != nil {
		return fmt.Errorf("failed to save %s: %w", kind, err)
	}
	return nil
}

// replaceDoc overwrites an existing document and reports storage.ErrNotFound
// when the id is unknown.
func (s *Store) replaceDoc(ctx context.Context, name, kind, id string, doc any) error {
	exists, err := s.client.HExists(ctx, s.key(name), id).Result()
	if err != nil {
		return fmt.Errorf("failed to check %s: %w", kind, err)
	}
	if !exists {
		return fmt.Errorf("%s %s: %w", kind, id, storage.ErrNotFound)
	}
	return s.putDoc(ctx, name, kind, id, doc)
}

func (s *Store) deleteDoc(ctx context.Context, name, kind, id string) error {
	if err := s.client.HDel(ctx, s.key(name), id).Err(); err != nil {
		return fmt.Errorf("failed to delete %s %s: %w", kind, id, err)
	}
	return nil
}

// listDocs decodes every document of a hash. Results are ordered by creation
// time and then id since hash iteration order is unspecified.
func listDocs[T any](
	ctx context.Context,
	s *Store,
	name, kind string,
	meta func(T) (time.Time, string),
) ([]T, error) {
	values, err := s.client.HVals(ctx, s.key(name)).Result()
	if err != nil {
		return nil, fmt.Errorf("failed to list %s: %w", kind, err)
	}

	docs := make([]T, 0, len(values))
	for _, value := range values {
		var doc T
		if err = json.Unmarshal([]byte(value), &doc); err != nil {
			return nil, fmt.Errorf("failed to decode %s: %w", kind, err)
		}
		docs = append(docs, doc)
	}

	sort.SliceStable(docs, func(i, j int) bool {
		ti, idi := meta(docs[i])
		tj, idj := meta(docs[j])
		if !ti.Equal(tj) {
			return ti.Before(tj)
		}
		return idi < idj
	})

	return docs, nil
}
