// Package store defines the durable key/record store the tracker keeps its
// state in. Keys are logical names; values are opaque serialized records.
package store

import (
	"context"
	"encoding/json"
	"fmt"
)

// Store is a durable map from key to serialized record. A missing key is
// reported through ok, never as an error. There are no multi-key transactions.
type Store interface {
	Get(ctx context.Context, key string) (value []byte, ok bool, err error)
	Set(ctx context.Context, key string, value []byte) error
	Remove(ctx context.Context, key string) error
}

// LoadJSON reads key and decodes it into a T. ok is false when the key is absent.
func LoadJSON[T any](ctx context.Context, s Store, key string) (T, bool, error) {
	var out T
	raw, ok, err := s.Get(ctx, key)
	if err != nil {
		return out, false, fmt.Errorf("load %s: %w", key, err)
	}
	if !ok {
		return out, false, nil
	}
	if err := json.Unmarshal(raw, &out); err != nil {
		return out, false, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, true, nil
}

// SaveJSON encodes v and writes it under key.
func SaveJSON(ctx context.Context, s Store, key string, v any) error {
	raw, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("encode %s: %w", key, err)
	}
	if err := s.Set(ctx, key, raw); err != nil {
		return fmt.Errorf("save %s: %w", key, err)
	}
	return nil
}
