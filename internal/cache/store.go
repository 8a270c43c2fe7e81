// Package cache stores GraphQL response payloads for the query executor.
package cache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"time"
)

const defaultSize = 256

// Entry is one cached response payload.
type Entry struct {
	Key       string
	Operation string
	Data      json.RawMessage
	StoredAt  time.Time
}

// Fresh reports whether e is younger than ttl at now. A zero ttl never expires.
func (e Entry) Fresh(now time.Time, ttl time.Duration) bool {
	if ttl <= 0 {
		return true
	}
	return now.Sub(e.StoredAt) < ttl
}

// Store is the executor-side response cache.
type Store interface {
	Get(ctx context.Context, key string) (Entry, bool, error)
	Put(ctx context.Context, e Entry) error
	Purge(ctx context.Context) error
	Close() error
}

// Key derives a cache key from an operation. Variables are encoded with
// encoding/json, which sorts map keys, so equal inputs give equal keys.
func Key(operation, query string, variables map[string]any) (string, error) {
	vars, err := json.Marshal(variables)
	if err != nil {
		return "", fmt.Errorf("encode variables: %w", err)
	}
	h := sha256.New()
	h.Write([]byte(query))
	h.Write([]byte{0})
	h.Write(vars)
	return operation + ":" + hex.EncodeToString(h.Sum(nil)), nil
}
