// Package query executes GraphQL operations on behalf of views and reports
// each execution as a pending, failed or succeeded state.
package query

import (
	"fmt"
	"strings"
)

// Status is the lifecycle stage of one execution.
type Status int

const (
	Pending Status = iota
	Failed
	Succeeded
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Failed:
		return "failed"
	case Succeeded:
		return "succeeded"
	default:
		return fmt.Sprintf("status(%d)", int(s))
	}
}

// State is one emission of a watched operation.
type State[T any] struct {
	Status    Status
	Data      T
	Err       error
	FromCache bool
}

// FetchPolicy decides how the cache and the network are consulted.
type FetchPolicy string

const (
	// CacheFirst answers from a fresh cache entry and only goes to the network on a miss.
	CacheFirst FetchPolicy = "cache-first"
	// NetworkOnly always executes the request.
	NetworkOnly FetchPolicy = "network-only"
	// CacheAndNetwork answers from cache when possible and then executes the request.
	CacheAndNetwork FetchPolicy = "cache-and-network"
)

// ParsePolicy parses a configured policy name. Empty means CacheFirst.
func ParsePolicy(s string) (FetchPolicy, error) {
	switch p := FetchPolicy(strings.ToLower(strings.TrimSpace(s))); p {
	case "":
		return CacheFirst, nil
	case CacheFirst, NetworkOnly, CacheAndNetwork:
		return p, nil
	default:
		return "", fmt.Errorf("unknown fetch policy %q", s)
	}
}
