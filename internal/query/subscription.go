package query

import (
	"context"
	"maps"
	"sync"

	"go.uber.org/zap"

	"github.com/jask/simplecrm/internal/cache"
	"github.com/jask/simplecrm/internal/graphql"
)

type watchConfig struct {
	policy FetchPolicy
}

// WatchOption adjusts a single watch.
type WatchOption func(*watchConfig)

// WithPolicy overrides the executor's default fetch policy.
func WithPolicy(p FetchPolicy) WatchOption {
	return func(c *watchConfig) { c.policy = p }
}

// Subscription is a live watch of one operation. States are delivered on
// States until Close; the channel is closed when the watch ends.
type Subscription[T any] struct {
	id      uint64
	states  chan State[T]
	vars    chan map[string]any
	refetch chan struct{}
	cancel  context.CancelFunc
	done    chan struct{}
	once    sync.Once
}

// Watch starts executing req and keeps re-executing it whenever its
// variables change or a refetch is requested.
func Watch[T any](ctx context.Context, e *Executor, req graphql.Request, opts ...WatchOption) *Subscription[T] {
	cfg := watchConfig{policy: e.policy}
	for _, opt := range opts {
		opt(&cfg)
	}
	ctx, cancel := context.WithCancel(ctx)
	s := &Subscription[T]{
		id:      e.nextID.Add(1),
		states:  make(chan State[T]),
		vars:    make(chan map[string]any, 1),
		refetch: make(chan struct{}, 1),
		cancel:  cancel,
		done:    make(chan struct{}),
	}
	req.Variables = maps.Clone(req.Variables)
	go s.run(ctx, e, req, cfg.policy)
	return s
}

// ID identifies the subscription among all watches of its executor.
func (s *Subscription[T]) ID() uint64 { return s.id }

// States returns the emission channel.
func (s *Subscription[T]) States() <-chan State[T] { return s.states }

// SetVariables re-executes the operation with vars. Only the latest pending
// change is kept.
func (s *Subscription[T]) SetVariables(vars map[string]any) {
	select {
	case <-s.vars:
	default:
	}
	select {
	case s.vars <- maps.Clone(vars):
	default:
	}
}

// Refetch re-executes the operation over the network.
func (s *Subscription[T]) Refetch() {
	select {
	case s.refetch <- struct{}{}:
	default:
	}
}

// Close stops the watch and waits for its goroutine to exit. It is safe to
// call more than once.
func (s *Subscription[T]) Close() {
	s.once.Do(s.cancel)
	<-s.done
}

func (s *Subscription[T]) run(ctx context.Context, e *Executor, req graphql.Request, initial FetchPolicy) {
	defer close(s.done)
	defer close(s.states)

	policy := initial
	for {
		if !s.execute(ctx, e, req, policy) {
			return
		}
		select {
		case <-ctx.Done():
			return
		case vars := <-s.vars:
			req.Variables = vars
			policy = initial
		case <-s.refetch:
			policy = NetworkOnly
		}
	}
}

// execute runs one execution and reports false once the subscription is closed.
func (s *Subscription[T]) execute(ctx context.Context, e *Executor, req graphql.Request, policy FetchPolicy) bool {
	log := e.log.With(zap.String("op", req.OperationName), zap.Uint64("subscription", s.id))
	key, err := cache.Key(req.OperationName, req.Query, req.Variables)
	if err != nil {
		return s.emit(ctx, State[T]{Status: Failed, Err: &graphql.QueryError{Operation: req.OperationName, Kind: graphql.KindDecode, Err: err}})
	}

	servedFromCache := false
	if policy != NetworkOnly {
		if data, ok := e.cached(ctx, key); ok {
			if out, err := decode[T](req.OperationName, data); err == nil {
				log.Debug("cache hit")
				if !s.emit(ctx, State[T]{Status: Succeeded, Data: out, FromCache: true}) {
					return false
				}
				if policy == CacheFirst {
					return true
				}
				servedFromCache = true
			}
		}
	}

	if !servedFromCache {
		if !s.emit(ctx, State[T]{Status: Pending}) {
			return false
		}
	}
	data, err := e.fetch(ctx, req, key)
	if ctx.Err() != nil {
		return false
	}
	if err != nil {
		log.Warn("query failed", zap.Error(err))
		return s.emit(ctx, State[T]{Status: Failed, Err: err})
	}
	out, err := decode[T](req.OperationName, data)
	if err != nil {
		log.Warn("query decode failed", zap.Error(err))
		return s.emit(ctx, State[T]{Status: Failed, Err: err})
	}
	return s.emit(ctx, State[T]{Status: Succeeded, Data: out})
}

func (s *Subscription[T]) emit(ctx context.Context, st State[T]) bool {
	select {
	case s.states <- st:
		return true
	case <-ctx.Done():
		return false
	}
}
