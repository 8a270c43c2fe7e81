package query

import (
	"context"
	"encoding/json"
	"errors"
	"sync/atomic"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"github.com/jask/simplecrm/internal/cache"
	"github.com/jask/simplecrm/internal/graphql"
)

// Options configures an Executor.
type Options struct {
	// Cache is optional. Without it every policy behaves like NetworkOnly.
	Cache  cache.Store
	Policy FetchPolicy
	TTL    time.Duration
	Logger *zap.Logger
	Now    func() time.Time
}

// Executor runs operations through a graphql.Doer.
type Executor struct {
	doer   graphql.Doer
	cache  cache.Store
	policy FetchPolicy
	ttl    time.Duration
	log    *zap.Logger
	now    func() time.Time
	group  singleflight.Group
	nextID atomic.Uint64
}

// New builds an Executor.
func New(doer graphql.Doer, opts Options) *Executor {
	if opts.Policy == "" {
		opts.Policy = CacheFirst
	}
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	return &Executor{
		doer:   doer,
		cache:  opts.Cache,
		policy: opts.Policy,
		ttl:    opts.TTL,
		log:    opts.Logger,
		now:    opts.Now,
	}
}

// Policy returns the default fetch policy for watches.
func (e *Executor) Policy() FetchPolicy { return e.policy }

// PurgeCache drops every cached response.
func (e *Executor) PurgeCache(ctx context.Context) error {
	if e.cache == nil {
		return nil
	}
	return e.cache.Purge(ctx)
}

func (e *Executor) cached(ctx context.Context, key string) (json.RawMessage, bool) {
	if e.cache == nil {
		return nil, false
	}
	entry, ok, err := e.cache.Get(ctx, key)
	if err != nil {
		e.log.Warn("cache read failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}
	if !ok || !entry.Fresh(e.now(), e.ttl) {
		return nil, false
	}
	return entry.Data, true
}

func (e *Executor) store(ctx context.Context, req graphql.Request, key string, data json.RawMessage) {
	if e.cache == nil {
		return
	}
	err := e.cache.Put(ctx, cache.Entry{Key: key, Operation: req.OperationName, Data: data, StoredAt: e.now()})
	if err != nil {
		e.log.Warn("cache write failed", zap.String("op", req.OperationName), zap.Error(err))
	}
}

// fetch executes req over the network. Identical in-flight requests share
// one execution. A waiter whose shared call was cancelled by another
// subscriber retries once on its own.
func (e *Executor) fetch(ctx context.Context, req graphql.Request, key string) (json.RawMessage, error) {
	for attempt := 0; ; attempt++ {
		ch := e.group.DoChan(key, func() (any, error) {
			return e.doer.Do(ctx, req)
		})
		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case r := <-ch:
			if r.Err != nil {
				if attempt == 0 && r.Shared && ctx.Err() == nil && errors.Is(r.Err, context.Canceled) {
					e.group.Forget(key)
					continue
				}
				return nil, r.Err
			}
			data, _ := r.Val.(json.RawMessage)
			e.store(ctx, req, key, data)
			return data, nil
		}
	}
}

func decode[T any](op string, data json.RawMessage) (T, error) {
	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return out, &graphql.QueryError{Operation: op, Kind: graphql.KindDecode, Err: err}
	}
	return out, nil
}

// Mutate executes a mutation over the network and decodes its data into T.
// A successful mutation purges the response cache so later watches refetch.
func Mutate[T any](ctx context.Context, e *Executor, req graphql.Request) (T, error) {
	var zero T
	data, err := e.doer.Do(ctx, req)
	if err != nil {
		e.log.Warn("mutation failed", zap.String("op", req.OperationName), zap.Error(err))
		return zero, err
	}
	out, err := decode[T](req.OperationName, data)
	if err != nil {
		return zero, err
	}
	if err := e.PurgeCache(ctx); err != nil {
		e.log.Warn("cache purge after mutation failed", zap.String("op", req.OperationName), zap.Error(err))
	}
	return out, nil
}

// Fetch runs req once under the executor's policy and returns the first
// settled state.
func Fetch[T any](ctx context.Context, e *Executor, req graphql.Request, opts ...WatchOption) (T, error) {
	var zero T
	sub := Watch[T](ctx, e, req, opts...)
	defer sub.Close()
	for {
		select {
		case <-ctx.Done():
			return zero, ctx.Err()
		case st, ok := <-sub.States():
			if !ok {
				return zero, context.Canceled
			}
			switch st.Status {
			case Succeeded:
				return st.Data, nil
			case Failed:
				return zero, st.Err
			}
		}
	}
}
