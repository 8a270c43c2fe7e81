package main

import (
	"fmt"
	"strings"

	"go.uber.org/zap"

	"github.com/jask/simplecrm/internal/cache"
	"github.com/jask/simplecrm/internal/config"
	"github.com/jask/simplecrm/internal/graphql"
	"github.com/jask/simplecrm/internal/i18n"
	"github.com/jask/simplecrm/internal/logging"
	"github.com/jask/simplecrm/internal/query"
)

// options are the persistent command-line overrides.
type options struct {
	configPath string
	endpoint   string
	locale     string
	route      string
}

// runtime is everything a command needs, built once from config.
type runtime struct {
	cfg     config.Config
	cfgPath string
	log     *zap.Logger
	store   cache.Store
	exec    *query.Executor
	loc     *i18n.Localizer
}

func setup(opts options) (*runtime, error) {
	cfgPath := opts.configPath
	if cfgPath == "" {
		cfgPath = config.Path()
	}
	cfg, err := config.LoadFile(cfgPath)
	if err != nil {
		return nil, err
	}
	if opts.endpoint != "" {
		cfg.GraphQL.Endpoint = opts.endpoint
	}
	if opts.locale != "" {
		cfg.UI.Locale = opts.locale
	}
	if opts.route != "" {
		cfg.UI.StartRoute = opts.route
	}
	policy, err := query.ParsePolicy(cfg.Cache.Policy)
	if err != nil {
		return nil, fmt.Errorf("config: cache.policy: %w", err)
	}

	log, err := logging.New(cfg.Log)
	if err != nil {
		return nil, err
	}
	rt := &runtime{cfg: cfg, cfgPath: cfgPath, log: log}

	if cfg.Cache.Enabled {
		store, err := cache.OpenSQLite(cfg.Cache.Path, cfg.Cache.Size)
		if err != nil {
			log.Warn("persistent cache unavailable, using memory", zap.String("path", cfg.Cache.Path), zap.Error(err))
			mem, merr := cache.NewMemory(cfg.Cache.Size)
			if merr != nil {
				_ = log.Sync()
				return nil, merr
			}
			rt.store = mem
		} else {
			rt.store = store
		}
	}

	client, err := graphql.NewClient(graphql.Options{
		Endpoint: cfg.GraphQL.Endpoint,
		Timeout:  cfg.GraphQL.Timeout,
		Headers:  cfg.GraphQL.Headers,
		Logger:   log.Named("graphql"),
	})
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.exec = query.New(client, query.Options{
		Cache:  rt.store,
		Policy: policy,
		TTL:    cfg.Cache.TTL,
		Logger: log.Named("query"),
	})

	bundle, err := i18n.Load()
	if err != nil {
		rt.Close()
		return nil, err
	}
	rt.loc = bundle.Localizer(cfg.UI.Locale)
	if !strings.EqualFold(rt.loc.Locale(), cfg.UI.Locale) {
		log.Warn("unknown locale, using default", zap.String("locale", cfg.UI.Locale))
	}

	log.Info("started",
		zap.String("endpoint", cfg.GraphQL.Endpoint),
		zap.String("policy", string(policy)),
		zap.Bool("cache", rt.store != nil),
	)
	return rt, nil
}

// Close releases the cache and flushes the log.
func (rt *runtime) Close() {
	if rt.store != nil {
		if err := rt.store.Close(); err != nil {
			rt.log.Warn("close cache", zap.Error(err))
		}
	}
	_ = rt.log.Sync()
}
