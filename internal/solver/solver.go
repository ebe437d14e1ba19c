// Package solver ties configuration, the solution cache and metrics around
// the FreeCell search.
package solver

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/pdrpinto/search"
	"github.com/pdrpinto/search/config"
	"github.com/pdrpinto/search/freecell"
	"github.com/pdrpinto/search/internal/logging"
	"github.com/pdrpinto/search/store"
)

// Request overrides the configured strategy and depth limit for one search.
type Request struct {
	Strategy   string
	DepthLimit *int
}

// Solution is a solved position. Cached is set when it came from the store.
type Solution struct {
	Record *store.Record
	Cached bool
}

// Service solves positions with the configured settings. Store may be nil.
type Service struct {
	cfg    config.Config
	store  store.Store
	logger *slog.Logger
	hooks  search.Hooks
}

type Option func(*Service)

func WithStore(s store.Store) Option {
	return func(service *Service) { service.store = s }
}

func WithLogger(logger *slog.Logger) Option {
	return func(service *Service) { service.logger = logger }
}

func WithHooks(hooks search.Hooks) Option {
	return func(service *Service) { service.hooks = hooks }
}

func New(cfg config.Config, opts ...Option) *Service {
	service := &Service{cfg: cfg, logger: logging.NewNop()}
	for _, opt := range opts {
		opt(service)
	}
	return service
}

func (s *Service) Config() config.Config { return s.cfg }

// Params resolves the settings req searches with.
func (s *Service) Params(req Request) (store.Params, error) {
	params := store.Params{
		Strategy:   s.cfg.Kind(),
		DepthLimit: s.cfg.DepthLimit,
		Reopen:     s.cfg.Reopen,
		Weights:    s.cfg.Heuristic,
	}
	if req.Strategy != "" {
		kind, err := search.ParseKind(req.Strategy)
		if err != nil {
			return params, err
		}
		params.Strategy = kind
	}
	if req.DepthLimit != nil {
		params.DepthLimit = *req.DepthLimit
	}
	return params, nil
}

// Strategy builds the search strategy for req.
func (s *Service) Strategy(req Request) (search.Strategy[freecell.State, freecell.Action, string], error) {
	params, err := s.Params(req)
	if err != nil {
		return nil, err
	}
	return s.strategy(params)
}

func (s *Service) strategy(params store.Params) (search.Strategy[freecell.State, freecell.Action, string], error) {
	options := append(s.cfg.SearchOptions(),
		search.WithLogger(s.logger.With("strategy", string(params.Strategy))),
		search.WithHooks(s.hooks),
	)
	return freecell.NewSolver(params.Strategy, params.Weights, params.DepthLimit, options...)
}

// Solve returns a cached solution for state or searches for a new one.
// Failed searches are not cached.
func (s *Service) Solve(ctx context.Context, state freecell.State, req Request) (*Solution, error) {
	params, err := s.Params(req)
	if err != nil {
		return nil, err
	}
	strategy, err := s.strategy(params)
	if err != nil {
		return nil, err
	}
	digest := store.Digest(params, state)

	if s.store != nil {
		record, err := s.store.Get(ctx, digest)
		switch {
		case err == nil:
			s.logger.Debug("solution cache hit", "digest", digest)
			return &Solution{Record: record, Cached: true}, nil
		case !errors.Is(err, store.ErrNotFound):
			s.logger.Warn("solution cache unavailable", "error", err)
		}
	}

	result, err := strategy.Solve(ctx, state)
	if err != nil {
		return nil, err
	}
	record := NewRecord(digest, strategy.Kind(), result)

	if s.store != nil {
		if err := s.store.Put(ctx, record); err != nil {
			s.logger.Warn("failed to cache solution", "digest", digest, "error", err)
		}
	}
	return &Solution{Record: record}, nil
}

// NewRecord converts a successful search result into a store record.
func NewRecord(digest string, kind search.Kind, result search.Result[freecell.State, freecell.Action]) *store.Record {
	return &store.Record{
		Digest:     digest,
		Strategy:   kind,
		Moves:      result.Actions,
		Expanded:   result.Expanded,
		Discovered: result.Discovered,
		Elapsed:    result.Elapsed,
		SolvedAt:   time.Now().UTC(),
	}
}

// OpenStore builds the cache backend named by cfg. It returns nil for "none".
func OpenStore(ctx context.Context, cfg config.CacheConfig) (store.Store, error) {
	switch cfg.Backend {
	case "", "none":
		return nil, nil
	case "memory":
		return store.NewMemory(), nil
	case "redis":
		redis := store.NewRedis(cfg.Addr, cfg.Password, cfg.DB,
			store.WithPrefix(cfg.Prefix),
			store.WithTTL(cfg.TTL),
		)
		if err := redis.Ping(ctx); err != nil {
			_ = redis.Close()
			return nil, fmt.Errorf("failed to reach redis at %s: %w", cfg.Addr, err)
		}
		return redis, nil
	}
	return nil, fmt.Errorf("unknown cache backend %q", cfg.Backend)
}
