package provider

import (
	"context"
	"errors"

	"go.uber.org/zap"
)

type Service interface {
	List(ctx context.Context, f Filter) ([]Provider, error)
}

type service struct {
	repo  Repository
	cache Cache
	log   *zap.Logger
}

// NewService builds the directory service. cache may be nil, in which case
// every listing goes straight to the store.
func NewService(repo Repository, cache Cache, log *zap.Logger) Service {
	return &service{repo: repo, cache: cache, log: log}
}

func cacheKey(f Filter) string {
	return "providers:" + f.Specialty + ":" + f.Query
}

func (s *service) List(ctx context.Context, f Filter) ([]Provider, error) {
	key := cacheKey(f)

	if s.cache != nil {
		cached, err := s.cache.Get(ctx, key)
		if err == nil {
			return cached, nil
		}
		if !errors.Is(err, ErrCacheMiss) {
			// Cache trouble degrades to a DB read, never to a failure.
			s.log.Warn("provider cache read failed", zap.String("key", key), zap.Error(err))
		}
	}

	providers, err := s.repo.List(ctx, f)
	if err != nil {
		return nil, err
	}

	if s.cache != nil {
		if err := s.cache.Set(ctx, key, providers); err != nil {
			s.log.Warn("provider cache write failed", zap.String("key", key), zap.Error(err))
		}
	}
	return providers, nil
}
