package post

import (
	"context"
	"log/slog"
)

// CachedRepository serves [Repository.ScanAll] from a [Cache] and bumps the
// cache version after every write, so a lookup never sees a deleted or
// outdated post once the write has returned.
//
// Cache failures degrade to the underlying store; they never fail a request.
type CachedRepository struct {
	next   Repository
	cache  Cache
	logger *slog.Logger
}

// NewCachedRepository wraps next with cache.
func NewCachedRepository(next Repository, cache Cache, logger *slog.Logger) *CachedRepository {
	return &CachedRepository{next: next, cache: cache, logger: logger}
}

func (repository *CachedRepository) Create(context context.Context, post *Post) (string, error) {
	id, err := repository.next.Create(context, post)
	if err != nil {
		return "", err
	}
	repository.invalidate(context)
	return id, nil
}

func (repository *CachedRepository) Overwrite(context context.Context, id string, post *Post) error {
	if err := repository.next.Overwrite(context, id, post); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

func (repository *CachedRepository) Delete(context context.Context, id string) error {
	if err := repository.next.Delete(context, id); err != nil {
		return err
	}
	repository.invalidate(context)
	return nil
}

// ScanAll reads the version first and only then scans the store. The scan
// is stored under that version, never under a newer one.
func (repository *CachedRepository) ScanAll(context context.Context) ([]*Post, error) {
	version, err := repository.cache.Version(context)
	if err != nil {
		repository.logger.WarnContext(context, "post_cache_version_failed", slog.Any("error", err))
		return repository.next.ScanAll(context)
	}

	posts, ok, err := repository.cache.Load(context, version)
	if err != nil {
		repository.logger.WarnContext(context, "post_cache_load_failed", slog.Any("error", err))
	}
	if ok && err == nil {
		return posts, nil
	}

	posts, err = repository.next.ScanAll(context)
	if err != nil {
		return nil, err
	}

	if err := repository.cache.Store(context, version, posts); err != nil {
		repository.logger.WarnContext(context, "post_cache_store_failed", slog.Any("error", err))
	}

	return posts, nil
}

func (repository *CachedRepository) invalidate(context context.Context) {
	if err := repository.cache.Invalidate(context); err != nil {
		repository.logger.ErrorContext(context, "post_cache_invalidate_failed", slog.Any("error", err))
	}
}
