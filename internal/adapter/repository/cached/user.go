package cached

import (
	"context"
	"sync/atomic"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"user-contact-service/internal/adapter/cache"
	domain "user-contact-service/internal/domain/user"
	"user-contact-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
// Only single-user lookups are cached; searches and pages always hit the store.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group

	// writes counts completed updates and deletes. A load that overlaps a
	// write is returned but not cached, so it cannot outlive the invalidation.
	writes atomic.Uint64
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// clone gives every caller its own copy so a handler mutating the result
// cannot affect a concurrent caller sharing the same single-flight load.
func clone(u *domain.User) *domain.User {
	if u == nil {
		return nil
	}
	c := *u
	if u.ContactDetail != nil {
		cd := *u.ContactDetail
		c.ContactDetail = &cd
	}
	return &c
}

// Get retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) Get(ctx context.Context, id int64) (*domain.User, error) {
	if r.cache != nil {
		cachedUser, err := r.cache.Get(ctx, id)
		if err != nil {
			r.log.Warn("cache get error, falling back to database", zap.Int64("id", id), zap.Error(err))
		} else if cachedUser != nil {
			r.log.Debug("user retrieved from cache", zap.Int64("id", id))
			return cachedUser, nil
		}
	}

	// Cache miss or cache disabled - use single-flight to prevent stampede
	result, err, _ := r.group.Do(cache.Key(id), func() (any, error) {
		// Another request may have populated the cache while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		seen := r.writes.Load()
		u, err := r.dbRepo.Get(ctx, id)
		if err != nil {
			return nil, err
		}
		if u == nil {
			return nil, nil
		}

		if r.writes.Load() != seen {
			r.log.Debug("store changed during load, not caching user", zap.Int64("id", id))
		} else if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})
	if err != nil {
		return nil, err
	}

	u, _ := result.(*domain.User)
	return clone(u), nil
}

// Find delegates to the DB repository.
func (r *CachedUserRepository) Find(ctx context.Context, givenNames, lastName string) ([]domain.User, error) {
	return r.dbRepo.Find(ctx, givenNames, lastName)
}

// ListPage delegates to the DB repository.
func (r *CachedUserRepository) ListPage(ctx context.Context, pageNumber, perPage int) ([]domain.User, error) {
	return r.dbRepo.ListPage(ctx, pageNumber, perPage)
}

// Count delegates to the DB repository.
func (r *CachedUserRepository) Count(ctx context.Context) (int64, error) {
	return r.dbRepo.Count(ctx)
}

// Add delegates to the DB repository.
func (r *CachedUserRepository) Add(ctx context.Context, u *domain.User) (*domain.User, error) {
	return r.dbRepo.Add(ctx, u)
}

// Update updates the user in DB and invalidates the cache.
func (r *CachedUserRepository) Update(ctx context.Context, u *domain.User) (*domain.User, error) {
	updated, err := r.dbRepo.Update(ctx, u)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, u.ID, "update")
	return updated, nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id int64) (*domain.User, error) {
	deleted, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return nil, err
	}

	r.invalidate(ctx, id, "delete")
	return deleted, nil
}

func (r *CachedUserRepository) invalidate(ctx context.Context, id int64, op string) {
	r.writes.Add(1)
	if r.cache == nil {
		return
	}
	if err := r.cache.Delete(ctx, id); err != nil {
		r.log.Warn("failed to invalidate cache after "+op, zap.Int64("id", id), zap.Error(err))
	}
}
