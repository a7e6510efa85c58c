package cached

import (
	"context"
	"fmt"

	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"

	"mysql-user-service/internal/adapter/cache"
	domain "mysql-user-service/internal/domain/user"
	"mysql-user-service/internal/usecase/user"
)

// CachedUserRepository implements user.Repository with caching support.
// It wraps a persistent repository (DB) and a cache implementation.
type CachedUserRepository struct {
	dbRepo user.Repository
	cache  cache.UserCache
	log    *zap.Logger
	group  singleflight.Group
}

// NewCachedUserRepository creates a new instance of CachedUserRepository.
func NewCachedUserRepository(dbRepo user.Repository, cache cache.UserCache, log *zap.Logger) user.Repository {
	return &CachedUserRepository{
		dbRepo: dbRepo,
		cache:  cache,
		log:    log,
	}
}

// Create inserts through the DB repository and invalidates the listing.
func (r *CachedUserRepository) Create(ctx context.Context, u *domain.User) (int64, error) {
	id, err := r.dbRepo.Create(ctx, u)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.InvalidateList(ctx); err != nil {
			r.log.Warn("failed to invalidate listing after create", zap.Int64("id", id), zap.Error(err))
		}
	}

	return id, nil
}

// GetByID retrieves a user by ID using Cache-Aside pattern.
func (r *CachedUserRepository) GetByID(ctx context.Context, id int64) (*domain.User, error) {
	// Try to get from cache first
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
	key := fmt.Sprintf("user:%d", id)
	result, err, _ := r.group.Do(key, func() (any, error) {
		// Double-check cache in case another request populated it while we were waiting
		if r.cache != nil {
			cachedUser, err := r.cache.Get(ctx, id)
			if err == nil && cachedUser != nil {
				r.log.Debug("user retrieved from cache after single-flight wait", zap.Int64("id", id))
				return cachedUser, nil
			}
		}

		// Only one request hits database
		u, err := r.dbRepo.GetByID(ctx, id)
		if err != nil {
			return nil, err
		}

		// Store in cache for future requests
		if r.cache != nil {
			if err := r.cache.Set(ctx, u); err != nil {
				r.log.Warn("failed to cache user", zap.Int64("id", id), zap.Error(err))
			}
		}

		return u, nil
	})

	if err != nil {
		return nil, err
	}

	return result.(*domain.User), nil
}

// Delete deletes the user from DB and invalidates the cache.
func (r *CachedUserRepository) Delete(ctx context.Context, id int64) (int64, error) {
	deletedID, err := r.dbRepo.Delete(ctx, id)
	if err != nil {
		return 0, err
	}

	if r.cache != nil {
		if err := r.cache.Delete(ctx, id); err != nil {
			r.log.Warn("failed to invalidate cache after delete", zap.Int64("id", id), zap.Error(err))
		}
		if err := r.cache.InvalidateList(ctx); err != nil {
			r.log.Warn("failed to invalidate listing after delete", zap.Int64("id", id), zap.Error(err))
		}
	}

	return deletedID, nil
}

// List retrieves the full listing using Cache-Aside pattern.
func (r *CachedUserRepository) List(ctx context.Context) ([]domain.User, error) {
	if r.cache != nil {
		cachedUsers, err := r.cache.GetList(ctx)
		if err != nil {
			r.log.Warn("listing cache get error, falling back to database", zap.Error(err))
		} else if cachedUsers != nil {
			r.log.Debug("listing retrieved from cache", zap.Int("count", len(cachedUsers)))
			return cachedUsers, nil
		}
	}

	result, err, _ := r.group.Do("users:all", func() (any, error) {
		if r.cache != nil {
			cachedUsers, err := r.cache.GetList(ctx)
			if err == nil && cachedUsers != nil {
				r.log.Debug("listing retrieved from cache after single-flight wait")
				return cachedUsers, nil
			}
		}

		users, err := r.dbRepo.List(ctx)
		if err != nil {
			return nil, err
		}

		if r.cache != nil {
			if err := r.cache.SetList(ctx, users); err != nil {
				r.log.Warn("failed to cache listing", zap.Error(err))
			}
		}

		return users, nil
	})

	if err != nil {
		return nil, err
	}

	return result.([]domain.User), nil
}
