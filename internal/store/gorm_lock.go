package store

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm"
)

func (g *GormStore) GetLock(ctx context.Context, entityID, table string) (*model.Locking, error) {
	var lock model.Locking
	err := g.db.WithContext(ctx).
		Where("entity_id = ? AND table_name = ?", entityID, table).
		First(&lock).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &lock, nil
}

// AcquireLock should run in a transaction.
func (g *GormStore) AcquireLock(ctx context.Context, lock *model.Locking, ttl time.Duration) (*model.Locking, error) {
	current, err := g.GetLock(ctx, lock.EntityID, lock.EntityTable)
	if errors.Is(err, ErrNotFound) {
		if lock.ID == "" {
			lock.ID = uuid.NewString()
		}
		if err := g.db.WithContext(ctx).Create(lock).Error; err != nil {
			return nil, mapError(err)
		}
		return lock, nil
	}
	if err != nil {
		return nil, err
	}

	if current.LockedBy != lock.LockedBy && !current.Expired(lock.LockedAt, ttl) {
		return current, ErrConflict
	}

	res := g.db.WithContext(ctx).Model(&model.Locking{}).
		Where("id = ? AND locked_by = ?", current.ID, current.LockedBy).
		Updates(map[string]any{
			"locked_by": lock.LockedBy,
			"locked_at": lock.LockedAt,
		})
	if res.Error != nil {
		return nil, mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return current, ErrConflict
	}

	current.LockedBy = lock.LockedBy
	current.LockedAt = lock.LockedAt
	return current, nil
}

func (g *GormStore) ReleaseLock(ctx context.Context, entityID, table, holder string) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var lock model.Locking
		err := tx.Where("entity_id = ? AND table_name = ?", entityID, table).First(&lock).Error
		if err != nil {
			return mapError(err)
		}
		if lock.LockedBy != holder {
			return ErrConflict
		}
		return mapError(tx.Delete(&lock).Error)
	})
}

func (g *GormStore) DeleteExpiredLocks(ctx context.Context, before time.Time) (int64, error) {
	res := g.db.WithContext(ctx).Where("locked_at < ?", before).Delete(&model.Locking{})
	return res.RowsAffected, mapError(res.Error)
}
