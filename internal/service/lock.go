package service

import (
	"context"
	"errors"
	"fmt"

	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

const (
	operationLock   = versioning.Operation("lock")
	operationUnlock = versioning.Operation("unlock")
)

// LockEntity takes or refreshes the edit lock of an entity for the caller.
func (s *CatalogService) LockEntity(ctx context.Context, request *v1.EntityRef) (*v1.LockResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operationLock, err)
	}
	actor := module.Actor(ctx)

	var lock *model.Locking
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.GetRoot(ctx, kind, request.ID); err != nil {
			return err
		}
		lock, err = tx.AcquireLock(ctx, &model.Locking{
			EntityID:    request.ID,
			EntityTable: kind.Tables().Root,
			LockedBy:    actor,
			LockedAt:    s.clock(),
		}, s.opts.LockTTL)
		if errors.Is(err, store.ErrConflict) {
			return fmt.Errorf("%w: %s %s is locked by %s", ErrLocked, kind, request.ID, lock.LockedBy)
		}
		return err
	})
	if err != nil {
		return nil, s.fail(request.Kind, operationLock, err)
	}

	return &v1.LockResponse{Lock: s.toLock(lock)}, nil
}

// UnlockEntity releases the edit lock held by the caller.
func (s *CatalogService) UnlockEntity(ctx context.Context, request *v1.EntityRef) (*v1.Empty, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operationUnlock, err)
	}

	err = s.store.ReleaseLock(ctx, request.ID, kind.Tables().Root, module.Actor(ctx))
	if errors.Is(err, store.ErrConflict) {
		err = fmt.Errorf("%w: %s %s", ErrLocked, kind, request.ID)
	}
	if err != nil {
		return nil, s.fail(request.Kind, operationUnlock, err)
	}
	return &v1.Empty{}, nil
}

func (s *CatalogService) toLock(l *model.Locking) *v1.Lock {
	return &v1.Lock{
		EntityID:  l.EntityID,
		Table:     l.EntityTable,
		LockedBy:  l.LockedBy,
		LockedAt:  l.LockedAt,
		ExpiresAt: l.LockedAt.Add(s.opts.LockTTL),
	}
}
