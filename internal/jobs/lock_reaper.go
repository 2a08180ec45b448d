package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/metrics"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
)

// LockReaperTask removes entity locks older than the lock ttl.
type LockReaperTask struct {
	store store.LockStore
	ttl   time.Duration
	cron  string
	now   func() time.Time
}

func NewLockReaperTask(cron string, ttl time.Duration, store store.LockStore) *LockReaperTask {
	return &LockReaperTask{
		store: store,
		ttl:   ttl,
		cron:  cron,
		now:   time.Now,
	}
}

func (l *LockReaperTask) Name() string {
	return "lock_reaper"
}

func (l *LockReaperTask) Schedule() string {
	return l.cron
}

func (l *LockReaperTask) Run() {
	if _, err := l.reap(context.Background()); err != nil {
		logrus.Errorf("failed to remove expired locks: %v", err)
	}
}

func (l *LockReaperTask) reap(ctx context.Context) (int64, error) {
	removed, err := l.store.DeleteExpiredLocks(ctx, l.now().UTC().Add(-l.ttl))
	if err != nil {
		return 0, err
	}

	if removed > 0 {
		metrics.Default().LocksReaped.Add(float64(removed))
		logrus.Infof("removed %d expired locks", removed)
	}

	return removed, nil
}
