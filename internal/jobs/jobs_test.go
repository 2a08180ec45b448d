package jobs

import (
	"context"
	"os"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	mapset "github.com/deckarep/golang-set/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}

type countingJob struct {
	schedule string
	runs     atomic.Int32
	ran      chan struct{}
}

func (c *countingJob) Name() string     { return "counting" }
func (c *countingJob) Schedule() string { return c.schedule }

func (c *countingJob) Run() {
	c.runs.Add(1)
	select {
	case c.ran <- struct{}{}:
	default:
	}
}

func TestTaskExecutor_Run(t *testing.T) {
	job := &countingJob{schedule: "@every 1s", ran: make(chan struct{}, 1)}
	executor := NewTaskExecutor(nil, []CronJob{job})
	require.NoError(t, executor.Run())
	defer executor.Stop()

	select {
	case <-job.ran:
	case <-time.After(5 * time.Second):
		t.Fatal("cron job did not run")
	}
	assert.GreaterOrEqual(t, job.runs.Load(), int32(1))
}

func TestTaskExecutor_InvalidSchedule(t *testing.T) {
	executor := NewTaskExecutor(nil, []CronJob{&countingJob{schedule: "every now and then"}})
	assert.Error(t, executor.Run())
}

func TestRunOnce_SkipsRunningJob(t *testing.T) {
	var mu sync.Mutex
	job := &countingJob{ran: make(chan struct{}, 1)}
	running := mapset.NewThreadUnsafeSet[Job]()

	running.Add(job)
	runOnce(&mu, running, Job(job))
	assert.Equal(t, int32(0), job.runs.Load())

	running.Remove(job)
	runOnce(&mu, running, Job(job))
	assert.Equal(t, int32(1), job.runs.Load())
	assert.Equal(t, 0, running.Cardinality())
}

type fakeScheduler struct {
	calls int
	err   error
}

func (f *fakeScheduler) ApplySchedules(ctx context.Context, request *v1.ApplySchedulesRequest) (*v1.ApplySchedulesResponse, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return &v1.ApplySchedulesResponse{Changes: []*v1.ScheduledChange{
		{Kind: "service", ID: uuid.NewString(), VersionID: uuid.NewString(), Operation: "publish"},
	}}, nil
}

func TestScheduledPublishTask(t *testing.T) {
	scheduler := &fakeScheduler{}
	task := NewScheduledPublishTask("@every 1m", scheduler)

	assert.Equal(t, "@every 1m", task.Schedule())
	task.Run()
	assert.Equal(t, 1, scheduler.calls)

	scheduler.err = context.DeadlineExceeded
	task.Run()
	assert.Equal(t, 2, scheduler.calls)
}

func TestLockReaperTask(t *testing.T) {
	tester.Setup()
	s := store.NewGormStore(tester.TestDB())
	ctx := context.TODO()
	now := time.Now().UTC().Truncate(time.Second)
	table := model.KindService.Tables().Root

	stale, fresh := uuid.NewString(), uuid.NewString()
	_, err := s.AcquireLock(ctx, &model.Locking{EntityID: stale, EntityTable: table, LockedBy: "alice", LockedAt: now.Add(-2 * time.Hour)}, time.Minute)
	require.NoError(t, err)
	_, err = s.AcquireLock(ctx, &model.Locking{EntityID: fresh, EntityTable: table, LockedBy: "bob", LockedAt: now.Add(-time.Minute)}, time.Minute)
	require.NoError(t, err)

	task := NewLockReaperTask("@every 5m", 30*time.Minute, s)
	task.now = func() time.Time { return now }

	removed, err := task.reap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(1), removed)

	_, err = s.GetLock(ctx, stale, table)
	assert.ErrorIs(t, err, store.ErrNotFound)
	lock, err := s.GetLock(ctx, fresh, table)
	require.NoError(t, err)
	assert.Equal(t, "bob", lock.LockedBy)

	removed, err = task.reap(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(0), removed)
}
