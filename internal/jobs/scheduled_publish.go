package jobs

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
)

// Scheduler applies the validity windows of catalog versions.
type Scheduler interface {
	ApplySchedules(ctx context.Context, request *v1.ApplySchedulesRequest) (*v1.ApplySchedulesResponse, error)
}

// ScheduledPublishTask publishes versions whose validity window has started
// and archives the ones whose window has ended.
type ScheduledPublishTask struct {
	scheduler Scheduler
	cron      string
	timeout   time.Duration
}

func NewScheduledPublishTask(cron string, scheduler Scheduler) *ScheduledPublishTask {
	return &ScheduledPublishTask{
		scheduler: scheduler,
		cron:      cron,
		timeout:   time.Minute,
	}
}

func (s *ScheduledPublishTask) Name() string {
	return "scheduled_publish"
}

func (s *ScheduledPublishTask) Schedule() string {
	return s.cron
}

func (s *ScheduledPublishTask) Run() {
	ctx, cancel := context.WithTimeout(context.Background(), s.timeout)
	defer cancel()

	res, err := s.scheduler.ApplySchedules(ctx, &v1.ApplySchedulesRequest{})
	if err != nil {
		logrus.Errorf("failed to apply schedules: %v", err)
		return
	}

	for _, change := range res.Changes {
		logrus.Infof("%s %s %s: version %s", change.Operation, change.Kind, change.ID, change.VersionID)
	}
}
