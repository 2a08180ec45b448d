package jobs

import (
	"sync"

	mapset "github.com/deckarep/golang-set/v2"
	cron "github.com/robfig/cron"
	"github.com/sirupsen/logrus"
)

type Job interface {
	Name() string
	Run()
}

type CronJob interface {
	Schedule() string
	Job
}

// TaskExecutor runs jobs on the cron. A job is never run concurrently with
// itself: a tick that finds the previous run still going is skipped.
type TaskExecutor struct {
	cron            *cron.Cron
	jobs            []Job
	cronJobs        []CronJob
	runningJobs     mapset.Set[Job]
	runningCronJobs mapset.Set[CronJob]
	muJobs          sync.Mutex
	muCronJobs      sync.Mutex
}

func NewTaskExecutor(jobs []Job, cronJobs []CronJob) *TaskExecutor {
	return &TaskExecutor{
		cron:            cron.New(),
		jobs:            jobs,
		cronJobs:        cronJobs,
		runningCronJobs: mapset.NewThreadUnsafeSet[CronJob](),
		runningJobs:     mapset.NewThreadUnsafeSet[Job](),
	}
}

// Run schedules the jobs and starts the cron. Plain jobs run every second.
func (t *TaskExecutor) Run() error {
	for _, job := range t.cronJobs {
		err := t.cron.AddFunc(job.Schedule(), func() {
			runOnce(&t.muCronJobs, t.runningCronJobs, job)
		})
		if err != nil {
			logrus.Errorf("failed to add task %s to cron: %v", job.Name(), err)
			return err
		}
		logrus.Infof("scheduled task %s: %s", job.Name(), job.Schedule())
	}

	for _, job := range t.jobs {
		err := t.cron.AddFunc("@every 1s", func() {
			runOnce(&t.muJobs, t.runningJobs, job)
		})
		if err != nil {
			return err
		}
	}

	t.cron.Start()
	return nil
}

type task interface {
	comparable
	Job
}

func runOnce[J task](mu *sync.Mutex, running mapset.Set[J], job J) {
	mu.Lock()
	if running.Contains(job) {
		mu.Unlock()
		logrus.Warnf("task %s is still running", job.Name())
		return
	}
	running.Add(job)
	mu.Unlock()

	defer func() {
		mu.Lock()
		defer mu.Unlock()
		running.Remove(job)
	}()

	job.Run()
}

func (t *TaskExecutor) Stop() {
	logrus.Infof("stopping all tasks")
	t.cron.Stop()
}
