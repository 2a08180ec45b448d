package service

import (
	"context"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

const operationSchedules = versioning.Operation("schedules")

// ApplySchedules publishes working versions whose validity has started and
// archives published versions whose validity has ended. An entity that fails
// is logged and skipped so that one bad aggregate does not stop the run.
func (s *CatalogService) ApplySchedules(ctx context.Context, request *v1.ApplySchedulesRequest) (*v1.ApplySchedulesResponse, error) {
	now := s.clock()
	if request.Now != nil {
		now = request.Now.UTC()
	}

	changes := make([]*v1.ScheduledChange, 0)
	for _, kind := range model.Kinds {
		roots, err := s.store.ListScheduledRoots(ctx, kind, now)
		if err != nil {
			return nil, s.fail(string(kind), operationSchedules, err)
		}

		for _, rootID := range roots {
			var applied *versioning.Plan
			entity, err := s.write(ctx, change{kind: kind, rootID: rootID, system: true}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
				plan, err := agg.PlanScheduled(now)
				if err != nil {
					return nil, nil, err
				}
				if plan.Empty() {
					if plan, err = agg.PlanExpire(now); err != nil {
						return nil, nil, err
					}
				}
				applied = plan
				return plan, nil, nil
			})
			if err != nil {
				logrus.Errorf("failed to apply schedule of %s %s: %v", kind, rootID, err)
				s.metrics.IncError(string(kind), string(operationSchedules), toStatusCode(err))
				continue
			}
			if applied == nil || applied.Empty() {
				continue
			}

			s.metrics.Scheduled.WithLabelValues(string(kind), string(applied.Operation)).Inc()
			changes = append(changes, &v1.ScheduledChange{
				Kind:      string(kind),
				ID:        rootID,
				VersionID: scheduledVersion(applied, entity),
				Operation: string(applied.Operation),
			})
			logrus.Infof("%s %s: %s version %s", applied.Operation, kind, rootID, entity.Version.Version)
		}
	}

	return &v1.ApplySchedulesResponse{Changes: changes}, nil
}

// scheduledVersion is the version a scheduled plan published or archived.
func scheduledVersion(plan *versioning.Plan, entity *v1.Entity) string {
	if plan.Operation == versioning.OperationExpire {
		for _, c := range plan.Statuses {
			if c.To == versioning.Archived {
				return c.VersionID
			}
		}
	}
	return entity.Version.ID
}
