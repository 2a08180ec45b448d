package service

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/metrics"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

const (
	SelectorLatest    = "latest"
	SelectorPublished = "published"

	defaultPageSize = 20
)

// Options tune the catalog service.
type Options struct {
	// CacheTTL is how long published views stay cached.
	CacheTTL time.Duration
	// LockTTL is how long an edit lock is held without being refreshed.
	LockTTL time.Duration
}

func DefaultOptions() Options {
	return Options{
		CacheTTL: 10 * time.Minute,
		LockTTL:  30 * time.Minute,
	}
}

// NewCatalogService creates a new catalog service
func NewCatalogService(store store.Store, cache cache.ViewCache, queue queue.Publisher, opts Options) *CatalogService {
	return &CatalogService{
		store:   store,
		cache:   cache,
		queue:   queue,
		metrics: metrics.Default(),
		opts:    opts,
	}
}

var _ v1.CatalogServer = (*CatalogService)(nil)

// CatalogService implements the catalog operations for every aggregate kind.
type CatalogService struct {
	store   store.Store
	cache   cache.ViewCache
	queue   queue.Publisher
	metrics *metrics.Metrics
	opts    Options
	now     func() time.Time
	v1.UnimplementedCatalogServer
}

func (s *CatalogService) clock() time.Time {
	if s.now != nil {
		return s.now().UTC()
	}
	return time.Now().UTC()
}

// fail counts and converts an operation error.
func (s *CatalogService) fail(kind string, operation versioning.Operation, err error) error {
	err = toStatus(err)
	code := status.Code(err)
	if code != codes.NotFound && code != codes.InvalidArgument {
		logrus.Errorf("%s %s: %v", operation, kind, err)
	}
	s.metrics.IncError(kind, string(operation), code.String())
	return err
}

// CreateEntity stores a new aggregate with a draft first version.
func (s *CatalogService) CreateEntity(ctx context.Context, request *v1.CreateEntityRequest) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationCreate, err)
	}

	rootID := request.ID
	if rootID == "" {
		rootID = uuid.NewString()
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: rootID, create: true}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		content, named, err := s.prepareContent(ctx, tx, kind, request.Content, langs)
		if err != nil {
			return nil, nil, err
		}
		plan, err := agg.PlanEdit(named)
		return plan, content, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationCreate, err)
	}

	logrus.Infof("created %s %s", kind, rootID)
	return &v1.EntityResponse{Entity: entity}, nil
}

// UpdateEntity stores edited content as a new working version.
func (s *CatalogService) UpdateEntity(ctx context.Context, request *v1.UpdateEntityRequest) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationEdit, err)
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: request.ID}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		head, ok := agg.Head()
		if !ok {
			return nil, nil, versioning.ErrNoVersion
		}
		if request.ExpectedVersionID != "" && request.ExpectedVersionID != head.ID {
			return nil, nil, ErrVersionMismatch
		}

		content, named, err := s.prepareContent(ctx, tx, kind, request.Content, langs)
		if err != nil {
			return nil, nil, err
		}
		plan, err := agg.PlanEdit(named)
		return plan, content, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationEdit, err)
	}

	return &v1.EntityResponse{Entity: entity}, nil
}

// PublishEntity publishes the working version in the requested languages.
func (s *CatalogService) PublishEntity(ctx context.Context, request *v1.LanguagesRequest) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationPublish, err)
	}
	requested, err := versioning.NormalizeLanguages(request.Languages)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationPublish, err)
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: request.ID}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		head, ok := agg.Head()
		if !ok {
			return nil, nil, versioning.ErrNoVersion
		}
		available, err := namedLanguages(ctx, tx, kind, head.ID, langs)
		if err != nil {
			return nil, nil, err
		}
		plan, err := agg.PlanPublish(requested, available)
		return plan, nil, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationPublish, err)
	}

	logrus.Infof("published %s %s version %s", kind, request.ID, entity.Version.Version)
	return &v1.EntityResponse{Entity: entity}, nil
}

// WithdrawEntity takes languages, or the whole entity, out of publication.
func (s *CatalogService) WithdrawEntity(ctx context.Context, request *v1.LanguagesRequest) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationWithdraw, err)
	}
	requested, err := versioning.NormalizeLanguages(request.Languages)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationWithdraw, err)
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: request.ID}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		plan, err := agg.PlanWithdraw(requested)
		return plan, nil, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationWithdraw, err)
	}

	return &v1.EntityResponse{Entity: entity}, nil
}

// DeleteEntity marks every live version of the entity deleted.
func (s *CatalogService) DeleteEntity(ctx context.Context, request *v1.EntityRef) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationDelete, err)
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: request.ID}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		plan, err := agg.PlanDelete()
		return plan, nil, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationDelete, err)
	}

	logrus.Infof("deleted %s %s", kind, request.ID)
	return &v1.EntityResponse{Entity: entity}, nil
}

// RestoreEntity brings a deleted entity back as a draft.
func (s *CatalogService) RestoreEntity(ctx context.Context, request *v1.EntityRef) (*v1.EntityResponse, error) {
	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationRestore, err)
	}

	entity, err := s.write(ctx, change{kind: kind, rootID: request.ID}, func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error) {
		plan, err := agg.PlanRestore()
		return plan, nil, err
	})
	if err != nil {
		return nil, s.fail(request.Kind, versioning.OperationRestore, err)
	}

	logrus.Infof("restored %s %s", kind, request.ID)
	return &v1.EntityResponse{Entity: entity}, nil
}

// EraseEntity removes the entity with all its versions for good.
func (s *CatalogService) EraseEntity(ctx context.Context, request *v1.EntityRef) (*v1.Empty, error) {
	const operation = versioning.Operation("erase")

	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	actor := module.Actor(ctx)
	err = s.store.Transaction(ctx, func(tx store.Store) error {
		if _, err := tx.LockRoot(ctx, kind, request.ID); err != nil {
			return err
		}
		if err := s.checkLock(ctx, tx, kind, request.ID, actor); err != nil {
			return err
		}
		return tx.EraseRoot(ctx, kind, request.ID)
	})
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	s.committed(ctx, kind, request.ID, operation, nil, actor)
	return &v1.Empty{}, nil
}

// GetEntity returns one version of an entity. The published view only shows
// the published languages and is served from the cache.
func (s *CatalogService) GetEntity(ctx context.Context, request *v1.GetEntityRequest) (*v1.EntityResponse, error) {
	const operation = versioning.Operation("get")

	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	selector := request.Selector
	if selector == "" {
		selector = SelectorLatest
	}
	language := preferredLanguage(request.Language)

	key := cache.Key{Kind: string(kind), RootID: request.ID, Selector: selector, Language: language}
	if selector == SelectorPublished {
		if entity, ok := s.cachedView(ctx, key); ok {
			return &v1.EntityResponse{Entity: entity}, nil
		}
	}

	langs, err := loadLanguages(ctx, s.store)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}
	agg, err := loadAggregate(ctx, s.store, kind, request.ID, langs)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	var (
		v  *version
		ok bool
	)
	switch selector {
	case SelectorLatest:
		v, ok = agg.Head()
	case SelectorPublished:
		v, ok = agg.Published()
	default:
		v, ok = agg.Find(selector)
	}
	if !ok {
		return nil, s.fail(request.Kind, operation, status.Errorf(codes.NotFound, "%s %s has no %s version", kind, request.ID, selector))
	}

	var only []string
	if selector == SelectorPublished {
		only = v.LanguagesIn(versioning.Published)
	}
	entity, err := s.entity(ctx, s.store, kind, v, langs, language, only)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	if selector == SelectorPublished {
		s.cachePublished(ctx, kind, key, v, langs, entity)
	}
	return &v1.EntityResponse{Entity: entity}, nil
}

// ListEntities pages through the entities of a kind, one version of each,
// most recently modified first.
func (s *CatalogService) ListEntities(ctx context.Context, request *v1.ListEntitiesRequest) (*v1.ListEntitiesResponse, error) {
	const operation = versioning.Operation("list")

	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	filter := store.VersionFilter{
		OrganizationID: request.OrganizationID,
		Limit:          request.PageSize,
	}
	if filter.Limit == 0 {
		filter.Limit = defaultPageSize
	}
	if request.Page > 1 {
		filter.Offset = (request.Page - 1) * filter.Limit
	}
	if request.Status != "" {
		st, err := versioning.ParseStatus(request.Status)
		if err != nil {
			return nil, s.fail(request.Kind, operation, err)
		}
		filter.Statuses = []string{st.String()}
	}

	langs, err := loadLanguages(ctx, s.store)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}
	rows, total, err := s.store.FilterVersions(ctx, kind, filter)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}
	entities, err := s.summaries(ctx, kind, rows, langs, preferredLanguage(request.Language))
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	return &v1.ListEntitiesResponse{Entities: entities, Total: total}, nil
}

// ListVersions returns the history of an entity, latest first.
func (s *CatalogService) ListVersions(ctx context.Context, request *v1.EntityRef) (*v1.ListVersionsResponse, error) {
	const operation = versioning.Operation("versions")

	kind, err := model.ParseKind(request.Kind)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	langs, err := loadLanguages(ctx, s.store)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}
	agg, err := loadAggregate(ctx, s.store, kind, request.ID, langs)
	if err != nil {
		return nil, s.fail(request.Kind, operation, err)
	}

	chain := agg.Chain()
	versions := make([]*v1.Version, 0, len(chain))
	for _, v := range chain {
		versions = append(versions, toVersion(v))
	}
	return &v1.ListVersionsResponse{Versions: versions}, nil
}
