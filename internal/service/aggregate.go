package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

type (
	aggregate = versioning.Aggregate[*model.VersionedRow]
	version   = versioning.Version[*model.VersionedRow]
)

// languages maps data language codes to language row ids and back.
type languages struct {
	ids   map[string]string
	codes map[string]string
}

func loadLanguages(ctx context.Context, st store.Store) (*languages, error) {
	rows, err := st.ListLanguages(ctx)
	if err != nil {
		return nil, err
	}

	langs := &languages{
		ids:   make(map[string]string, len(rows)),
		codes: make(map[string]string, len(rows)),
	}
	for _, l := range rows {
		langs.ids[l.Code] = l.ID
		langs.codes[l.ID] = l.Code
	}
	return langs, nil
}

func (l *languages) id(code string) (string, error) {
	id, ok := l.ids[code]
	if !ok {
		return "", fmt.Errorf("%w: %q", versioning.ErrUnknownLanguage, code)
	}
	return id, nil
}

func (l *languages) code(id string) string {
	if code, ok := l.codes[id]; ok {
		return code
	}
	return id
}

// loadAggregate reads the versions of a root with their chain links and
// language statuses.
func loadAggregate(ctx context.Context, st store.Store, kind model.Kind, rootID string, langs *languages) (*aggregate, error) {
	if _, err := st.GetRoot(ctx, kind, rootID); err != nil {
		return nil, err
	}

	rows, err := st.ListVersions(ctx, kind, rootID)
	if err != nil {
		return nil, err
	}
	links, err := st.ListVersionings(ctx, rootID)
	if err != nil {
		return nil, err
	}
	linkByID := make(map[string]*model.Versioning, len(links))
	for _, l := range links {
		linkByID[l.ID] = l
	}

	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	availabilities, err := st.ListLanguageStatuses(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	statuses := make(map[string]map[string]versioning.Status, len(rows))
	for _, a := range availabilities {
		status, err := versioning.ParseStatus(a.StatusID)
		if err != nil {
			return nil, fmt.Errorf("%w: version %s: %w", ErrCorrupted, a.ParentID, err)
		}
		if statuses[a.ParentID] == nil {
			statuses[a.ParentID] = make(map[string]versioning.Status)
		}
		statuses[a.ParentID][langs.code(a.LanguageID)] = status
	}

	versions := make([]version, 0, len(rows))
	for _, row := range rows {
		link, ok := linkByID[row.VersioningID]
		if !ok {
			return nil, fmt.Errorf("%w: version %s has no versioning %s", ErrCorrupted, row.ID, row.VersioningID)
		}
		status, err := versioning.ParseStatus(row.PublishingStatusID)
		if err != nil {
			return nil, fmt.Errorf("%w: version %s: %w", ErrCorrupted, row.ID, err)
		}

		v := version{
			ID:           row.ID,
			RootID:       row.UnificRootID,
			VersioningID: row.VersioningID,
			Status:       status,
			Languages:    statuses[row.ID],
			Major:        link.VersionMajor,
			Minor:        link.VersionMinor,
			ValidFrom:    row.ValidFrom,
			ValidTo:      row.ValidTo,
			Created:      row.Created,
			Payload:      row,
		}
		if v.Languages == nil {
			v.Languages = make(map[string]versioning.Status)
		}
		if link.PreviousVersionID != nil {
			v.PreviousID = *link.PreviousVersionID
		}
		versions = append(versions, v)
	}

	return versioning.NewAggregate(rootID, versions)
}

// change identifies the aggregate a write operates on.
type change struct {
	kind   model.Kind
	rootID string
	// create makes a new root before planning.
	create bool
	// system writes ignore edit locks.
	system bool
}

// planner computes the plan of a write. Content is the content of the new
// version; nil copies the content of the version the plan starts from.
type planner func(ctx context.Context, tx store.Store, agg *aggregate, langs *languages) (*versioning.Plan, *v1.Content, error)

// write plans and applies one operation in a transaction and returns the
// latest version afterwards. The version history is validated before commit.
func (s *CatalogService) write(ctx context.Context, c change, plan planner) (*v1.Entity, error) {
	actor := module.Actor(ctx)

	var (
		entity *v1.Entity
		p      *versioning.Plan
	)
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		langs, err := loadLanguages(ctx, tx)
		if err != nil {
			return err
		}

		if c.create {
			err := tx.CreateRoot(ctx, c.kind, &model.RootRow{ID: c.rootID, Auditing: model.NewAuditing(actor)})
			if err != nil {
				return err
			}
		} else {
			if _, err := tx.LockRoot(ctx, c.kind, c.rootID); err != nil {
				return err
			}
			if !c.system {
				if err := s.checkLock(ctx, tx, c.kind, c.rootID, actor); err != nil {
					return err
				}
			}
		}

		agg, err := loadAggregate(ctx, tx, c.kind, c.rootID, langs)
		if err != nil {
			return err
		}

		var content *v1.Content
		p, content, err = plan(ctx, tx, agg, langs)
		if err != nil {
			return err
		}

		if !p.Empty() {
			if err := s.apply(ctx, tx, c.kind, agg, p, content, langs, actor); err != nil {
				return err
			}
			agg, err = loadAggregate(ctx, tx, c.kind, c.rootID, langs)
			if err != nil {
				return err
			}
			if err := agg.Validate(); err != nil {
				return err
			}
		}

		head, ok := agg.Head()
		if !ok {
			return versioning.ErrNoVersion
		}
		entity, err = s.entity(ctx, tx, c.kind, head, langs, "", nil)
		return err
	})
	if err != nil {
		return nil, err
	}

	if !p.Empty() {
		s.committed(ctx, c.kind, c.rootID, p.Operation, entity, actor)
	}
	return entity, nil
}

// apply writes the row changes of a plan.
func (s *CatalogService) apply(ctx context.Context, tx store.Store, kind model.Kind, agg *aggregate, plan *versioning.Plan, content *v1.Content, langs *languages, actor string) error {
	operation := string(plan.Operation)

	for _, c := range plan.Statuses {
		if err := tx.UpdateVersionStatus(ctx, kind, c.VersionID, c.To.String(), operation, actor); err != nil {
			return err
		}
	}

	for _, c := range plan.Languages {
		if err := setLanguage(ctx, tx, kind, c.VersionID, c.Language, c.To, langs, actor); err != nil {
			return err
		}
	}

	if r := plan.Renumber; r != nil {
		v, ok := agg.Find(r.VersionID)
		if !ok {
			return fmt.Errorf("%w: version %s", versioning.ErrNoVersion, r.VersionID)
		}
		if err := tx.UpdateVersionNumber(ctx, v.VersioningID, r.Major, r.Minor, actor); err != nil {
			return err
		}
	}

	if nv := plan.NewVersion; nv != nil {
		if content == nil {
			src, ok := agg.Find(nv.CopyOf)
			if !ok {
				return fmt.Errorf("%w: nothing to copy the new version from", versioning.ErrNoVersion)
			}
			copied, err := loadContent(ctx, tx, kind, src.Payload, langs)
			if err != nil {
				return err
			}
			content = copied
		}
		if _, err := s.createVersion(ctx, tx, kind, agg.RootID, plan.Operation, nv, content, langs, actor); err != nil {
			return err
		}
	}

	return nil
}

func (s *CatalogService) createVersion(ctx context.Context, tx store.Store, kind model.Kind, rootID string, operation versioning.Operation, nv *versioning.NewVersion, content *v1.Content, langs *languages, actor string) (string, error) {
	link := &model.Versioning{
		ID:           uuid.NewString(),
		UnificRootID: rootID,
		VersionMajor: nv.Major,
		VersionMinor: nv.Minor,
		Auditing:     model.NewAuditing(actor),
	}
	if nv.PreviousID != "" {
		link.PreviousVersionID = &nv.PreviousID
	}
	if err := tx.CreateVersioning(ctx, link); err != nil {
		return "", err
	}

	row := &model.VersionedRow{
		ID:                 uuid.NewString(),
		UnificRootID:       rootID,
		VersioningID:       link.ID,
		PublishingStatusID: nv.Status.String(),
		TypeCode:           content.Type,
		ValidFrom:          content.ValidFrom,
		ValidTo:            content.ValidTo,
		LastOperationType:  string(operation),
		Auditing:           model.NewAuditing(actor),
	}
	if content.OrganizationID != "" {
		row.OrganizationID = &content.OrganizationID
	}
	if err := tx.CreateVersion(ctx, kind, row); err != nil {
		return "", err
	}

	if err := saveContent(ctx, tx, kind, row.ID, content, langs, actor); err != nil {
		return "", err
	}

	codes := make([]string, 0, len(nv.Languages))
	for code := range nv.Languages {
		codes = append(codes, code)
	}
	versioning.SortLanguages(codes)
	for _, code := range codes {
		if err := setLanguage(ctx, tx, kind, row.ID, code, nv.Languages[code], langs, actor); err != nil {
			return "", err
		}
	}

	return row.ID, nil
}

func setLanguage(ctx context.Context, tx store.Store, kind model.Kind, versionID, code string, status versioning.Status, langs *languages, actor string) error {
	id, err := langs.id(code)
	if err != nil {
		return err
	}
	return tx.SetLanguageStatus(ctx, kind, &model.LanguageAvailability{
		ParentID:   versionID,
		LanguageID: id,
		StatusID:   status.String(),
		Auditing:   model.NewAuditing(actor),
	})
}

// checkLock fails when someone other than actor holds a live lock on the root.
func (s *CatalogService) checkLock(ctx context.Context, tx store.Store, kind model.Kind, rootID, actor string) error {
	lock, err := tx.GetLock(ctx, rootID, kind.Tables().Root)
	if errors.Is(err, store.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}
	if lock.LockedBy == actor || lock.Expired(s.clock(), s.opts.LockTTL) {
		return nil
	}
	return fmt.Errorf("%w: %s %s is locked by %s", ErrLocked, kind, rootID, lock.LockedBy)
}

// committed runs the side effects of a committed change. Failures are logged
// only: the change itself is already stored.
func (s *CatalogService) committed(ctx context.Context, kind model.Kind, rootID string, operation versioning.Operation, entity *v1.Entity, actor string) {
	if err := s.cache.Invalidate(ctx, string(kind), rootID); err != nil {
		logrus.Warnf("failed to invalidate cached views of %s %s: %v", kind, rootID, err)
	}

	event := &queue.EntityChanged{
		Kind:      string(kind),
		RootID:    rootID,
		Operation: string(operation),
		Actor:     actor,
		Time:      s.clock(),
	}
	if entity != nil && entity.Version != nil {
		event.VersionID = entity.Version.ID
		event.Status = entity.Version.Status
		for code := range entity.Version.Languages {
			event.Languages = append(event.Languages, code)
		}
		versioning.SortLanguages(event.Languages)
	}
	if err := s.queue.Publish(ctx, event); err != nil {
		logrus.Warnf("failed to publish %s of %s %s: %v", operation, kind, rootID, err)
	}

	s.metrics.IncOperation(string(kind), string(operation))
}
