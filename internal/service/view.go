package service

import (
	"context"
	"encoding/json"
	"errors"
	"maps"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

// entity renders a version with its content. When only is not nil the
// content is limited to those languages.
func (s *CatalogService) entity(ctx context.Context, st store.Store, kind model.Kind, v *version, langs *languages, language string, only []string) (*v1.Entity, error) {
	content, err := loadContent(ctx, st, kind, v.Payload, langs)
	if err != nil {
		return nil, err
	}
	if only != nil {
		content = filterContent(content, only)
	}

	entity := &v1.Entity{
		Kind:    string(kind),
		ID:      v.RootID,
		Version: toVersion(v),
		Content: content,
	}
	entity.Name, entity.Language = displayName(content.Names, language)
	return entity, nil
}

// displayName picks the name shown for a preferred language, falling back
// through the catalog languages.
func displayName(names []v1.LocalizedValue, language string) (string, string) {
	for _, lang := range versioning.Fallbacks(language) {
		for _, n := range names {
			if n.Language == lang && n.Type == model.NameTypeName {
				return n.Value, lang
			}
		}
	}
	return "", ""
}

func toVersion(v *version) *v1.Version {
	out := &v1.Version{
		ID:                   v.ID,
		RootID:               v.RootID,
		VersioningID:         v.VersioningID,
		PreviousVersioningID: v.PreviousID,
		Status:               v.Status.String(),
		Version:              v.Number(),
		Languages:            make(map[string]string, len(v.Languages)),
		ValidFrom:            v.ValidFrom,
		ValidTo:              v.ValidTo,
		Created:              v.Created,
	}
	for code, status := range v.Languages {
		out.Languages[code] = status.String()
	}
	if row := v.Payload; row != nil {
		out.LastOperation = row.LastOperationType
		out.CreatedBy = row.CreatedBy
		out.Modified = row.Modified
		out.ModifiedBy = row.ModifiedBy
	}
	return out
}

// preferredLanguage accepts a data language code or an Accept-Language value.
func preferredLanguage(s string) string {
	if s == "" {
		return ""
	}
	if code, err := versioning.NormalizeLanguage(s); err == nil {
		return code
	}
	return versioning.MatchLanguage(s)
}

// summaries renders list rows without content. Version numbers are left out
// since they live on the chain links.
func (s *CatalogService) summaries(ctx context.Context, kind model.Kind, rows []*model.VersionedRow, langs *languages, language string) ([]*v1.Entity, error) {
	ids := make([]string, 0, len(rows))
	for _, row := range rows {
		ids = append(ids, row.ID)
	}
	availabilities, err := s.store.ListLanguageStatuses(ctx, kind, ids)
	if err != nil {
		return nil, err
	}
	byVersion := make(map[string]map[string]string, len(rows))
	for _, a := range availabilities {
		if byVersion[a.ParentID] == nil {
			byVersion[a.ParentID] = make(map[string]string)
		}
		byVersion[a.ParentID][langs.code(a.LanguageID)] = a.StatusID
	}

	entities := make([]*v1.Entity, 0, len(rows))
	for _, row := range rows {
		names, err := s.store.ListNames(ctx, kind, row.ID)
		if err != nil {
			return nil, err
		}
		entity := &v1.Entity{
			Kind: string(kind),
			ID:   row.UnificRootID,
			Version: &v1.Version{
				ID:            row.ID,
				RootID:        row.UnificRootID,
				VersioningID:  row.VersioningID,
				Status:        row.PublishingStatusID,
				Languages:     byVersion[row.ID],
				ValidFrom:     row.ValidFrom,
				ValidTo:       row.ValidTo,
				LastOperation: row.LastOperationType,
				Created:       row.Created,
				CreatedBy:     row.CreatedBy,
				Modified:      row.Modified,
				ModifiedBy:    row.ModifiedBy,
			},
		}
		entity.Name, entity.Language = displayName(localizedValuesOf(names, langs), language)
		entities = append(entities, entity)
	}
	return entities, nil
}

func (s *CatalogService) cachedView(ctx context.Context, key cache.Key) (*v1.Entity, bool) {
	data, err := s.cache.GetView(ctx, key)
	if err != nil {
		if !errors.Is(err, cache.ErrMiss) {
			logrus.Warnf("failed to read cached view %s: %v", key, err)
		}
		s.metrics.CacheMiss()
		return nil, false
	}

	var entity v1.Entity
	if err := json.Unmarshal(data, &entity); err != nil {
		logrus.Warnf("dropping unreadable cached view %s: %v", key, err)
		s.metrics.CacheMiss()
		return nil, false
	}
	s.metrics.CacheHit()
	return &entity, true
}

func (s *CatalogService) cacheView(ctx context.Context, key cache.Key, entity *v1.Entity) {
	data, err := json.Marshal(entity)
	if err != nil {
		logrus.Warnf("failed to encode view %s: %v", key, err)
		return
	}
	if err := s.cache.SetView(ctx, key, data, s.opts.CacheTTL); err != nil {
		logrus.Warnf("failed to cache view %s: %v", key, err)
	}
}

// cachePublished caches the view rendered from the published version read.
// A write committed after that read may have invalidated the aggregate before
// the view was stored, so the published version is read again and the view
// dropped when it changed.
func (s *CatalogService) cachePublished(ctx context.Context, kind model.Kind, key cache.Key, read *version, langs *languages, entity *v1.Entity) {
	s.cacheView(ctx, key, entity)

	agg, err := loadAggregate(ctx, s.store, kind, key.RootID, langs)
	if err == nil {
		if current, ok := agg.Published(); ok && current.ID == read.ID && maps.Equal(current.Languages, read.Languages) {
			return
		}
	}

	logrus.Debugf("dropping cached view %s: published version changed while rendering", key)
	if err := s.cache.Invalidate(ctx, key.Kind, key.RootID); err != nil {
		logrus.Warnf("failed to invalidate cached views of %s %s: %v", key.Kind, key.RootID, err)
	}
}
