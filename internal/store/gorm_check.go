package store

import (
	"context"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
)

func (g *GormStore) ListOrphanedVersions(ctx context.Context, kind model.Kind) ([]string, error) {
	tables := kind.Tables()
	var ids []string
	err := g.db.WithContext(ctx).
		Table(tables.Versioned+" v").
		Joins("LEFT JOIN "+tables.Root+" r ON r.id = v.unific_root_id").
		Where("r.id IS NULL").
		Order("v.id").
		Pluck("v.id", &ids).Error
	return ids, mapError(err)
}

func (g *GormStore) ListVersioningLinks(ctx context.Context) (map[string]string, error) {
	var rows []struct {
		ID                string
		PreviousVersionID string
	}
	err := g.db.WithContext(ctx).Model(&model.Versioning{}).
		Select("id", "previous_version_id").
		Where("previous_version_id IS NOT NULL").
		Scan(&rows).Error
	if err != nil {
		return nil, mapError(err)
	}

	links := make(map[string]string, len(rows))
	for _, r := range rows {
		links[r.ID] = r.PreviousVersionID
	}
	return links, nil
}

func (g *GormStore) ListUnknownLanguageStatuses(ctx context.Context, kind model.Kind) ([]*model.LanguageAvailability, error) {
	var rows []*model.LanguageAvailability
	err := g.db.WithContext(ctx).
		Table(kind.Tables().Availability + " a").
		Select("a.*").
		Joins("LEFT JOIN languages l ON l.id = a.language_id").
		Where("l.id IS NULL").
		Find(&rows).Error
	return rows, mapError(err)
}

func (g *GormStore) ListMultiplyPublished(ctx context.Context, kind model.Kind) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).
		Table(kind.Tables().Versioned).
		Where("publishing_status_id = ?", "published").
		Group("unific_root_id").
		Having("COUNT(*) > 1").
		Pluck("unific_root_id", &ids).Error
	return ids, mapError(err)
}
