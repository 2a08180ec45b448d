package store

import (
	"context"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func NewGormStore(db *gorm.DB) *GormStore {
	return &GormStore{
		db: db,
	}
}

var _ Store = (*GormStore)(nil)

type GormStore struct {
	db *gorm.DB
}

func (g *GormStore) Migrate() error {
	return model.Migrate(g.db)
}

func (g *GormStore) Transaction(ctx context.Context, f func(tx Store) error) error {
	return g.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		return f(&GormStore{db: tx})
	})
}

func (g *GormStore) ListLanguages(ctx context.Context) ([]*model.Language, error) {
	var languages []*model.Language
	err := g.db.WithContext(ctx).Order("order_number").Find(&languages).Error
	return languages, mapError(err)
}

func (g *GormStore) ListServiceFundingTypes(ctx context.Context) ([]*model.ServiceFundingType, error) {
	var types []*model.ServiceFundingType
	err := g.db.WithContext(ctx).Order("order_number").Find(&types).Error
	return types, mapError(err)
}

func (g *GormStore) CreateRoot(ctx context.Context, kind model.Kind, root *model.RootRow) error {
	return mapError(g.db.WithContext(ctx).Table(kind.Tables().Root).Create(root).Error)
}

func (g *GormStore) GetRoot(ctx context.Context, kind model.Kind, id string) (*model.RootRow, error) {
	var root model.RootRow
	err := g.db.WithContext(ctx).Table(kind.Tables().Root).Where("id = ?", id).First(&root).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &root, nil
}

func (g *GormStore) LockRoot(ctx context.Context, kind model.Kind, id string) (*model.RootRow, error) {
	var root model.RootRow
	err := g.db.WithContext(ctx).Table(kind.Tables().Root).
		Clauses(clause.Locking{Strength: "UPDATE"}).
		Where("id = ?", id).
		First(&root).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &root, nil
}

// EraseRoot relies on the cascading foreign keys for versioned rows and their
// children. Chain links and locks are not referenced by the root and are
// removed explicitly.
func (g *GormStore) EraseRoot(ctx context.Context, kind model.Kind, id string) error {
	db := g.db.WithContext(ctx)
	res := db.Table(kind.Tables().Root).Where("id = ?", id).Delete(&model.RootRow{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}

	if err := db.Where("unific_root_id = ?", id).Delete(&model.Versioning{}).Error; err != nil {
		return mapError(err)
	}
	if err := db.Where("entity_id = ?", id).Delete(&model.Locking{}).Error; err != nil {
		return mapError(err)
	}

	logrus.Infof("erased %s %s", kind, id)
	return nil
}

func (g *GormStore) CreateVersioning(ctx context.Context, v *model.Versioning) error {
	return mapError(g.db.WithContext(ctx).Create(v).Error)
}

func (g *GormStore) UpdateVersionNumber(ctx context.Context, id string, major, minor int, actor string) error {
	res := g.db.WithContext(ctx).Model(&model.Versioning{}).Where("id = ?", id).Updates(map[string]any{
		"version_major": major,
		"version_minor": minor,
		"modified":      time.Now().UTC(),
		"modified_by":   actor,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListVersionings(ctx context.Context, rootID string) ([]*model.Versioning, error) {
	var versionings []*model.Versioning
	err := g.db.WithContext(ctx).Where("unific_root_id = ?", rootID).Find(&versionings).Error
	return versionings, mapError(err)
}

func (g *GormStore) CreateVersion(ctx context.Context, kind model.Kind, row *model.VersionedRow) error {
	return mapError(g.db.WithContext(ctx).Table(kind.Tables().Versioned).Create(row).Error)
}

func (g *GormStore) GetVersion(ctx context.Context, kind model.Kind, id string) (*model.VersionedRow, error) {
	var row model.VersionedRow
	err := g.db.WithContext(ctx).Table(kind.Tables().Versioned).Where("id = ?", id).First(&row).Error
	if err != nil {
		return nil, mapError(err)
	}
	return &row, nil
}

func (g *GormStore) ListVersions(ctx context.Context, kind model.Kind, rootID string) ([]*model.VersionedRow, error) {
	var rows []*model.VersionedRow
	err := g.db.WithContext(ctx).Table(kind.Tables().Versioned).
		Where("unific_root_id = ?", rootID).
		Order("created").
		Find(&rows).Error
	return rows, mapError(err)
}

// FilterVersions pages through one versioned row per root. Without a status
// the row is the head of the root; with statuses it is the newest row of the
// root in one of them.
func (g *GormStore) FilterVersions(ctx context.Context, kind model.Kind, filter VersionFilter) ([]*model.VersionedRow, int64, error) {
	table := kind.Tables().Versioned
	query := g.db.WithContext(ctx).Table(table + " AS v")
	if len(filter.Statuses) > 0 {
		query = query.Where("v.publishing_status_id IN ?", filter.Statuses).
			Where("NOT EXISTS (SELECT 1 FROM "+table+" AS w WHERE w.unific_root_id = v.unific_root_id"+
				" AND w.publishing_status_id IN ?"+
				" AND (w.created > v.created OR (w.created = v.created AND w.id > v.id)))", filter.Statuses)
	} else {
		query = query.Where("NOT EXISTS (SELECT 1 FROM versionings AS n WHERE n.previous_version_id = v.versioning_id)")
	}
	if filter.OrganizationID != "" {
		query = query.Where("v.organization_id = ?", filter.OrganizationID)
	}

	var total int64
	if err := query.Session(&gorm.Session{}).Count(&total).Error; err != nil {
		return nil, 0, mapError(err)
	}

	query = query.Select("v.*").Order("v.modified DESC").Order("v.id")
	if filter.Offset > 0 {
		query = query.Offset(filter.Offset)
	}
	if filter.Limit > 0 {
		query = query.Limit(filter.Limit)
	}

	var rows []*model.VersionedRow
	if err := query.Find(&rows).Error; err != nil {
		return nil, 0, mapError(err)
	}
	return rows, total, nil
}

func (g *GormStore) UpdateVersionStatus(ctx context.Context, kind model.Kind, id, status, operation, actor string) error {
	res := g.db.WithContext(ctx).Table(kind.Tables().Versioned).Where("id = ?", id).Updates(map[string]any{
		"publishing_status_id": status,
		"last_operation_type":  operation,
		"modified":             time.Now().UTC(),
		"modified_by":          actor,
	})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) SetLanguageStatus(ctx context.Context, kind model.Kind, availability *model.LanguageAvailability) error {
	err := g.db.WithContext(ctx).Table(kind.Tables().Availability).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "parent_id"}, {Name: "language_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"status_id", "reviewed", "reviewed_by", "modified", "modified_by"}),
		}).
		Create(availability).Error
	return mapError(err)
}

func (g *GormStore) ListLanguageStatuses(ctx context.Context, kind model.Kind, versionIDs []string) ([]*model.LanguageAvailability, error) {
	var rows []*model.LanguageAvailability
	if len(versionIDs) == 0 {
		return rows, nil
	}
	err := g.db.WithContext(ctx).Table(kind.Tables().Availability).
		Where("parent_id IN ?", versionIDs).
		Find(&rows).Error
	return rows, mapError(err)
}

func (g *GormStore) ListScheduledRoots(ctx context.Context, kind model.Kind, now time.Time) ([]string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Table(kind.Tables().Versioned).
		Where("(publishing_status_id IN ? AND valid_from IS NOT NULL AND valid_from <= ?) OR (publishing_status_id = ? AND valid_to IS NOT NULL AND valid_to <= ?)",
			[]string{"draft", "modified"}, now, "published", now).
		Distinct().
		Pluck("unific_root_id", &ids).Error
	return ids, mapError(err)
}
