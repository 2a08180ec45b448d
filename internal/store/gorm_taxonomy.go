package store

import (
	"context"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (g *GormStore) UpsertTaxonomyNodes(ctx context.Context, kind model.TaxonomyKind, nodes []*model.TaxonomyNode) error {
	if len(nodes) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx).Table(kind.Table()).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "id"}},
		DoUpdates: clause.AssignmentColumns([]string{"parent_id", "code", "uri", "order_number", "modified", "modified_by"}),
	}).Session(&gorm.Session{})
	// one statement per node keeps parents ahead of their children
	for _, n := range nodes {
		if err := db.Create(n).Error; err != nil {
			return mapError(err)
		}
	}
	return nil
}

func (g *GormStore) UpsertTaxonomyNames(ctx context.Context, names []*model.TaxonomyName) error {
	if len(names) == 0 {
		return nil
	}
	err := g.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "kind"}, {Name: "term_id"}, {Name: "localization_id"}},
		DoUpdates: clause.AssignmentColumns([]string{"name", "modified", "modified_by"}),
	}).Create(names).Error
	return mapError(err)
}

func (g *GormStore) ListTaxonomyNodes(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyNode, error) {
	var nodes []*model.TaxonomyNode
	err := g.db.WithContext(ctx).Table(kind.Table()).Order("order_number").Order("code").Find(&nodes).Error
	return nodes, mapError(err)
}

func (g *GormStore) ListTaxonomyNames(ctx context.Context, kind model.TaxonomyKind) ([]*model.TaxonomyName, error) {
	var names []*model.TaxonomyName
	err := g.db.WithContext(ctx).Where("kind = ?", string(kind)).Find(&names).Error
	return names, mapError(err)
}
