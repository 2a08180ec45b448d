package store

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm/clause"
)

func (g *GormStore) CreateNames(ctx context.Context, kind model.Kind, names []*model.LocalizedText) error {
	if len(names) == 0 {
		return nil
	}
	return mapError(g.db.WithContext(ctx).Table(kind.Tables().Name).Create(names).Error)
}

func (g *GormStore) ListNames(ctx context.Context, kind model.Kind, versionID string) ([]*model.LocalizedText, error) {
	var names []*model.LocalizedText
	err := g.db.WithContext(ctx).Table(kind.Tables().Name).
		Where("parent_id = ?", versionID).
		Order("type_code").
		Find(&names).Error
	return names, mapError(err)
}

func (g *GormStore) CreateDescriptions(ctx context.Context, kind model.Kind, descriptions []*model.LocalizedText) error {
	if len(descriptions) == 0 {
		return nil
	}
	return mapError(g.db.WithContext(ctx).Table(kind.Tables().Description).Create(descriptions).Error)
}

func (g *GormStore) ListDescriptions(ctx context.Context, kind model.Kind, versionID string) ([]*model.LocalizedText, error) {
	var descriptions []*model.LocalizedText
	err := g.db.WithContext(ctx).Table(kind.Tables().Description).
		Where("parent_id = ?", versionID).
		Order("type_code").
		Find(&descriptions).Error
	return descriptions, mapError(err)
}

func (g *GormStore) CreateOrganizationAreas(ctx context.Context, areas []*model.OrganizationArea) error {
	if len(areas) == 0 {
		return nil
	}
	return mapError(g.db.WithContext(ctx).Create(areas).Error)
}

func (g *GormStore) ListOrganizationAreas(ctx context.Context, versionID string) ([]*model.OrganizationArea, error) {
	var areas []*model.OrganizationArea
	err := g.db.WithContext(ctx).
		Where("organization_versioned_id = ?", versionID).
		Order("area_code").
		Find(&areas).Error
	return areas, mapError(err)
}

func (g *GormStore) CreateServiceTerms(ctx context.Context, taxonomy model.TaxonomyKind, links []*model.TermLink) error {
	if len(links) == 0 {
		return nil
	}
	table, ok := taxonomy.ServiceLinkTable()
	if !ok {
		return fmt.Errorf("%w: services cannot be classified with %s", model.ErrUnknownKind, taxonomy)
	}
	return mapError(g.db.WithContext(ctx).Table(table).Create(links).Error)
}

func (g *GormStore) ListServiceTerms(ctx context.Context, taxonomy model.TaxonomyKind, versionID string) ([]*model.TermLink, error) {
	table, ok := taxonomy.ServiceLinkTable()
	if !ok {
		return nil, fmt.Errorf("%w: services cannot be classified with %s", model.ErrUnknownKind, taxonomy)
	}
	var links []*model.TermLink
	err := g.db.WithContext(ctx).Table(table).
		Where("parent_id = ?", versionID).
		Order("term_id").
		Find(&links).Error
	return links, mapError(err)
}

func (g *GormStore) SetServiceFundingType(ctx context.Context, versionID, fundingTypeID string) error {
	res := g.db.WithContext(ctx).Model(&model.ServiceVersioned{}).
		Where("id = ?", versionID).
		Update("funding_type_id", fundingTypeID)
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) GetServiceFundingType(ctx context.Context, versionID string) (string, error) {
	var ids []string
	err := g.db.WithContext(ctx).Model(&model.ServiceVersioned{}).
		Where("id = ?", versionID).
		Pluck("funding_type_id", &ids).Error
	if err != nil {
		return "", mapError(err)
	}
	if len(ids) == 0 {
		return "", ErrNotFound
	}
	return ids[0], nil
}

// CreateChannelKeywords reuses keywords already known in the same language.
func (g *GormStore) CreateChannelKeywords(ctx context.Context, versionID string, keywords []*model.Keyword, actor string) error {
	if len(keywords) == 0 {
		return nil
	}
	db := g.db.WithContext(ctx)

	for _, k := range keywords {
		if k.ID == "" {
			k.ID = uuid.NewString()
		}
		k.CreatedBy, k.ModifiedBy = actor, actor
	}
	err := db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "localization_id"}, {Name: "name"}},
		DoNothing: true,
	}).Create(keywords).Error
	if err != nil {
		return mapError(err)
	}

	links := make([]*model.ServiceChannelKeyword, 0, len(keywords))
	seen := make(map[string]bool, len(keywords))
	for _, k := range keywords {
		var stored model.Keyword
		err := db.Where("localization_id = ? AND name = ?", k.LocalizationID, k.Name).First(&stored).Error
		if err != nil {
			return mapError(err)
		}
		if seen[stored.ID] {
			continue
		}
		seen[stored.ID] = true
		links = append(links, &model.ServiceChannelKeyword{
			ParentID:  versionID,
			KeywordID: stored.ID,
			Auditing:  model.NewAuditing(actor),
		})
	}
	return mapError(db.Create(links).Error)
}

func (g *GormStore) ListChannelKeywords(ctx context.Context, versionID string) ([]*model.Keyword, error) {
	var keywords []*model.Keyword
	err := g.db.WithContext(ctx).
		Joins("JOIN service_channel_keywords sck ON sck.keyword_id = keywords.id").
		Where("sck.parent_id = ?", versionID).
		Order("keywords.name").
		Find(&keywords).Error
	return keywords, mapError(err)
}

func (g *GormStore) CreateAddresses(ctx context.Context, addresses []*model.Address) error {
	if len(addresses) == 0 {
		return nil
	}
	return mapError(g.db.WithContext(ctx).Create(addresses).Error)
}

func (g *GormStore) ListAddresses(ctx context.Context, versionID string) ([]*model.Address, error) {
	var addresses []*model.Address
	err := g.db.WithContext(ctx).
		Preload("Streets").
		Where("parent_id = ?", versionID).
		Order("order_number").
		Find(&addresses).Error
	return addresses, mapError(err)
}

func (g *GormStore) CreateWebPages(ctx context.Context, pages []*model.ServiceChannelWebPage) error {
	if len(pages) == 0 {
		return nil
	}
	return mapError(g.db.WithContext(ctx).Create(pages).Error)
}

func (g *GormStore) ListWebPages(ctx context.Context, versionID string) ([]*model.ServiceChannelWebPage, error) {
	var pages []*model.ServiceChannelWebPage
	err := g.db.WithContext(ctx).Where("parent_id = ?", versionID).Find(&pages).Error
	return pages, mapError(err)
}
