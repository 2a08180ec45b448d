package store

import (
	"context"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

func (g *GormStore) Connect(ctx context.Context, conn *model.ServiceServiceChannel) error {
	err := g.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "service_id"}, {Name: "service_channel_id"}},
			DoUpdates: clause.AssignmentColumns([]string{"order_number", "modified", "modified_by"}),
		}).
		Create(conn).Error
	return mapError(err)
}

func (g *GormStore) Disconnect(ctx context.Context, serviceID, channelID string) error {
	res := g.db.WithContext(ctx).
		Where("service_id = ? AND service_channel_id = ?", serviceID, channelID).
		Delete(&model.ServiceServiceChannel{})
	if res.Error != nil {
		return mapError(res.Error)
	}
	if res.RowsAffected == 0 {
		return ErrNotFound
	}
	return nil
}

func (g *GormStore) ListConnections(ctx context.Context, filter ConnectionFilter) ([]*model.ServiceServiceChannel, error) {
	query := g.db.WithContext(ctx).Model(&model.ServiceServiceChannel{})
	if filter.ServiceID != "" {
		query = query.Where("service_id = ?", filter.ServiceID)
	}
	if filter.ChannelID != "" {
		query = query.Where("service_channel_id = ?", filter.ChannelID)
	}

	if filter.ExcludeDeleted {
		query = query.
			Where("NOT EXISTS (?)", deletedHead(g, model.KindService, "service_service_channels.service_id")).
			Where("NOT EXISTS (?)", deletedHead(g, model.KindServiceChannel, "service_service_channels.service_channel_id"))
	}

	var conns []*model.ServiceServiceChannel
	err := query.Order("order_number").Order("service_channel_id").Find(&conns).Error
	return conns, mapError(err)
}

// deletedHead selects the head version of the root in column when it is deleted.
func deletedHead(g *GormStore, kind model.Kind, column string) *gorm.DB {
	return g.db.Table(kind.Tables().Versioned+" AS h").
		Select("1").
		Where("h.unific_root_id = "+column).
		Where("h.publishing_status_id = ?", "deleted").
		Where("NOT EXISTS (SELECT 1 FROM versionings AS n WHERE n.previous_version_id = h.versioning_id)")
}
