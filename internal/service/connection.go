package service

import (
	"context"
	"fmt"

	"github.com/sirupsen/logrus"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/module"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/store"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/versioning"
)

const (
	operationConnect    = versioning.Operation("connect")
	operationDisconnect = versioning.Operation("disconnect")
)

// Connect links a service with a service channel, or reorders an existing
// link. Both entities must exist and must not be deleted.
func (s *CatalogService) Connect(ctx context.Context, request *v1.ConnectRequest) (*v1.ConnectionResponse, error) {
	kind := string(model.KindService)
	actor := module.Actor(ctx)

	var conn *model.ServiceServiceChannel
	err := s.store.Transaction(ctx, func(tx store.Store) error {
		langs, err := loadLanguages(ctx, tx)
		if err != nil {
			return err
		}
		for _, ref := range []struct {
			kind model.Kind
			id   string
		}{
			{model.KindService, request.ServiceID},
			{model.KindServiceChannel, request.ChannelID},
		} {
			agg, err := loadAggregate(ctx, tx, ref.kind, ref.id, langs)
			if err != nil {
				return err
			}
			if agg.Deleted() {
				return fmt.Errorf("%w: %s %s", versioning.ErrDeleted, ref.kind, ref.id)
			}
		}
		if err := s.checkLock(ctx, tx, model.KindService, request.ServiceID, actor); err != nil {
			return err
		}

		conn = &model.ServiceServiceChannel{
			ServiceID:        request.ServiceID,
			ServiceChannelID: request.ChannelID,
			OrderNumber:      request.OrderNumber,
			Auditing:         model.NewAuditing(actor),
		}
		if err := tx.Connect(ctx, conn); err != nil {
			return err
		}

		stored, err := tx.ListConnections(ctx, store.ConnectionFilter{ServiceID: request.ServiceID, ChannelID: request.ChannelID})
		if err != nil {
			return err
		}
		if len(stored) == 1 {
			conn = stored[0]
		}
		return nil
	})
	if err != nil {
		return nil, s.fail(kind, operationConnect, err)
	}

	s.committed(ctx, model.KindService, request.ServiceID, operationConnect, nil, actor)
	logrus.Infof("connected service %s to channel %s", request.ServiceID, request.ChannelID)
	return &v1.ConnectionResponse{Connection: toConnection(conn)}, nil
}

// Disconnect removes the link between a service and a service channel.
func (s *CatalogService) Disconnect(ctx context.Context, request *v1.DisconnectRequest) (*v1.Empty, error) {
	kind := string(model.KindService)
	actor := module.Actor(ctx)

	err := s.store.Transaction(ctx, func(tx store.Store) error {
		if err := s.checkLock(ctx, tx, model.KindService, request.ServiceID, actor); err != nil {
			return err
		}
		return tx.Disconnect(ctx, request.ServiceID, request.ChannelID)
	})
	if err != nil {
		return nil, s.fail(kind, operationDisconnect, err)
	}

	s.committed(ctx, model.KindService, request.ServiceID, operationDisconnect, nil, actor)
	return &v1.Empty{}, nil
}

// ListConnections lists connections of a service, of a channel, or all of
// them. Connections of deleted entities are left out until they are restored.
func (s *CatalogService) ListConnections(ctx context.Context, request *v1.ListConnectionsRequest) (*v1.ListConnectionsResponse, error) {
	conns, err := s.store.ListConnections(ctx, store.ConnectionFilter{
		ServiceID:      request.ServiceID,
		ChannelID:      request.ChannelID,
		ExcludeDeleted: true,
	})
	if err != nil {
		return nil, s.fail(string(model.KindService), "connections", err)
	}

	out := make([]*v1.Connection, 0, len(conns))
	for _, c := range conns {
		out = append(out, toConnection(c))
	}
	return &v1.ListConnectionsResponse{Connections: out}, nil
}

func toConnection(c *model.ServiceServiceChannel) *v1.Connection {
	return &v1.Connection{
		ServiceID:   c.ServiceID,
		ChannelID:   c.ServiceChannelID,
		OrderNumber: c.OrderNumber,
		Created:     c.Created,
		CreatedBy:   c.CreatedBy,
	}
}
