package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCatalogService_Connections(t *testing.T) {
	s, _, events := newService(t)
	ctx := context.TODO()

	service := create(t, s, "service", &v1.Content{Names: names("fi", "Palvelu")})
	web := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Verkkosivu"), Type: "web_page"})
	phone := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Puhelin"), Type: "phone"})

	res, err := s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: web.ID, OrderNumber: 2})
	require.NoError(t, err)
	assert.Equal(t, service.ID, res.Connection.ServiceID)
	assert.Equal(t, web.ID, res.Connection.ChannelID)
	assert.Equal(t, 2, res.Connection.OrderNumber)

	_, err = s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: phone.ID, OrderNumber: 1})
	require.NoError(t, err)

	list, err := s.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: service.ID})
	require.NoError(t, err)
	require.Len(t, list.Connections, 2)
	assert.Equal(t, phone.ID, list.Connections[0].ChannelID)
	assert.Equal(t, web.ID, list.Connections[1].ChannelID)

	// connecting again reorders
	_, err = s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: web.ID, OrderNumber: 0})
	require.NoError(t, err)
	list, err = s.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: service.ID})
	require.NoError(t, err)
	require.Len(t, list.Connections, 2)
	assert.Equal(t, web.ID, list.Connections[0].ChannelID)

	byChannel, err := s.ListConnections(ctx, &v1.ListConnectionsRequest{ChannelID: phone.ID})
	require.NoError(t, err)
	require.Len(t, byChannel.Connections, 1)
	assert.Equal(t, service.ID, byChannel.Connections[0].ServiceID)

	_, err = s.Disconnect(ctx, &v1.DisconnectRequest{ServiceID: service.ID, ChannelID: phone.ID})
	require.NoError(t, err)
	_, err = s.Disconnect(ctx, &v1.DisconnectRequest{ServiceID: service.ID, ChannelID: phone.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))

	assert.Equal(t, []string{"create", "connect", "connect", "connect", "disconnect"}, operations(events, service.ID))
}

func TestCatalogService_Connect_Rejected(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.TODO()

	service := create(t, s, "service", &v1.Content{Names: names("fi", "Palvelu")})
	channel := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Kanava")})

	_, err := s.Connect(ctx, &v1.ConnectRequest{ServiceID: uuid.NewString(), ChannelID: channel.ID})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: uuid.NewString()})
	assert.Equal(t, codes.NotFound, status.Code(err))
	_, err = s.Connect(ctx, &v1.ConnectRequest{ServiceID: channel.ID, ChannelID: service.ID})
	assert.Equal(t, codes.NotFound, status.Code(err), "kinds are not interchangeable")

	_, err = s.DeleteEntity(ctx, &v1.EntityRef{Kind: "service_channel", ID: channel.ID})
	require.NoError(t, err)
	_, err = s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: channel.ID})
	assert.Equal(t, codes.FailedPrecondition, status.Code(err))
}

func TestCatalogService_EraseRemovesConnections(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.TODO()

	service := create(t, s, "service", &v1.Content{Names: names("fi", "Palvelu")})
	channel := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Kanava")})
	_, err := s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: channel.ID})
	require.NoError(t, err)

	_, err = s.EraseEntity(ctx, &v1.EntityRef{Kind: "service_channel", ID: channel.ID})
	require.NoError(t, err)

	list, err := s.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: service.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Connections)
}

func TestCatalogService_ListConnections_DeletedEntities(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.TODO()

	service := create(t, s, "service", &v1.Content{Names: names("fi", "Palvelu")})
	channel := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Kanava")})
	other := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Toinen kanava")})
	for _, id := range []string{channel.ID, other.ID} {
		_, err := s.Connect(ctx, &v1.ConnectRequest{ServiceID: service.ID, ChannelID: id})
		require.NoError(t, err)
	}

	_, err := s.DeleteEntity(ctx, &v1.EntityRef{Kind: "service_channel", ID: channel.ID})
	require.NoError(t, err)
	list, err := s.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: service.ID})
	require.NoError(t, err)
	require.Len(t, list.Connections, 1)
	assert.Equal(t, other.ID, list.Connections[0].ChannelID)

	_, err = s.RestoreEntity(ctx, &v1.EntityRef{Kind: "service_channel", ID: channel.ID})
	require.NoError(t, err)
	list, err = s.ListConnections(ctx, &v1.ListConnectionsRequest{ServiceID: service.ID})
	require.NoError(t, err)
	assert.Len(t, list.Connections, 2)

	_, err = s.DeleteEntity(ctx, &v1.EntityRef{Kind: "service", ID: service.ID})
	require.NoError(t, err)
	list, err = s.ListConnections(ctx, &v1.ListConnectionsRequest{ChannelID: other.ID})
	require.NoError(t, err)
	assert.Empty(t, list.Connections)
}
