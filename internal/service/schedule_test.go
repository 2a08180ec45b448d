package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCatalogService_ApplySchedules(t *testing.T) {
	s, _, events := newService(t)
	ctx := context.TODO()

	now := time.Now().UTC().Truncate(time.Second)
	from, to := now.Add(-2*time.Hour), now.Add(time.Hour)
	tomorrow := now.Add(24 * time.Hour)

	e := create(t, s, "service", &v1.Content{Names: names("fi", "Kesäleiri", "sv", "Sommarläger"), ValidFrom: &from, ValidTo: &to})
	create(t, s, "service", &v1.Content{Names: names("fi", "Aina voimassa")})
	create(t, s, "organization", &v1.Content{Names: names("fi", "Tuleva"), ValidFrom: &tomorrow})

	res, err := s.ApplySchedules(ctx, &v1.ApplySchedulesRequest{Now: &now})
	require.NoError(t, err)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, &v1.ScheduledChange{Kind: "service", ID: e.ID, VersionID: e.Version.ID, Operation: "scheduled_publish"}, res.Changes[0])

	got, err := s.GetEntity(ctx, &v1.GetEntityRequest{Kind: "service", ID: e.ID, Selector: SelectorPublished})
	require.NoError(t, err)
	assert.Equal(t, "1.0", got.Entity.Version.Version)
	assert.Equal(t, map[string]string{"fi": "published", "sv": "published"}, got.Entity.Version.Languages)

	res, err = s.ApplySchedules(ctx, &v1.ApplySchedulesRequest{Now: &now})
	require.NoError(t, err)
	assert.Empty(t, res.Changes, "nothing left to do at the same time")

	later := now.Add(2 * time.Hour)
	res, err = s.ApplySchedules(ctx, &v1.ApplySchedulesRequest{Now: &later})
	require.NoError(t, err)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, "expire", res.Changes[0].Operation)
	assert.Equal(t, e.Version.ID, res.Changes[0].VersionID)

	latest, err := s.GetEntity(ctx, &v1.GetEntityRequest{Kind: "service", ID: e.ID})
	require.NoError(t, err)
	assert.Equal(t, "archived", latest.Entity.Version.Status)
	_, err = s.GetEntity(ctx, &v1.GetEntityRequest{Kind: "service", ID: e.ID, Selector: SelectorPublished})
	assert.Equal(t, codes.NotFound, status.Code(err))

	assert.Equal(t, []string{"create", "scheduled_publish", "expire"}, operations(events, e.ID))
}

func TestCatalogService_ApplySchedules_IgnoresLocks(t *testing.T) {
	s, _, _ := newService(t)

	now := time.Now().UTC().Truncate(time.Second)
	from := now.Add(-time.Hour)
	e := create(t, s, "service_channel", &v1.Content{Names: names("fi", "Kanava"), ValidFrom: &from})

	_, err := s.LockEntity(withActor("alice"), &v1.EntityRef{Kind: "service_channel", ID: e.ID})
	require.NoError(t, err)

	res, err := s.ApplySchedules(context.TODO(), &v1.ApplySchedulesRequest{Now: &now})
	require.NoError(t, err)
	require.Len(t, res.Changes, 1)
	assert.Equal(t, e.ID, res.Changes[0].ID)
}
