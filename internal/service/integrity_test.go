package service

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

func TestCatalogService_CheckIntegrity(t *testing.T) {
	s, _, _ := newService(t)
	ctx := context.TODO()

	clean, err := s.CheckIntegrity(ctx, &v1.CheckIntegrityRequest{})
	require.NoError(t, err)
	assert.Empty(t, clean.Problems)

	// two published versions of one organization
	twice := create(t, s, "organization", &v1.Content{Names: names("fi", "Kahdesti")})
	publish(t, s, "organization", twice.ID)
	modified := update(t, s, "organization", twice.ID, &v1.Content{Names: names("fi", "Kahdesti julkaistu")})
	require.NoError(t, tester.TestDB().Table("organization_versioned").
		Where("id = ?", modified.Version.ID).
		Update("publishing_status_id", "published").Error)

	// a version chain pointing back to itself
	looped := create(t, s, "service", &v1.Content{Names: names("fi", "Silmukka")})
	second := update(t, s, "service", looped.ID, &v1.Content{Names: names("fi", "Silmukka 2")})
	require.NoError(t, tester.TestDB().Model(&model.Versioning{}).
		Where("id = ?", looped.Version.VersioningID).
		Update("previous_version_id", second.Version.VersioningID).Error)

	res, err := s.CheckIntegrity(ctx, &v1.CheckIntegrityRequest{})
	require.NoError(t, err)

	checks := make(map[string]*v1.Problem)
	for _, p := range res.Problems {
		checks[p.Check] = p
	}
	require.Contains(t, checks, CheckMultiplePublished)
	assert.Equal(t, twice.ID, checks[CheckMultiplePublished].ID)
	assert.Equal(t, "organization", checks[CheckMultiplePublished].Kind)
	require.Contains(t, checks, CheckVersionCycle)
	assert.Contains(t, checks[CheckVersionCycle].Detail, looped.Version.VersioningID)
	assert.Contains(t, checks[CheckVersionCycle].Detail, second.Version.VersioningID)

	_, err = s.ListVersions(ctx, &v1.EntityRef{Kind: "service", ID: looped.ID})
	assert.Equal(t, codes.DataLoss, status.Code(err))
	_, err = s.UpdateEntity(ctx, &v1.UpdateEntityRequest{Kind: "organization", ID: twice.ID, Content: &v1.Content{Names: names("fi", "Korjaus")}})
	assert.Equal(t, codes.DataLoss, status.Code(err), "writes refuse to extend a broken history")
}
