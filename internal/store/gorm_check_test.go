package store

import (
	"context"
	"errors"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

var errRollback = errors.New("rollback")

func TestGormStore_ListVersioningLinks(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	rootID := uuid.NewString()

	a := &model.Versioning{ID: uuid.NewString(), UnificRootID: rootID}
	b := &model.Versioning{ID: uuid.NewString(), UnificRootID: rootID, PreviousVersionID: &a.ID}
	require.NoError(t, s.CreateVersioning(ctx, a))
	require.NoError(t, s.CreateVersioning(ctx, b))

	links, err := s.ListVersioningLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, a.ID, links[b.ID])
	_, ok := links[a.ID]
	assert.False(t, ok)

	// the schema does not prevent a chain from looping back on itself
	require.NoError(t, tester.TestDB().Model(a).Update("previous_version_id", b.ID).Error)
	links, err = s.ListVersioningLinks(ctx)
	require.NoError(t, err)
	assert.Equal(t, b.ID, links[a.ID])
}

func TestGormStore_ListMultiplyPublished(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindOrganization

	root, first := createVersion(t, s, kind)
	require.NoError(t, s.UpdateVersionStatus(ctx, kind, first.ID, "published", "publish", "tester"))

	versioning := &model.Versioning{ID: uuid.NewString(), UnificRootID: root.ID, PreviousVersionID: &first.VersioningID}
	require.NoError(t, s.CreateVersioning(ctx, versioning))
	require.NoError(t, s.CreateVersion(ctx, kind, &model.VersionedRow{
		ID:                 uuid.NewString(),
		UnificRootID:       root.ID,
		VersioningID:       versioning.ID,
		PublishingStatusID: "published",
	}))

	ids, err := s.ListMultiplyPublished(ctx, kind)
	require.NoError(t, err)
	assert.Contains(t, ids, root.ID)
}

func TestGormStore_ListOrphanedVersions(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindServiceChannel

	var orphans, unknown []string
	err := s.Transaction(ctx, func(tx Store) error {
		g := tx.(*GormStore)
		// checked at commit only, the transaction is rolled back before that
		if err := g.db.Exec("PRAGMA defer_foreign_keys = ON").Error; err != nil {
			return err
		}

		versioning := &model.Versioning{ID: uuid.NewString(), UnificRootID: uuid.NewString()}
		if err := tx.CreateVersioning(ctx, versioning); err != nil {
			return err
		}
		row := &model.VersionedRow{
			ID:                 uuid.NewString(),
			UnificRootID:       versioning.UnificRootID,
			VersioningID:       versioning.ID,
			PublishingStatusID: "draft",
		}
		if err := tx.CreateVersion(ctx, kind, row); err != nil {
			return err
		}
		if err := tx.SetLanguageStatus(ctx, kind, &model.LanguageAvailability{
			ParentID: row.ID, LanguageID: uuid.NewString(), StatusID: "draft",
		}); err != nil {
			return err
		}

		ids, err := tx.ListOrphanedVersions(ctx, kind)
		if err != nil {
			return err
		}
		orphans = append(orphans, ids...)
		assert.Contains(t, ids, row.ID)

		statuses, err := tx.ListUnknownLanguageStatuses(ctx, kind)
		if err != nil {
			return err
		}
		for _, status := range statuses {
			unknown = append(unknown, status.ParentID)
		}
		assert.Contains(t, unknown, row.ID)
		return errRollback
	})
	require.ErrorIs(t, err, errRollback)
	assert.Len(t, orphans, 1)

	ids, err := s.ListOrphanedVersions(ctx, kind)
	require.NoError(t, err)
	assert.Empty(t, ids)
}
