package store

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

func TestGormStore_CreateVersion(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	for _, kind := range model.Kinds {
		t.Run(kind.String(), func(t *testing.T) {
			root, row := createVersion(t, s, kind)

			got, err := s.GetVersion(ctx, kind, row.ID)
			require.NoError(t, err)
			assert.Equal(t, root.ID, got.UnificRootID)
			assert.Equal(t, "draft", got.PublishingStatusID)
			assert.Equal(t, "create", got.LastOperationType)

			names, err := s.ListNames(ctx, kind, row.ID)
			require.NoError(t, err)
			require.Len(t, names, 1)
			assert.Equal(t, "Nimi", names[0].Value)

			require.NoError(t, s.UpdateVersionStatus(ctx, kind, row.ID, "published", "publish", "tester"))
			got, err = s.GetVersion(ctx, kind, row.ID)
			require.NoError(t, err)
			assert.Equal(t, "published", got.PublishingStatusID)
			assert.Equal(t, "publish", got.LastOperationType)

			_, err = s.GetVersion(ctx, kind, uuid.NewString())
			assert.ErrorIs(t, err, ErrNotFound)
		})
	}
}

func TestGormStore_VersionRequiresRoot(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	versioning := &model.Versioning{ID: uuid.NewString(), UnificRootID: uuid.NewString()}
	require.NoError(t, s.CreateVersioning(ctx, versioning))

	err := s.CreateVersion(ctx, model.KindOrganization, &model.VersionedRow{
		ID:                 uuid.NewString(),
		UnificRootID:       versioning.UnificRootID,
		VersioningID:       versioning.ID,
		PublishingStatusID: "draft",
	})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_LanguageAvailabilityUnique(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindService

	_, row := createVersion(t, s, kind)
	fi := languageID(t, s, "fi")

	err := tester.TestDB().Table(kind.Tables().Availability).Create(&model.LanguageAvailability{
		ParentID:   row.ID,
		LanguageID: fi,
		StatusID:   "published",
	}).Error
	assert.ErrorIs(t, mapError(err), ErrConflict)

	require.NoError(t, s.SetLanguageStatus(ctx, kind, &model.LanguageAvailability{
		ParentID:   row.ID,
		LanguageID: fi,
		StatusID:   "published",
		Auditing:   model.NewAuditing("tester"),
	}))
	statuses, err := s.ListLanguageStatuses(ctx, kind, []string{row.ID})
	require.NoError(t, err)
	require.Len(t, statuses, 1)
	assert.Equal(t, "published", statuses[0].StatusID)

	err = s.SetLanguageStatus(ctx, kind, &model.LanguageAvailability{
		ParentID:   row.ID,
		LanguageID: uuid.NewString(),
		StatusID:   "draft",
	})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func TestGormStore_EraseRootCascades(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	db := tester.TestDB()
	ctx := context.TODO()
	kind := model.KindOrganization

	root, row := createVersion(t, s, kind)
	require.NoError(t, s.CreateDescriptions(ctx, kind, []*model.LocalizedText{{
		ParentID:       row.ID,
		LocalizationID: languageID(t, s, "sv"),
		TypeCode:       model.DescriptionTypeSummary,
		Value:          "Sammanfattning",
	}}))
	require.NoError(t, s.CreateOrganizationAreas(ctx, []*model.OrganizationArea{
		{OrganizationVersionedID: row.ID, AreaCode: "091"},
	}))

	require.NoError(t, s.EraseRoot(ctx, kind, root.ID))

	count := func(value any, column, id string) int64 {
		var n int64
		require.NoError(t, db.Model(value).Where(column+" = ?", id).Count(&n).Error)
		return n
	}
	assert.Zero(t, count(&model.OrganizationVersioned{}, "unific_root_id", root.ID))
	assert.Zero(t, count(&model.OrganizationName{}, "parent_id", row.ID))
	assert.Zero(t, count(&model.OrganizationDescription{}, "parent_id", row.ID))
	assert.Zero(t, count(&model.OrganizationLanguageAvailability{}, "parent_id", row.ID))
	assert.Zero(t, count(&model.OrganizationArea{}, "organization_versioned_id", row.ID))
	assert.Zero(t, count(&model.Versioning{}, "unific_root_id", root.ID))

	assert.ErrorIs(t, s.EraseRoot(ctx, kind, root.ID), ErrNotFound)
}

func TestGormStore_DeleteRootRowCascades(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	db := tester.TestDB()

	root, row := createVersion(t, s, model.KindOrganization)
	require.NoError(t, db.Delete(&model.Organization{ID: root.ID}).Error)

	var versions, names int64
	require.NoError(t, db.Model(&model.OrganizationVersioned{}).Where("id = ?", row.ID).Count(&versions).Error)
	require.NoError(t, db.Model(&model.OrganizationName{}).Where("parent_id = ?", row.ID).Count(&names).Error)
	assert.Zero(t, versions)
	assert.Zero(t, names)
}

func TestGormStore_FilterVersions(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindGeneralDescription

	organizationID := uuid.NewString()
	create := func(status string) string {
		_, row := createVersion(t, s, kind)
		require.NoError(t, s.UpdateVersionStatus(ctx, kind, row.ID, status, "edit", "tester"))
		require.NoError(t, tester.TestDB().Table(kind.Tables().Versioned).Where("id = ?", row.ID).
			Update("organization_id", organizationID).Error)
		return row.ID
	}

	var published []string
	for i := 0; i < 3; i++ {
		create("archived")
		published = append(published, create("published"))
	}

	filter := VersionFilter{Statuses: []string{"published"}, OrganizationID: organizationID, Limit: 2}
	rows, total, err := s.FilterVersions(ctx, kind, filter)
	require.NoError(t, err)
	assert.Equal(t, int64(3), total)
	assert.Len(t, rows, 2)
	for _, r := range rows {
		assert.Contains(t, published, r.ID)
	}

	filter.Offset = 2
	rows, _, err = s.FilterVersions(ctx, kind, filter)
	require.NoError(t, err)
	assert.Len(t, rows, 1)
}

func TestGormStore_FilterVersions_OnePerRoot(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindService
	db := tester.TestDB()

	organizationID := uuid.NewString()
	root, first := createVersion(t, s, kind)
	require.NoError(t, s.UpdateVersionStatus(ctx, kind, first.ID, "published", "publish", "tester"))

	// two later revisions of the same root, the last one being the head
	previous := first.VersioningID
	var rows []*model.VersionedRow
	for i, status := range []string{"archived", "modified"} {
		link := &model.Versioning{ID: uuid.NewString(), UnificRootID: root.ID, PreviousVersionID: &previous, VersionMinor: i + 2}
		require.NoError(t, s.CreateVersioning(ctx, link))
		auditing := model.NewAuditing("tester")
		auditing.Created = auditing.Created.Add(time.Duration(i+1) * time.Second)
		row := &model.VersionedRow{
			ID:                 uuid.NewString(),
			UnificRootID:       root.ID,
			VersioningID:       link.ID,
			PublishingStatusID: status,
			Auditing:           auditing,
		}
		require.NoError(t, s.CreateVersion(ctx, kind, row))
		rows = append(rows, row)
		previous = link.ID
	}
	require.NoError(t, db.Table(kind.Tables().Versioned).Where("unific_root_id = ?", root.ID).
		Update("organization_id", organizationID).Error)

	tests := []struct {
		name     string
		statuses []string
		want     string
	}{
		{name: "head", want: rows[1].ID},
		{name: "published", statuses: []string{"published"}, want: first.ID},
		{name: "archived", statuses: []string{"archived"}, want: rows[0].ID},
		{name: "any of", statuses: []string{"published", "archived"}, want: rows[0].ID},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, total, err := s.FilterVersions(ctx, kind, VersionFilter{Statuses: tt.statuses, OrganizationID: organizationID})
			require.NoError(t, err)
			assert.Equal(t, int64(1), total)
			require.Len(t, got, 1)
			assert.Equal(t, tt.want, got[0].ID)
		})
	}

	got, total, err := s.FilterVersions(ctx, kind, VersionFilter{Statuses: []string{"draft"}, OrganizationID: organizationID})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.Empty(t, got)
}

func TestGormStore_VersioningSingleSuccessor(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	root, row := createVersion(t, s, model.KindOrganization)
	successor := func() *model.Versioning {
		return &model.Versioning{ID: uuid.NewString(), UnificRootID: root.ID, PreviousVersionID: &row.VersioningID}
	}

	require.NoError(t, s.CreateVersioning(ctx, successor()))
	assert.ErrorIs(t, s.CreateVersioning(ctx, successor()), ErrConflict)
}

func TestGormStore_LockRoot(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.KindServiceChannel

	root, _ := createVersion(t, s, kind)
	err := s.Transaction(ctx, func(tx Store) error {
		locked, err := tx.LockRoot(ctx, kind, root.ID)
		if err != nil {
			return err
		}
		assert.Equal(t, root.ID, locked.ID)
		return nil
	})
	require.NoError(t, err)

	_, err = s.LockRoot(ctx, kind, uuid.NewString())
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGormStore_ListScheduledRoots(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	db := tester.TestDB()
	ctx := context.TODO()
	kind := model.KindServiceChannel
	now := time.Date(2030, 1, 1, 0, 0, 0, 0, time.UTC)

	due, dueRow := createVersion(t, s, kind)
	require.NoError(t, db.Table(kind.Tables().Versioned).Where("id = ?", dueRow.ID).
		Update("valid_from", now.Add(-time.Hour)).Error)

	_, laterRow := createVersion(t, s, kind)
	require.NoError(t, db.Table(kind.Tables().Versioned).Where("id = ?", laterRow.ID).
		Update("valid_from", now.Add(time.Hour)).Error)

	expired, expiredRow := createVersion(t, s, kind)
	require.NoError(t, s.UpdateVersionStatus(ctx, kind, expiredRow.ID, "published", "publish", "tester"))
	require.NoError(t, db.Table(kind.Tables().Versioned).Where("id = ?", expiredRow.ID).
		Update("valid_to", now.Add(-time.Minute)).Error)

	ids, err := s.ListScheduledRoots(ctx, kind, now)
	require.NoError(t, err)
	assert.ElementsMatch(t, []string{due.ID, expired.ID}, ids)
}

func TestGormStore_Content(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	fi := languageID(t, s, "fi")
	sv := languageID(t, s, "sv")

	t.Run("channel", func(t *testing.T) {
		_, row := createVersion(t, s, model.KindServiceChannel)
		require.NoError(t, s.CreateChannelKeywords(ctx, row.ID, []*model.Keyword{
			{LocalizationID: fi, Name: "asuminen"},
			{LocalizationID: fi, Name: "asuminen"},
			{LocalizationID: sv, Name: "boende"},
		}, "tester"))

		_, other := createVersion(t, s, model.KindServiceChannel)
		require.NoError(t, s.CreateChannelKeywords(ctx, other.ID, []*model.Keyword{
			{LocalizationID: fi, Name: "asuminen"},
		}, "tester"))

		keywords, err := s.ListChannelKeywords(ctx, row.ID)
		require.NoError(t, err)
		require.Len(t, keywords, 2)
		assert.Equal(t, "asuminen", keywords[0].Name)

		shared, err := s.ListChannelKeywords(ctx, other.ID)
		require.NoError(t, err)
		require.Len(t, shared, 1)
		assert.Equal(t, keywords[0].ID, shared[0].ID)

		lat := 60.17
		require.NoError(t, s.CreateAddresses(ctx, []*model.Address{
			{
				ID: uuid.NewString(), ParentID: row.ID, CharacterCode: model.AddressCharacterPostal, OrderNumber: 2,
				PostalCode: "00100",
			},
			{
				ID: uuid.NewString(), ParentID: row.ID, CharacterCode: model.AddressCharacterVisiting, OrderNumber: 1,
				PostalCode: "00100", Latitude: &lat,
				Streets: []model.AddressStreet{{LocalizationID: fi, Street: "Mannerheimintie", StreetNumber: "1"}},
			},
		}))
		addresses, err := s.ListAddresses(ctx, row.ID)
		require.NoError(t, err)
		require.Len(t, addresses, 2)
		assert.Equal(t, model.AddressCharacterVisiting, addresses[0].CharacterCode)
		require.Len(t, addresses[0].Streets, 1)
		assert.Equal(t, "Mannerheimintie", addresses[0].Streets[0].Street)

		require.NoError(t, s.CreateWebPages(ctx, []*model.ServiceChannelWebPage{
			{ParentID: row.ID, LocalizationID: fi, URL: "https://www.suomi.fi"},
		}))
		pages, err := s.ListWebPages(ctx, row.ID)
		require.NoError(t, err)
		assert.Len(t, pages, 1)
	})

	t.Run("service", func(t *testing.T) {
		_, row := createVersion(t, s, model.KindService)

		funding, err := s.GetServiceFundingType(ctx, row.ID)
		require.NoError(t, err)
		assert.Equal(t, model.DefaultServiceFundingTypeID, funding)

		err = s.SetServiceFundingType(ctx, row.ID, uuid.NewString())
		assert.ErrorIs(t, err, ErrForeignKey)

		term := &model.TaxonomyNode{ID: uuid.NewString(), Code: "P1"}
		require.NoError(t, s.UpsertTaxonomyNodes(ctx, model.TaxonomyServiceClass, []*model.TaxonomyNode{term}))
		require.NoError(t, s.CreateServiceTerms(ctx, model.TaxonomyServiceClass, []*model.TermLink{
			{ParentID: row.ID, TermID: term.ID},
		}))
		links, err := s.ListServiceTerms(ctx, model.TaxonomyServiceClass, row.ID)
		require.NoError(t, err)
		require.Len(t, links, 1)
		assert.Equal(t, term.ID, links[0].TermID)

		err = s.CreateServiceTerms(ctx, model.TaxonomyIndustrialClass, []*model.TermLink{{ParentID: row.ID, TermID: term.ID}})
		assert.ErrorIs(t, err, model.ErrUnknownKind)
	})
}

func TestGormStore_Connections(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()

	service, _ := createVersion(t, s, model.KindService)
	channel, _ := createVersion(t, s, model.KindServiceChannel)

	conn := &model.ServiceServiceChannel{ServiceID: service.ID, ServiceChannelID: channel.ID, OrderNumber: 1}
	require.NoError(t, s.Connect(ctx, conn))
	conn.OrderNumber = 5
	require.NoError(t, s.Connect(ctx, conn))

	conns, err := s.ListConnections(ctx, ConnectionFilter{ChannelID: channel.ID})
	require.NoError(t, err)
	require.Len(t, conns, 1)
	assert.Equal(t, 5, conns[0].OrderNumber)

	err = s.Connect(ctx, &model.ServiceServiceChannel{ServiceID: service.ID, ServiceChannelID: uuid.NewString()})
	assert.ErrorIs(t, err, ErrForeignKey)

	require.NoError(t, s.Disconnect(ctx, service.ID, channel.ID))
	assert.ErrorIs(t, s.Disconnect(ctx, service.ID, channel.ID), ErrNotFound)
}

func TestGormStore_Taxonomy(t *testing.T) {
	s := NewGormStore(tester.TestDB())
	ctx := context.TODO()
	kind := model.TaxonomyLifeEvent

	parent := &model.TaxonomyNode{ID: uuid.NewString(), Code: "KE1"}
	child := &model.TaxonomyNode{ID: uuid.NewString(), ParentID: &parent.ID, Code: "KE1.1"}
	require.NoError(t, s.UpsertTaxonomyNodes(ctx, kind, []*model.TaxonomyNode{parent, child}))

	child.OrderNumber = 3
	require.NoError(t, s.UpsertTaxonomyNodes(ctx, kind, []*model.TaxonomyNode{child}))

	require.NoError(t, s.UpsertTaxonomyNames(ctx, []*model.TaxonomyName{
		{Kind: string(kind), TermID: parent.ID, LocalizationID: languageID(t, s, "fi"), Name: "Muutto"},
	}))

	nodes, err := s.ListTaxonomyNodes(ctx, kind)
	require.NoError(t, err)
	require.Len(t, nodes, 2)
	assert.Equal(t, parent.ID, nodes[0].ID)
	assert.Equal(t, 3, nodes[1].OrderNumber)

	names, err := s.ListTaxonomyNames(ctx, kind)
	require.NoError(t, err)
	require.Len(t, names, 1)
	assert.Equal(t, "Muutto", names[0].Name)

	err = s.UpsertTaxonomyNodes(ctx, kind, []*model.TaxonomyNode{{ID: uuid.NewString(), ParentID: ptr(uuid.NewString())}})
	assert.ErrorIs(t, err, ErrForeignKey)
}

func ptr[T any](v T) *T {
	return &v
}
