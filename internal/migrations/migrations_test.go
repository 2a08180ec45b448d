package migrations_test

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/migrations"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

var versionedTables = []string{
	"organization_versioned",
	"service_versioned",
	"service_channel_versioned",
	"general_description_versioned",
}

func TestMain(m *testing.M) {
	code := m.Run()
	tester.RemoveDBFile()
	os.Exit(code)
}

func columns(t *testing.T, table string) []string {
	t.Helper()
	types, err := tester.TestDB().Migrator().ColumnTypes(table)
	require.NoError(t, err)

	names := make([]string, 0, len(types))
	for _, c := range types {
		names = append(names, c.Name())
	}
	return names
}

func TestMigrator_UpSeedsCodeTables(t *testing.T) {
	tester.Setup()
	db := tester.TestDB()

	var languages []model.Language
	require.NoError(t, db.Order("order_number").Find(&languages).Error)
	codes := make([]string, 0, len(languages))
	for _, l := range languages {
		codes = append(codes, l.Code)
	}
	assert.Equal(t, []string{"fi", "sv", "en", "se", "smn", "sms"}, codes)

	var statuses int64
	require.NoError(t, db.Model(&model.PublishingStatusType{}).Count(&statuses).Error)
	assert.Equal(t, int64(5), statuses)

	var funding model.ServiceFundingType
	require.NoError(t, db.First(&funding, "id = ?", model.DefaultServiceFundingTypeID).Error)
	assert.Equal(t, "publicly_funded", funding.Code)

	for _, table := range versionedTables {
		assert.Contains(t, columns(t, table), "last_operation_type", table)
	}
}

func TestMigrator_DownReversesUp(t *testing.T) {
	db := tester.SetupSchema()
	ctx := context.Background()

	before := make(map[string][]string)
	for _, table := range versionedTables {
		before[table] = columns(t, table)
		assert.NotContains(t, before[table], "last_operation_type")
	}

	m, err := migrations.New(db, false)
	require.NoError(t, err)

	steps, err := m.Up(ctx)
	require.NoError(t, err)
	assert.Len(t, steps, 4)

	version, err := m.Version(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), version)

	head := &model.Versioning{ID: uuid.NewString(), UnificRootID: uuid.NewString()}
	require.NoError(t, db.Create(head).Error)
	next := func() *model.Versioning {
		return &model.Versioning{ID: uuid.NewString(), UnificRootID: head.UnificRootID, PreviousVersionID: &head.ID}
	}
	require.NoError(t, db.Create(next()).Error)
	assert.Error(t, db.Create(next()).Error, "a version has one successor")

	step, err := m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(4), step.Version)
	assert.NoError(t, db.Create(next()).Error)

	step, err = m.Down(ctx)
	require.NoError(t, err)
	assert.Equal(t, int64(3), step.Version)

	for _, table := range versionedTables {
		assert.ElementsMatch(t, before[table], columns(t, table), table)
	}

	_, err = m.Reset(ctx)
	require.NoError(t, err)

	var languages int64
	require.NoError(t, db.Model(&model.Language{}).Count(&languages).Error)
	assert.Zero(t, languages)

	status, err := m.Status(ctx)
	require.NoError(t, err)
	require.Len(t, status, 4)
	for _, s := range status {
		assert.False(t, s.Applied, s.Path)
	}
}
