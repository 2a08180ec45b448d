package store

import (
	"context"
	"os"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/model"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

func TestMain(m *testing.M) {
	tester.Setup()
	code := m.Run()
	tester.RemoveDBFile()

	os.Exit(code)
}

func languageID(t *testing.T, s Store, code string) string {
	t.Helper()
	languages, err := s.ListLanguages(context.TODO())
	require.NoError(t, err)
	for _, l := range languages {
		if l.Code == code {
			return l.ID
		}
	}
	t.Fatalf("language %s not seeded", code)
	return ""
}

// createVersion stores a root with one draft version named in Finnish.
func createVersion(t *testing.T, s Store, kind model.Kind) (*model.RootRow, *model.VersionedRow) {
	t.Helper()
	ctx := context.TODO()

	root := &model.RootRow{ID: uuid.NewString(), Auditing: model.NewAuditing("tester")}
	require.NoError(t, s.CreateRoot(ctx, kind, root))

	versioning := &model.Versioning{ID: uuid.NewString(), UnificRootID: root.ID, VersionMinor: 1}
	require.NoError(t, s.CreateVersioning(ctx, versioning))

	row := &model.VersionedRow{
		ID:                 uuid.NewString(),
		UnificRootID:       root.ID,
		VersioningID:       versioning.ID,
		PublishingStatusID: "draft",
		LastOperationType:  "create",
		Auditing:           model.NewAuditing("tester"),
	}
	require.NoError(t, s.CreateVersion(ctx, kind, row))

	fi := languageID(t, s, "fi")
	require.NoError(t, s.CreateNames(ctx, kind, []*model.LocalizedText{{
		ParentID:       row.ID,
		LocalizationID: fi,
		TypeCode:       model.NameTypeName,
		Value:          "Nimi",
	}}))
	require.NoError(t, s.SetLanguageStatus(ctx, kind, &model.LanguageAvailability{
		ParentID:   row.ID,
		LanguageID: fi,
		StatusID:   "draft",
	}))

	return root, row
}
