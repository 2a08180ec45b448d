package versioning

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func aggregate(t *testing.T, versions ...Version[string]) *Aggregate[string] {
	t.Helper()
	a, err := NewAggregate(root, versions)
	require.NoError(t, err)
	return a
}

func TestPlanEdit(t *testing.T) {
	t.Run("first version is a draft", func(t *testing.T) {
		plan, err := aggregate(t).PlanEdit([]string{"fi", "sv"})
		require.NoError(t, err)
		assert.Equal(t, OperationCreate, plan.Operation)
		require.NotNil(t, plan.NewVersion)
		assert.Equal(t, Draft, plan.NewVersion.Status)
		assert.Equal(t, langs(Draft, "fi", "sv"), plan.NewVersion.Languages)
		assert.Empty(t, plan.NewVersion.PreviousID)
		assert.Empty(t, plan.Statuses)
	})

	t.Run("edit of a draft archives it", func(t *testing.T) {
		a := aggregate(t, version("a", "", Draft, langs(Draft, "fi")))
		plan, err := a.PlanEdit([]string{"fi"})
		require.NoError(t, err)
		assert.Equal(t, Draft, plan.NewVersion.Status)
		assert.Equal(t, "a", plan.NewVersion.PreviousID)
		assert.Equal(t, "v-a", plan.NewVersion.CopyOf)
		assert.Equal(t, []StatusChange{{VersionID: "v-a", From: Draft, To: Archived}}, plan.Statuses)
		assert.Equal(t, []LanguageChange{{VersionID: "v-a", Language: "fi", From: Draft, To: Archived}}, plan.Languages)
	})

	t.Run("edit of a published version is modified", func(t *testing.T) {
		a := aggregate(t, version("a", "", Published, langs(Published, "fi")))
		plan, err := a.PlanEdit([]string{"fi", "en"})
		require.NoError(t, err)
		assert.Equal(t, Modified, plan.NewVersion.Status)
		assert.Equal(t, map[string]Status{"fi": Modified, "en": Draft}, plan.NewVersion.Languages)
		assert.Empty(t, plan.Statuses, "published version stays published while edited")
	})

	t.Run("deleted aggregate", func(t *testing.T) {
		a := aggregate(t, version("a", "", Deleted, langs(Deleted, "fi")))
		_, err := a.PlanEdit([]string{"fi"})
		assert.ErrorIs(t, err, ErrDeleted)
	})

	t.Run("no language", func(t *testing.T) {
		_, err := aggregate(t).PlanEdit(nil)
		assert.ErrorIs(t, err, ErrNoLanguage)
	})
}

func TestPlanPublish(t *testing.T) {
	t.Run("publishes working version and archives the old one", func(t *testing.T) {
		a := aggregate(t,
			version("a", "", Published, langs(Published, "fi")),
			Version[string]{ID: "v-b", RootID: root, VersioningID: "b", PreviousID: "a", Status: Modified,
				Languages: map[string]Status{"fi": Modified, "sv": Draft}, Major: 1, Minor: 1},
		)
		plan, err := a.PlanPublish([]string{"fi"}, []string{"fi", "sv"})
		require.NoError(t, err)
		assert.Contains(t, plan.Statuses, StatusChange{VersionID: "v-a", From: Published, To: Archived})
		assert.Contains(t, plan.Statuses, StatusChange{VersionID: "v-b", From: Modified, To: Published})
		assert.Contains(t, plan.Languages, LanguageChange{VersionID: "v-b", Language: "fi", From: Modified, To: Published})
		assert.NotContains(t, plan.Languages, LanguageChange{VersionID: "v-b", Language: "sv", From: Draft, To: Published})
		assert.Equal(t, &Renumber{VersionID: "v-b", Major: 2}, plan.Renumber)
		assert.Equal(t, []string{"v-a", "v-b"}, plan.Touched())
	})

	t.Run("all available languages by default", func(t *testing.T) {
		a := aggregate(t, version("a", "", Draft, langs(Draft, "fi", "sv")))
		plan, err := a.PlanPublish(nil, []string{"fi", "sv"})
		require.NoError(t, err)
		assert.Len(t, plan.Languages, 2)
	})

	t.Run("language without content", func(t *testing.T) {
		a := aggregate(t, version("a", "", Draft, langs(Draft, "fi")))
		_, err := a.PlanPublish([]string{"sv"}, []string{"fi"})
		assert.ErrorIs(t, err, ErrLanguageUnavailable)
	})

	t.Run("nothing to publish", func(t *testing.T) {
		a := aggregate(t, version("a", "", Published, langs(Published, "fi")))
		_, err := a.PlanPublish(nil, []string{"fi"})
		assert.ErrorIs(t, err, ErrNothingToPublish)
	})

	t.Run("no content at all", func(t *testing.T) {
		a := aggregate(t, version("a", "", Draft, nil))
		_, err := a.PlanPublish(nil, nil)
		assert.ErrorIs(t, err, ErrNoLanguage)
	})
}

func TestPlanWithdraw(t *testing.T) {
	published := version("a", "", Published, langs(Published, "fi", "sv"))

	t.Run("one language", func(t *testing.T) {
		plan, err := aggregate(t, published).PlanWithdraw([]string{"sv"})
		require.NoError(t, err)
		assert.Empty(t, plan.Statuses)
		assert.Equal(t, []LanguageChange{{VersionID: "v-a", Language: "sv", From: Published, To: Modified}}, plan.Languages)
	})

	t.Run("whole version becomes modified", func(t *testing.T) {
		plan, err := aggregate(t, published).PlanWithdraw(nil)
		require.NoError(t, err)
		assert.Equal(t, []StatusChange{{VersionID: "v-a", From: Published, To: Modified}}, plan.Statuses)
		assert.Len(t, plan.Languages, 2)
	})

	t.Run("whole version is archived behind a working version", func(t *testing.T) {
		a := aggregate(t, published, version("b", "a", Modified, langs(Modified, "fi")))
		plan, err := a.PlanWithdraw([]string{"fi", "sv"})
		require.NoError(t, err)
		assert.Equal(t, []StatusChange{{VersionID: "v-a", From: Published, To: Archived}}, plan.Statuses)
	})

	t.Run("not published", func(t *testing.T) {
		_, err := aggregate(t, version("a", "", Draft, langs(Draft, "fi"))).PlanWithdraw(nil)
		assert.ErrorIs(t, err, ErrNotPublished)
	})

	t.Run("language not published", func(t *testing.T) {
		_, err := aggregate(t, published).PlanWithdraw([]string{"en"})
		assert.ErrorIs(t, err, ErrLanguageUnavailable)
	})
}

func TestPlanDeleteRestore(t *testing.T) {
	a := aggregate(t,
		version("a", "", Archived, langs(Archived, "fi")),
		version("b", "a", Published, langs(Published, "fi")),
		version("c", "b", Modified, langs(Modified, "fi")),
	)
	plan, err := a.PlanDelete()
	require.NoError(t, err)
	assert.Equal(t, []StatusChange{
		{VersionID: "v-c", From: Modified, To: Deleted},
		{VersionID: "v-b", From: Published, To: Deleted},
	}, plan.Statuses)
	assert.Nil(t, plan.NewVersion)

	_, err = a.PlanRestore()
	assert.ErrorIs(t, err, ErrNotDeleted)

	deleted := aggregate(t,
		version("a", "", Archived, langs(Archived, "fi")),
		version("b", "a", Deleted, langs(Deleted, "fi", "sv")),
	)
	_, err = deleted.PlanDelete()
	assert.ErrorIs(t, err, ErrDeleted)

	plan, err = deleted.PlanRestore()
	require.NoError(t, err)
	require.NotNil(t, plan.NewVersion)
	assert.Equal(t, Draft, plan.NewVersion.Status)
	assert.Equal(t, "b", plan.NewVersion.PreviousID)
	assert.Equal(t, langs(Draft, "fi", "sv"), plan.NewVersion.Languages)

	archived := aggregate(t, version("a", "", Archived, langs(Archived, "fi")))
	plan, err = archived.PlanDelete()
	require.NoError(t, err)
	require.NotNil(t, plan.NewVersion)
	assert.Equal(t, Deleted, plan.NewVersion.Status)
}

func TestPlanExpireScheduled(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	past := now.Add(-time.Hour)
	future := now.Add(time.Hour)

	published := version("a", "", Published, langs(Published, "fi"))
	published.ValidTo = &past
	plan, err := aggregate(t, published).PlanExpire(now)
	require.NoError(t, err)
	assert.Equal(t, []StatusChange{{VersionID: "v-a", From: Published, To: Archived}}, plan.Statuses)

	published.ValidTo = &future
	plan, err = aggregate(t, published).PlanExpire(now)
	require.NoError(t, err)
	assert.True(t, plan.Empty())

	draft := version("a", "", Draft, langs(Draft, "fi", "sv"))
	draft.ValidFrom = &past
	plan, err = aggregate(t, draft).PlanScheduled(now)
	require.NoError(t, err)
	assert.Equal(t, OperationScheduled, plan.Operation)
	assert.Equal(t, []StatusChange{{VersionID: "v-a", From: Draft, To: Published}}, plan.Statuses)
	assert.Len(t, plan.Languages, 2)

	draft.ValidFrom = &future
	plan, err = aggregate(t, draft).PlanScheduled(now)
	require.NoError(t, err)
	assert.True(t, plan.Empty())

	plan, err = aggregate(t, version("a", "", Draft, langs(Draft, "fi"))).PlanScheduled(now)
	require.NoError(t, err)
	assert.True(t, plan.Empty())
}

func TestLanguages(t *testing.T) {
	code, err := NormalizeLanguage("sv-FI")
	require.NoError(t, err)
	assert.Equal(t, "sv", code)

	code, err = NormalizeLanguage("FI")
	require.NoError(t, err)
	assert.Equal(t, "fi", code)

	_, err = NormalizeLanguage("de")
	assert.ErrorIs(t, err, ErrUnknownLanguage)

	codes, err := NormalizeLanguages([]string{"en", "fi", "en", "smn"})
	require.NoError(t, err)
	assert.Equal(t, []string{"fi", "en", "smn"}, codes)

	assert.Equal(t, "en", MatchLanguage("en-GB,en;q=0.9"))
	assert.Equal(t, "fi", MatchLanguage(""))
	assert.Equal(t, []string{"sv", "fi", "en", "se", "smn", "sms"}, Fallbacks("sv"))
}
