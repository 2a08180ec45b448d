package cmd

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	v1 "github.com/vrk-kpa/ptv-releases-sub014/apis/v1"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/tester"
)

func TestParseLocalized(t *testing.T) {
	values, err := parseLocalized([]string{"fi=Rakennuslupa", " sv = Bygglov "}, "name")
	require.NoError(t, err)
	assert.Equal(t, []v1.LocalizedValue{
		{Language: "fi", Type: "name", Value: "Rakennuslupa"},
		{Language: "sv", Type: "name", Value: "Bygglov"},
	}, values)

	for _, bad := range []string{"Rakennuslupa", "=Bygglov", "fi="} {
		_, err := parseLocalized([]string{bad}, "name")
		assert.Error(t, err, bad)
	}
}

func TestContentFlags(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "content.json")
	require.NoError(t, os.WriteFile(file, []byte(`{
		"names": [{"language": "fi", "value": "Neuvonta"}],
		"type": "phone",
		"validTo": "2030-01-01T00:00:00Z"
	}`), 0o600))

	flags := contentFlags{
		file:         file,
		names:        []string{"sv=Rådgivning"},
		summaries:    []string{"fi=Neuvontaa puhelimitse"},
		organization: "5c4c9ae4-4a41-4e4b-a6d8-0c3f4d2f1a10",
		validFrom:    "2029-06-01T08:00:00Z",
	}

	content, err := flags.content()
	require.NoError(t, err)
	assert.Len(t, content.Names, 2)
	assert.Equal(t, "summary", content.Descriptions[0].Type)
	assert.Equal(t, "phone", content.Type)
	assert.Equal(t, flags.organization, content.OrganizationID)
	require.NotNil(t, content.ValidFrom)
	assert.Equal(t, time.Date(2029, 6, 1, 8, 0, 0, 0, time.UTC), content.ValidFrom.UTC())
	require.NotNil(t, content.ValidTo)
	assert.Equal(t, 2030, content.ValidTo.Year())

	_, err = (&contentFlags{validFrom: "tomorrow"}).content()
	assert.Error(t, err)
	_, err = (&contentFlags{file: filepath.Join(dir, "missing.json")}).content()
	assert.Error(t, err)
}

func TestContext(t *testing.T) {
	t.Setenv("PTV_CONFIG_DIR", t.TempDir())
	defer func() { Server, Actor = "", "" }()

	current, err := readContext()
	require.NoError(t, err)
	assert.Equal(t, Context{Server: defaultServer}, current)

	require.NoError(t, writeContext(Context{Server: "catalog:4020", Actor: "alice"}))
	current, err = readContext()
	require.NoError(t, err)
	assert.Equal(t, Context{Server: "catalog:4020", Actor: "alice"}, current)

	Actor = "bob"
	current, err = effectiveContext()
	require.NoError(t, err)
	assert.Equal(t, Context{Server: "catalog:4020", Actor: "bob"}, current)
}

func TestPrintTree(t *testing.T) {
	var buf bytes.Buffer
	printTree(&buf, []*v1.TaxonomyNode{
		{Code: "P1", Name: "Ympäristö", Children: []*v1.TaxonomyNode{
			{Code: "P1.1", Name: "Rakentaminen"},
		}},
		{Code: "P2", Name: "Liikenne"},
	}, 0)

	assert.Equal(t, "P1 Ympäristö\n  P1.1 Rakentaminen\nP2 Liikenne\n", buf.String())
}

func TestCheckIntegrity(t *testing.T) {
	tester.Setup()
	defer tester.RemoveDBFile()

	problems, err := checkIntegrity(context.TODO(), tester.TestDB())
	require.NoError(t, err)
	assert.Empty(t, problems)
}

func TestRootCommands(t *testing.T) {
	names := map[string]bool{}
	for _, c := range rootCmd.Commands() {
		names[c.Name()] = true
	}
	for _, name := range []string{"serve", "db", "context", "create", "get", "list", "update", "publish", "withdraw",
		"delete", "restore", "erase", "versions", "lock", "unlock", "connect", "disconnect", "connections", "taxonomy", "schedules"} {
		assert.True(t, names[name], name)
	}
}
