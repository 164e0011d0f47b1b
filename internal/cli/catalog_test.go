package cli

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCatalog_SaveListHistory(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	defs := filepath.Join(dir, "queries")
	require.NoError(t, os.MkdirAll(defs, 0o755))
	writeFile(t, defs, "q.yaml", `
queries:
  - name: open-bugs
    where: {eq: {field: type, value: Bug}}
  - name: sre
    fields: [summary]
    where: {in: {field: project, values: [SRE]}}
`)

	// First save creates both.
	out, err := execute(t, "--format", "json", "save", defs, "--db", db)
	require.NoError(t, err)
	var report SaveReport
	decodeResponse(t, out, &report)
	assert.NotEmpty(t, report.BatchID)
	require.Len(t, report.Results, 2)
	assert.Equal(t, SaveEntry{Name: "open-bugs", Revision: 1, Status: "created"}, report.Results[0])
	assert.Equal(t, SaveEntry{Name: "sre", Revision: 1, Status: "created"}, report.Results[1])

	// Saving again changes nothing.
	out, err = execute(t, "save", defs, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "unchanged open-bugs@1")
	assert.NotContains(t, out, "batch ")

	// Edit one query.
	writeFile(t, defs, "q.yaml", `
queries:
  - name: open-bugs
    where: {and: [{eq: {field: type, value: Bug}}, {eq: {field: status, value: Open}}]}
  - name: sre
    fields: [summary]
    where: {in: {field: project, values: [SRE]}}
`)
	out, err = execute(t, "save", defs, "--db", db)
	require.NoError(t, err)
	assert.Contains(t, out, "updated   open-bugs@2")
	assert.Contains(t, out, "unchanged sre@1")

	// List shows the latest of each, by name.
	out, err = execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Equal(t,
		"open-bugs@2: (type = \"Bug\" AND status = \"Open\")\n"+
			"sre@1: project IN (\"SRE\")\n",
		out)

	var entries []CatalogEntry
	out, err = execute(t, "--format", "json", "history", "open-bugs", "--db", db)
	require.NoError(t, err)
	decodeResponse(t, out, &entries)
	require.Len(t, entries, 2)
	assert.Equal(t, int64(1), entries[0].Revision)
	assert.Equal(t, `type = "Bug"`, entries[0].JQL)
	assert.Equal(t, int64(2), entries[1].Revision)
	assert.NotEqual(t, entries[0].BatchID, entries[1].BatchID)
	assert.Equal(t, defs, entries[1].Source)
	assert.Len(t, entries[1].Hash, 64)
}

func TestCatalog_NoDatabase(t *testing.T) {
	for _, args := range [][]string{
		{"list"},
		{"history", "x"},
		{"save", "testdata/valid"},
	} {
		_, err := execute(t, args...)
		require.Error(t, err, "%v", args)
		assert.Equal(t, ExitCommandError, GetExitCode(err))
		assert.Contains(t, err.Error(), ErrCodeUsage)
	}
}

func TestCatalog_DatabaseFromConfig(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "from-config.db")
	cfg := writeFile(t, dir, "jqlc.yaml", "catalog:\n  path: "+db+"\n")

	_, err := execute(t, "--config", cfg, "save", "testdata/valid")
	require.NoError(t, err)

	out, err := execute(t, "--config", cfg, "list")
	require.NoError(t, err)
	assert.Contains(t, out, "pe-window@1")
	assert.Contains(t, out, "sre-release@1")
}

func TestCatalog_HistoryUnknownQuery(t *testing.T) {
	db := filepath.Join(t.TempDir(), "catalog.db")
	_, err := execute(t, "history", "ghost", "--db", db)
	require.Error(t, err)
	assert.Contains(t, err.Error(), ErrCodeUnknownQuery)
}

func TestCatalog_SaveRejectsBrokenDefinitions(t *testing.T) {
	dir := t.TempDir()
	db := filepath.Join(dir, "catalog.db")
	writeFile(t, dir, "bad.yaml", "name: bad\nwhere: {or: []}\n")

	_, err := execute(t, "save", dir, "--db", db)
	require.Error(t, err)
	assert.Equal(t, ExitFailure, GetExitCode(err))

	out, err := execute(t, "list", "--db", db)
	require.NoError(t, err)
	assert.Empty(t, out)
}
