package querydef

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoad_FixtureDirectory(t *testing.T) {
	result, errs := Load("testdata/queries", LoadModeCollectAll)
	require.Empty(t, errs)
	require.NotNil(t, result)

	assert.Equal(t, 3, result.FileCount)

	names := make([]string, 0, len(result.Queries))
	for _, q := range result.Queries {
		names = append(names, q.Name)
	}
	assert.Equal(t, []string{"pe-window", "escaped-summary", "nothing", "sre-release"}, names)

	testCases := []struct {
		name   string
		jql    string
		fields []string
	}{
		{
			name: "pe-window",
			jql:  `(project IN ("PE", "SRE") AND created >= "2024-01-01" AND created <= "2024-03-31") ORDER BY created DESC, key`,
		},
		{
			name:   "escaped-summary",
			jql:    `summary = "\\[foo\\]\\:\\(bar\\)"`,
			fields: []string{"summary"},
		},
		{
			name: "nothing",
			jql:  `()`,
		},
		{
			name:   "sre-release",
			jql:    `(project IN ("SRE") AND labels IN ("v2022.5.10", "v2022.6.13")) ORDER BY createdDate DESC`,
			fields: []string{"summary", "status", "labels"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			q := result.Lookup(tc.name)
			require.NotNil(t, q)
			assert.Equal(t, tc.jql, q.JQL())
			if tc.fields == nil {
				assert.Empty(t, q.Fields)
			} else {
				assert.Equal(t, tc.fields, q.Fields)
			}
		})
	}

	assert.Nil(t, result.Lookup("missing"))
}

func TestLoad_SingleFile(t *testing.T) {
	result, errs := Load("testdata/queries/release.yaml", LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, result.Queries, 1)
	assert.Equal(t, 1, result.FileCount)
	assert.Equal(t, "testdata/queries/release.yaml", result.Queries[0].Source)
}

func TestLoad_NotFound(t *testing.T) {
	result, errs := Load(filepath.Join(t.TempDir(), "nope"), LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNotFound)

	var loadErr *LoadError
	assert.True(t, errors.As(errs[0], &loadErr))
}

func TestLoad_UnsupportedExtension(t *testing.T) {
	path := writeFile(t, t.TempDir(), "q.toml", "name = 'x'\n")

	result, errs := Load(path, LoadModeFailFast)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNoFiles)
}

func TestLoad_EmptyDirectory(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "README.md", "not a query\n")

	result, errs := Load(dir, LoadModeCollectAll)
	assert.Nil(t, result)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrNoFiles)
}

func TestLoad_DuplicateNames(t *testing.T) {
	dir := t.TempDir()
	first := writeFile(t, dir, "a.yaml", "name: dup\nwhere: {and: []}\n")
	writeFile(t, dir, "b.yaml", "name: dup\nwhere: {and: []}\n")

	result, errs := Load(dir, LoadModeCollectAll)
	require.Len(t, errs, 1)
	assert.ErrorIs(t, errs[0], ErrDuplicateName)
	assert.Contains(t, errs[0].Error(), "already defined in "+first)

	require.Len(t, result.Queries, 1)
	assert.Equal(t, first, result.Queries[0].Source)
}

func TestLoad_Modes(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "a.yaml", "name: a\nwhere: {or: []}\n")
	writeFile(t, dir, "b.yaml", "name: b\nwhere: {and: []}\n")
	writeFile(t, dir, "c.yaml", "name: [broken\n")

	t.Run("fail fast stops at the first error", func(t *testing.T) {
		result, errs := Load(dir, LoadModeFailFast)
		require.Len(t, errs, 1)
		assert.Contains(t, errs[0].Error(), `unknown clause "or"`)
		assert.Empty(t, result.Queries)
	})

	t.Run("collect all keeps going", func(t *testing.T) {
		result, errs := Load(dir, LoadModeCollectAll)
		require.Len(t, errs, 2)
		assert.Contains(t, errs[0].Error(), `unknown clause "or"`)
		assert.ErrorIs(t, errs[1], ErrParse)

		require.Len(t, result.Queries, 1)
		assert.Equal(t, "b", result.Queries[0].Name)
	})
}

func TestLoad_NestedDirectories(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "z.yaml", "name: z\nwhere: {and: []}\n")
	writeFile(t, dir, "sub/a.json", `{"name": "a", "where": {"and": []}}`)

	result, errs := Load(dir, LoadModeFailFast)
	require.Empty(t, errs)
	require.Len(t, result.Queries, 2)
	assert.Equal(t, "a", result.Queries[0].Name, "sub/ sorts before z.yaml")
	assert.Equal(t, "z", result.Queries[1].Name)
}

func TestIsDefinitionFile(t *testing.T) {
	assert.True(t, IsDefinitionFile("a.cue"))
	assert.True(t, IsDefinitionFile("a.YAML"))
	assert.True(t, IsDefinitionFile("dir/a.yml"))
	assert.True(t, IsDefinitionFile("a.json"))
	assert.False(t, IsDefinitionFile("a.toml"))
	assert.False(t, IsDefinitionFile("yaml"))
}
