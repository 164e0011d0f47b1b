package catalog

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.Get(context.Background(), "ghost")
	require.Error(t, err)
	assert.True(t, errors.Is(err, ErrNotFound))
	assert.Contains(t, err.Error(), `"ghost"`)
}

func TestHistory_NotFound(t *testing.T) {
	s := createTestStore(t)

	_, err := s.History(context.Background(), "ghost")
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestGet_ReturnsLatest(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	for _, jql := range []string{"v1", "v2", "v3"} {
		_, err := s.Save(ctx, "src", Entry{Name: "q", JQL: jql})
		require.NoError(t, err)
	}

	got, err := s.Get(ctx, "q")
	require.NoError(t, err)
	assert.Equal(t, int64(3), got.Revision)
	assert.Equal(t, "v3", got.JQL)
	assert.Equal(t, "batch-3", got.BatchID)
}

func TestList_Empty(t *testing.T) {
	s := createTestStore(t)

	list, err := s.List(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, list)
	assert.Empty(t, list)
}

func TestList_LatestPerNameInBinaryOrder(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, _, err := s.SaveBatch(ctx, "src", []Entry{
		{Name: "beta", JQL: "b1"},
		{Name: "Zulu", JQL: "z1"},
		{Name: "alpha", JQL: "a1"},
	})
	require.NoError(t, err)
	_, err = s.Save(ctx, "src", Entry{Name: "beta", JQL: "b2"})
	require.NoError(t, err)

	list, err := s.List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 3)

	// Uppercase sorts before lowercase under BINARY collation.
	assert.Equal(t, "Zulu", list[0].Name)
	assert.Equal(t, "alpha", list[1].Name)
	assert.Equal(t, "beta", list[2].Name)
	assert.Equal(t, int64(2), list[2].Revision)
	assert.Equal(t, "b2", list[2].JQL)
}

func TestRevision_EmptyFieldsRoundTrip(t *testing.T) {
	s := createTestStore(t)
	ctx := context.Background()

	_, err := s.Save(ctx, "src", Entry{Name: "none", JQL: "x"})
	require.NoError(t, err)
	_, err = s.Save(ctx, "src", Entry{Name: "empty", JQL: "x", Fields: []string{}})
	require.NoError(t, err)

	for _, name := range []string{"none", "empty"} {
		got, err := s.Get(ctx, name)
		require.NoError(t, err)
		assert.Nil(t, got.Fields, name)
	}
}
