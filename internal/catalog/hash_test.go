package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func mustHash(t *testing.T, e Entry) string {
	t.Helper()
	h, err := Hash(e)
	require.NoError(t, err)
	return h
}

func TestHash_Deterministic(t *testing.T) {
	e := Entry{Name: "q", JQL: `project IN ("SRE")`, Fields: []string{"summary"}}
	h := mustHash(t, e)

	assert.Len(t, h, 64)
	assert.Equal(t, h, mustHash(t, e))
}

func TestHash_IgnoresName(t *testing.T) {
	a := mustHash(t, Entry{Name: "a", JQL: "x"})
	b := mustHash(t, Entry{Name: "b", JQL: "x"})
	assert.Equal(t, a, b)
}

func TestHash_NFCNormalised(t *testing.T) {
	composed := mustHash(t, Entry{JQL: "summary = \"caf\u00e9\""})
	decomposed := mustHash(t, Entry{JQL: "summary = \"cafe\u0301\""})
	assert.Equal(t, composed, decomposed)
}

func TestHash_NilAndEmptyFieldsMatch(t *testing.T) {
	assert.Equal(t,
		mustHash(t, Entry{JQL: "x"}),
		mustHash(t, Entry{JQL: "x", Fields: []string{}}))
}

func TestHash_DistinguishesContent(t *testing.T) {
	base := Entry{JQL: "x", Fields: []string{"a"}, Description: "d"}
	variants := []Entry{
		{JQL: "y", Fields: []string{"a"}, Description: "d"},
		{JQL: "x", Fields: []string{"b"}, Description: "d"},
		{JQL: "x", Fields: []string{"a", "b"}, Description: "d"},
		{JQL: "x", Fields: []string{"a"}, Description: "e"},
		// Field boundaries are part of the content.
		{JQL: "x", Fields: []string{"a", ""}, Description: "d"},
	}

	h := mustHash(t, base)
	for _, v := range variants {
		assert.NotEqual(t, h, mustHash(t, v), "%+v", v)
	}
}

func TestHash_DomainSeparated(t *testing.T) {
	canonical, err := canonicalContent(Entry{JQL: "x"})
	require.NoError(t, err)
	assert.Equal(t, `["x",[],""]`, string(canonical))

	assert.NotEqual(t,
		hashWithDomain(DomainQuery, canonical),
		hashWithDomain("jqlkit/query/v2", canonical))
}

func TestSaveStatus_String(t *testing.T) {
	assert.Equal(t, "created", StatusCreated.String())
	assert.Equal(t, "updated", StatusUpdated.String())
	assert.Equal(t, "unchanged", StatusUnchanged.String())
	assert.Equal(t, "SaveStatus(9)", SaveStatus(9).String())
}
