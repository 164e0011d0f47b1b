package jql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_CleanStatement(t *testing.T) {
	stmt := Where(And(
		In("project", Text("SRE")),
		Gte("created", MustDate(2024, time.January, 1)),
	)).OrderBy(Desc("created"))

	result := Validate(stmt)

	assert.True(t, result.IsClean)
	assert.Empty(t, result.Warnings)
}

func TestValidate_EmptyConjunction(t *testing.T) {
	result := Validate(Where(And()))

	assert.False(t, result.IsClean)
	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "where:")
	assert.Contains(t, result.Warnings[0], `"()"`)
}

func TestValidate_EmptyMembership(t *testing.T) {
	result := Validate(Where(And(Eq("a", Text("1")), In("project"))))

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "where.and[1]")
	assert.Contains(t, result.Warnings[0], "project IN ()")
}

func TestValidate_EmptyOrdering(t *testing.T) {
	result := Validate(Where(Eq("a", Text("1"))).OrderBy())

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "order_by")
	assert.Contains(t, result.Warnings[0], "no terms")
}

func TestValidate_FieldNames(t *testing.T) {
	stmt := Where(And(
		Eq("", Text("x")),
		Eq("Story Points", Text("3")),
	)).OrderBy(By(" "))

	result := Validate(stmt)

	require.Len(t, result.Warnings, 3)
	assert.Contains(t, result.Warnings[0], "where.and[0]: missing field name")
	assert.Contains(t, result.Warnings[1], "whitespace")
	assert.Contains(t, result.Warnings[2], "order_by[0]: missing field name")
}

func TestValidate_NilNodes(t *testing.T) {
	var eq *Equals
	stmt := Where(And(nil, eq, Eq("a", nil), In("b", Text("ok"), nil)))

	result := Validate(stmt)

	require.Len(t, result.Warnings, 4)
	assert.Equal(t, "where.and[0]: nil clause renders as nothing", result.Warnings[0])
	assert.Equal(t, "where.and[1]: nil clause renders as nothing", result.Warnings[1])
	assert.Equal(t, "where.and[2].value: nil value renders as nothing", result.Warnings[2])
	assert.Equal(t, "where.and[3].values[1]: nil value renders as nothing", result.Warnings[3])
}

func TestValidate_UnknownDirection(t *testing.T) {
	stmt := Where(Eq("a", Text("1"))).OrderBy(OrderTerm{Field: "a", Direction: Direction(9)})

	result := Validate(stmt)

	require.Len(t, result.Warnings, 1)
	assert.Contains(t, result.Warnings[0], "unknown direction 9")
}

func TestValidate_DoesNotChangeRendering(t *testing.T) {
	stmt := Where(And(In("project"))).OrderBy()
	before := stmt.Serialize()

	_ = Validate(stmt)

	assert.Equal(t, before, stmt.Serialize())
	assert.Equal(t, `(project IN ())`, before)
}
