package jql

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSerializeClause_Membership(t *testing.T) {
	testCases := []struct {
		name   string
		clause Clause
		want   string
	}{
		{name: "empty", clause: In("project"), want: `project IN ()`},
		{name: "single", clause: In("project", Text("SRE")), want: `project IN ("SRE")`},
		{name: "two", clause: In("project", Text("PE"), Text("SRE")), want: `project IN ("PE", "SRE")`},
		{name: "text helper", clause: InText("labels", "v2022.5.10", "v2022.6.13"), want: `labels IN ("v2022.5.10", "v2022.6.13")`},
		{name: "escaped values", clause: InText("labels", "a-b", "c:d"), want: `labels IN ("a\\-b", "c\\:d")`},
		{name: "mixed kinds", clause: In("due", Text("x"), MustDate(2024, time.May, 1)), want: `due IN ("x", "2024-05-01")`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SerializeClause(tc.clause))
		})
	}
}

func TestSerializeClause_Comparisons(t *testing.T) {
	d := MustDate(2023, time.December, 31)

	assert.Equal(t, `status = "In Progress"`, SerializeClause(Eq("status", Text("In Progress"))))
	assert.Equal(t, `created >= "2023-12-31"`, SerializeClause(Gte("created", d)))
	assert.Equal(t, `created <= "2023-12-31"`, SerializeClause(Lte("created", d)))
	assert.Equal(t, `summary = "\\(wip\\)"`, SerializeClause(Equals{Field: "summary", Value: Text("(wip)")}))
}

func TestSerializeClause_FieldEmittedVerbatim(t *testing.T) {
	// Field names are schema identifiers; they are never escaped.
	assert.Equal(t, `cf[10002] = "x"`, SerializeClause(Eq("cf[10002]", Text("x"))))
}

func TestSerializeClause_Conjunction(t *testing.T) {
	testCases := []struct {
		name   string
		clause Clause
		want   string
	}{
		{name: "empty", clause: And(), want: `()`},
		{name: "zero value", clause: Conjunction{}, want: `()`},
		{name: "single", clause: And(In("project", Text("SRE"))), want: `(project IN ("SRE"))`},
		{
			name: "two",
			clause: And(
				In("project", Text("SRE")),
				In("labels", Text("v2022.5.10"), Text("v2022.6.13")),
			),
			want: `(project IN ("SRE") AND labels IN ("v2022.5.10", "v2022.6.13"))`,
		},
		{
			name:   "nested",
			clause: And(Eq("a", Text("1")), And(Eq("b", Text("2")), Eq("c", Text("3")))),
			want:   `(a = "1" AND (b = "2" AND c = "3"))`,
		},
		{name: "nested empty", clause: And(And(), In("x")), want: `(() AND x IN ())`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, SerializeClause(tc.clause))
		})
	}
}

func TestSerializeClause_PointerForms(t *testing.T) {
	conj := And(
		&Equals{Field: "a", Value: Text("1")},
		&GreaterThanOrEqual{Field: "b", Value: Text("2")},
		&LessThanOrEqual{Field: "c", Value: Text("3")},
	)
	m := In("d", Text("4"))

	assert.Equal(t, `(a = "1" AND b >= "2" AND c <= "3")`, SerializeClause(&conj))
	assert.Equal(t, `d IN ("4")`, SerializeClause(&m))
}

func TestSerializeClause_Nil(t *testing.T) {
	assert.Equal(t, "", SerializeClause(nil))

	var eq *Equals
	assert.Equal(t, "", SerializeClause(eq))
}

func TestSerializeClause_DeepTree(t *testing.T) {
	var c Clause = Eq("leaf", Text("x"))
	for i := 0; i < 1000; i++ {
		c = And(c)
	}

	out := SerializeClause(c)
	assert.Len(t, out, len(`leaf = "x"`)+2000)
	assert.Equal(t, byte('('), out[0])
	assert.Equal(t, byte(')'), out[len(out)-1])
}

func TestAnd_CopiesInput(t *testing.T) {
	clauses := []Clause{Eq("a", Text("1")), Eq("b", Text("2"))}
	conj := And(clauses...)

	clauses[0] = Eq("changed", Text("!"))

	assert.Equal(t, `(a = "1" AND b = "2")`, SerializeClause(conj))
	assert.Equal(t, 2, conj.Len())
}

func TestConjunction_ClausesReturnsCopy(t *testing.T) {
	conj := And(Eq("a", Text("1")))

	got := conj.Clauses()
	got[0] = Eq("changed", Text("!"))

	assert.Equal(t, `(a = "1")`, SerializeClause(conj))
}

func TestAnd_OwnsPointerClauses(t *testing.T) {
	eq := &Equals{Field: "project", Value: Text("SRE")}
	gte := &GreaterThanOrEqual{Field: "created", Value: Text("a")}
	inner := In("labels", Text("v1"))
	conj := And(eq, gte, &inner)

	eq.Field = "labels"
	eq.Value = Text("OPS")
	gte.Value = nil
	inner = In("labels", Text("v2"))

	assert.Equal(t, `(project = "SRE" AND created >= "a" AND labels IN ("v1"))`, SerializeClause(conj))
	stored := conj.Clauses()
	assert.IsType(t, Equals{}, stored[0])
	assert.IsType(t, GreaterThanOrEqual{}, stored[1])
	assert.IsType(t, Membership{}, stored[2])
}

func TestAnd_NilPointerClause(t *testing.T) {
	var eq *Equals
	conj := And(eq)

	assert.Equal(t, "()", SerializeClause(conj))
	assert.Nil(t, conj.Clauses()[0])
}

func TestComparisons_OwnPointerValues(t *testing.T) {
	txt := Text("a")
	d := MustDate(2024, time.January, 2)
	eq := Eq("summary", &txt)
	lte := Lte("due", &d)

	txt = "b"
	d = MustDate(2030, time.December, 31)

	assert.Equal(t, `summary = "a"`, SerializeClause(eq))
	assert.Equal(t, `due <= "2024-01-02"`, SerializeClause(lte))
	assert.Equal(t, Text("a"), eq.Value, "stored in value form")
}

func TestIn_OwnsPointerValues(t *testing.T) {
	txt := Text("a")
	m := In("f", &txt, (*Text)(nil))

	txt = "b"

	assert.Equal(t, `f IN ("a", )`, SerializeClause(m))
	assert.Nil(t, m.Values()[1])
}

func TestIn_CopiesInput(t *testing.T) {
	values := []Value{Text("PE"), Text("SRE")}
	m := In("project", values...)

	values[1] = Text("OPS")
	m.Values()[0] = Text("XX")

	assert.Equal(t, "project", m.Field())
	assert.Equal(t, `project IN ("PE", "SRE")`, SerializeClause(m))
}

func TestCloneClause(t *testing.T) {
	orig := And(
		In("project", Text("SRE")),
		Eq("labels", Text("v1")),
		Gte("created", MustDate(2024, time.January, 2)),
		Lte("updated", MustDate(2024, time.February, 3)),
	)

	cp := CloneClause(orig)
	assert.Equal(t, SerializeClause(orig), SerializeClause(cp))
}

func TestCloneClause_PointerForms(t *testing.T) {
	label := Text("v1")
	orig := &Equals{Field: "labels", Value: &label}

	cp := CloneClause(orig)
	require.Equal(t, SerializeClause(orig), SerializeClause(cp))

	// Writes through the original's pointers must not reach the clone.
	label = "v2"
	orig.Field = "fixVersion"
	assert.Equal(t, `fixVersion = "v2"`, SerializeClause(orig))
	assert.Equal(t, `labels = "v1"`, SerializeClause(cp))
}

func TestCloneClause_Nil(t *testing.T) {
	assert.Nil(t, CloneClause(nil))
}
