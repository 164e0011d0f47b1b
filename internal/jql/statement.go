package jql

import (
	"bytes"
	"encoding/json"
	"slices"
)

// Statement is a complete JQL query: one clause plus an optional ordering.
// It is the unit handed to a search request.
//
// Statements are immutable values. OrderBy returns a new Statement rather
// than changing the receiver.
type Statement struct {
	clause   Clause
	ordering *Ordering // nil = no ORDER BY
}

// NewStatement pairs a clause with an optional ordering (nil for none).
// The clause is taken in value form and the ordering is copied, so nothing
// the caller still holds can change the Statement.
func NewStatement(clause Clause, ordering *Ordering) Statement {
	s := Statement{clause: ownClause(clause)}
	if ordering != nil {
		o := OrderBy(ordering.terms...)
		s.ordering = &o
	}
	return s
}

// Where starts a Statement with no ordering.
func Where(clause Clause) Statement {
	return Statement{clause: ownClause(clause)}
}

// OrderBy returns a copy of s ordered by terms.
// Calling it with no terms keeps an empty Ordering, which renders exactly as
// no ordering at all.
func (s Statement) OrderBy(terms ...OrderTerm) Statement {
	o := OrderBy(terms...)
	s.ordering = &o
	return s
}

// Clause returns the statement's root clause.
func (s Statement) Clause() Clause {
	return s.clause
}

// Ordering returns the statement's ordering, and false if none was set.
func (s Statement) Ordering() (Ordering, bool) {
	if s.ordering == nil {
		return Ordering{}, false
	}
	return OrderBy(s.ordering.terms...), true
}

// Serialize renders the statement.
//
// The ordering is appended after a single space only when present and
// non-empty:
//
//	(project IN ("SRE")) ORDER BY createdDate DESC
//
// Serialize is pure and safe for concurrent use.
func (s Statement) Serialize() string {
	text := SerializeClause(s.clause)
	if s.ordering == nil || s.ordering.IsEmpty() {
		return text
	}
	return text + " " + s.ordering.Serialize()
}

// String implements fmt.Stringer.
func (s Statement) String() string {
	return s.Serialize()
}

// MarshalJSON renders the statement as a JSON string, the form the "jql"
// member of a search request carries. Comparison operators are left
// unescaped; an enclosing json.Marshal may still escape them.
func (s Statement) MarshalJSON() ([]byte, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(s.Serialize()); err != nil {
		return nil, err
	}
	return bytes.TrimSuffix(buf.Bytes(), []byte("\n")), nil
}

// Clone returns a deep copy of s. The copy serializes byte-identically.
func (s Statement) Clone() Statement {
	c := Statement{clause: CloneClause(s.clause)}
	if s.ordering != nil {
		o := Ordering{terms: slices.Clone(s.ordering.terms)}
		c.ordering = &o
	}
	return c
}
