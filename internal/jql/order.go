package jql

import (
	"slices"
	"strings"
)

// Direction is the sort direction of an ORDER BY term.
type Direction int

const (
	// DefaultDirection leaves the direction out; the server default applies.
	DefaultDirection Direction = iota
	Ascending
	Descending
)

// String returns the JQL token ("ASC", "DESC"), or "" for DefaultDirection.
func (d Direction) String() string {
	switch d {
	case Ascending:
		return "ASC"
	case Descending:
		return "DESC"
	default:
		return ""
	}
}

// ParseDirection maps "asc"/"desc" (any case) and "" to a Direction.
func ParseDirection(s string) (Direction, bool) {
	switch strings.ToUpper(s) {
	case "":
		return DefaultDirection, true
	case "ASC":
		return Ascending, true
	case "DESC":
		return Descending, true
	default:
		return DefaultDirection, false
	}
}

// OrderTerm is one "field [ASC|DESC]" entry of an ORDER BY.
type OrderTerm struct {
	Field     string
	Direction Direction
}

// By creates a term with the server's default direction.
func By(field string) OrderTerm {
	return OrderTerm{Field: field}
}

// Asc creates an ascending term.
func Asc(field string) OrderTerm {
	return OrderTerm{Field: field, Direction: Ascending}
}

// Desc creates a descending term.
func Desc(field string) OrderTerm {
	return OrderTerm{Field: field, Direction: Descending}
}

// Serialize renders the term as "field" or "field DIR".
func (t OrderTerm) Serialize() string {
	dir := t.Direction.String()
	if dir == "" {
		return t.Field
	}
	return t.Field + " " + dir
}

// Ordering is an ordered list of sort terms. Term order is the tie-break
// precedence and is preserved through construction, copying and rendering.
type Ordering struct {
	terms []OrderTerm
}

// OrderBy creates an Ordering from terms. The slice is copied.
func OrderBy(terms ...OrderTerm) Ordering {
	return Ordering{terms: slices.Clone(terms)}
}

// Terms returns a copy of the sort terms.
func (o Ordering) Terms() []OrderTerm {
	return slices.Clone(o.terms)
}

// Len returns the number of sort terms.
func (o Ordering) Len() int {
	return len(o.terms)
}

// IsEmpty reports whether the ordering has no terms.
func (o Ordering) IsEmpty() bool {
	return len(o.terms) == 0
}

// Serialize renders "ORDER BY t1, t2, ...".
// An empty Ordering renders "ORDER BY " on its own; Statement never emits it.
func (o Ordering) Serialize() string {
	var b strings.Builder
	b.WriteString("ORDER BY ")
	for i, t := range o.terms {
		if i > 0 {
			b.WriteString(", ")
		}
		b.WriteString(t.Serialize())
	}
	return b.String()
}
