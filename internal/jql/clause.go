package jql

import "slices"

// Clause is a sealed interface over JQL boolean and comparison expressions.
//
// Clause variants:
//   - Conjunction: (c1 AND c2 AND ... AND cN)
//   - Equals: field = value
//   - GreaterThanOrEqual: field >= value
//   - LessThanOrEqual: field <= value
//   - Membership: field IN (v1, v2, ...)
//
// A clause tree is built bottom-up and owns its children exclusively; there
// are no back-references, so it can never contain a cycle.
type Clause interface {
	clauseNode() // Sealed - only types in this package implement it
}

// Conjunction is a logical AND over zero or more clauses.
//
// Semantics:
//
//	(<clause1> AND <clause2> AND ... AND <clauseN>)
//
// An empty conjunction renders as "()". That is accepted pass-through, not an
// error; Validate reports it as a warning.
//
// Build with And. The zero Conjunction is empty.
type Conjunction struct {
	clauses []Clause
}

func (Conjunction) clauseNode() {}

// And creates a Conjunction over clauses, preserving their order.
// The clauses are copied in value form; later changes to the slice or to
// anything its pointers reach do not affect the Conjunction.
func And(clauses ...Clause) Conjunction {
	owned := make([]Clause, len(clauses))
	for i, c := range clauses {
		owned[i] = ownClause(c)
	}
	return Conjunction{clauses: owned}
}

// Clauses returns a copy of the conjoined clauses.
func (c Conjunction) Clauses() []Clause {
	return slices.Clone(c.clauses)
}

// Len returns the number of conjoined clauses.
func (c Conjunction) Len() int {
	return len(c.clauses)
}

// Equals represents "field = value".
type Equals struct {
	Field string // Emitted verbatim
	Value Value
}

func (Equals) clauseNode() {}

// Eq creates an Equals clause.
func Eq(field string, value Value) Equals {
	return Equals{Field: field, Value: ownValue(value)}
}

// GreaterThanOrEqual represents "field >= value".
type GreaterThanOrEqual struct {
	Field string // Emitted verbatim
	Value Value
}

func (GreaterThanOrEqual) clauseNode() {}

// Gte creates a GreaterThanOrEqual clause.
func Gte(field string, value Value) GreaterThanOrEqual {
	return GreaterThanOrEqual{Field: field, Value: ownValue(value)}
}

// LessThanOrEqual represents "field <= value".
type LessThanOrEqual struct {
	Field string // Emitted verbatim
	Value Value
}

func (LessThanOrEqual) clauseNode() {}

// Lte creates a LessThanOrEqual clause.
func Lte(field string, value Value) LessThanOrEqual {
	return LessThanOrEqual{Field: field, Value: ownValue(value)}
}

// Membership represents "field is one of these values".
//
// Semantics:
//
//	<field> IN (<value1>, <value2>, ..., <valueN>)
//
// With no values it renders "field IN ()", which the search grammar treats as
// never true. Build with In.
type Membership struct {
	field  string
	values []Value
}

func (Membership) clauseNode() {}

// In creates a Membership clause, preserving value order.
// The values are copied in value form.
func In(field string, values ...Value) Membership {
	owned := make([]Value, len(values))
	for i, v := range values {
		owned[i] = ownValue(v)
	}
	return Membership{field: field, values: owned}
}

// InText is In over plain text values.
func InText(field string, values ...string) Membership {
	vals := make([]Value, len(values))
	for i, v := range values {
		vals[i] = Text(v)
	}
	return Membership{field: field, values: vals}
}

// Field returns the field name.
func (m Membership) Field() string {
	return m.field
}

// Values returns a copy of the candidate values.
func (m Membership) Values() []Value {
	return slices.Clone(m.values)
}

// ownClause returns c in value form, dereferencing pointer variants, so the
// result shares nothing the caller can still write through. A nil pointer
// becomes a nil Clause; both render as nothing.
//
// Conjunction and Membership values need no copy: their slices are private
// and were already owned when And or In built them.
func ownClause(c Clause) Clause {
	switch clause := c.(type) {
	case *Conjunction:
		if clause == nil {
			return nil
		}
		return *clause
	case Equals:
		return Equals{Field: clause.Field, Value: ownValue(clause.Value)}
	case *Equals:
		if clause == nil {
			return nil
		}
		return Equals{Field: clause.Field, Value: ownValue(clause.Value)}
	case GreaterThanOrEqual:
		return GreaterThanOrEqual{Field: clause.Field, Value: ownValue(clause.Value)}
	case *GreaterThanOrEqual:
		if clause == nil {
			return nil
		}
		return GreaterThanOrEqual{Field: clause.Field, Value: ownValue(clause.Value)}
	case LessThanOrEqual:
		return LessThanOrEqual{Field: clause.Field, Value: ownValue(clause.Value)}
	case *LessThanOrEqual:
		if clause == nil {
			return nil
		}
		return LessThanOrEqual{Field: clause.Field, Value: ownValue(clause.Value)}
	case *Membership:
		if clause == nil {
			return nil
		}
		return *clause
	default:
		// nil, Conjunction, Membership
		return c
	}
}

// ownValue returns v in value form.
func ownValue(v Value) Value {
	switch val := v.(type) {
	case *Text:
		if val == nil {
			return nil
		}
		return *val
	case *Date:
		if val == nil {
			return nil
		}
		return *val
	default:
		return v
	}
}
