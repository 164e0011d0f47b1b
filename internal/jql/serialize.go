package jql

import (
	"fmt"
	"slices"
	"strings"
)

// SerializeValue renders a literal.
//
//	Text("Hello world")  → "Hello world"
//	Text("^latest")      → "\\^latest"
//	Date 2024-03-09      → "2024-03-09"
//
// A nil value renders as the empty string; Validate reports it.
func SerializeValue(v Value) string {
	var b strings.Builder
	writeValue(&b, v)
	return b.String()
}

// SerializeClause renders a clause tree.
//
//	And()                                   → ()
//	In("project")                           → project IN ()
//	In("project", Text("PE"), Text("SRE"))  → project IN ("PE", "SRE")
//	And(In("project", Text("SRE")))         → (project IN ("SRE"))
//
// A nil clause renders as the empty string; Validate reports it.
func SerializeClause(c Clause) string {
	var b strings.Builder
	writeClause(&b, c)
	return b.String()
}

func writeValue(b *strings.Builder, v Value) {
	switch val := v.(type) {
	case nil:
	case Text:
		b.WriteString(EscapeText(string(val)))
	case *Text:
		if val != nil {
			b.WriteString(EscapeText(string(*val)))
		}
	case Date:
		writeDate(b, val)
	case *Date:
		if val != nil {
			writeDate(b, *val)
		}
	default:
		// Unreachable: Value is sealed.
		panic(fmt.Sprintf("jql: unhandled value type %T", v))
	}
}

// writeDate quotes the date without escaping; digits and '-' are never
// reserved inside a quoted literal.
func writeDate(b *strings.Builder, d Date) {
	b.WriteByte('"')
	b.WriteString(d.String())
	b.WriteByte('"')
}

func writeClause(b *strings.Builder, c Clause) {
	switch clause := c.(type) {
	case nil:
	case Conjunction:
		writeConjunction(b, clause)
	case *Conjunction:
		if clause != nil {
			writeConjunction(b, *clause)
		}
	case Equals:
		writeComparison(b, clause.Field, "=", clause.Value)
	case *Equals:
		if clause != nil {
			writeComparison(b, clause.Field, "=", clause.Value)
		}
	case GreaterThanOrEqual:
		writeComparison(b, clause.Field, ">=", clause.Value)
	case *GreaterThanOrEqual:
		if clause != nil {
			writeComparison(b, clause.Field, ">=", clause.Value)
		}
	case LessThanOrEqual:
		writeComparison(b, clause.Field, "<=", clause.Value)
	case *LessThanOrEqual:
		if clause != nil {
			writeComparison(b, clause.Field, "<=", clause.Value)
		}
	case Membership:
		writeMembership(b, clause)
	case *Membership:
		if clause != nil {
			writeMembership(b, *clause)
		}
	default:
		// Unreachable: Clause is sealed.
		panic(fmt.Sprintf("jql: unhandled clause type %T", c))
	}
}

func writeConjunction(b *strings.Builder, c Conjunction) {
	b.WriteByte('(')
	for i, sub := range c.clauses {
		if i > 0 {
			b.WriteString(" AND ")
		}
		writeClause(b, sub)
	}
	b.WriteByte(')')
}

func writeComparison(b *strings.Builder, field, op string, v Value) {
	b.WriteString(field)
	b.WriteByte(' ')
	b.WriteString(op)
	b.WriteByte(' ')
	writeValue(b, v)
}

func writeMembership(b *strings.Builder, m Membership) {
	b.WriteString(m.field)
	b.WriteString(" IN (")
	for i, v := range m.values {
		if i > 0 {
			b.WriteString(", ")
		}
		writeValue(b, v)
	}
	b.WriteByte(')')
}

// CloneValue returns an independent copy of v.
func CloneValue(v Value) Value {
	switch val := v.(type) {
	case *Text:
		if val == nil {
			return val
		}
		cp := *val
		return &cp
	case *Date:
		if val == nil {
			return val
		}
		cp := *val
		return &cp
	default:
		// Text and Date are plain values; assignment already copies them.
		return v
	}
}

// CloneClause returns a deep copy of c. Pointer variants are copied into new
// pointers so the clone shares nothing with the original.
func CloneClause(c Clause) Clause {
	switch clause := c.(type) {
	case nil:
		return nil
	case Conjunction:
		return cloneConjunction(clause)
	case *Conjunction:
		if clause == nil {
			return clause
		}
		cp := cloneConjunction(*clause)
		return &cp
	case Equals:
		return Equals{Field: clause.Field, Value: CloneValue(clause.Value)}
	case *Equals:
		if clause == nil {
			return clause
		}
		return &Equals{Field: clause.Field, Value: CloneValue(clause.Value)}
	case GreaterThanOrEqual:
		return GreaterThanOrEqual{Field: clause.Field, Value: CloneValue(clause.Value)}
	case *GreaterThanOrEqual:
		if clause == nil {
			return clause
		}
		return &GreaterThanOrEqual{Field: clause.Field, Value: CloneValue(clause.Value)}
	case LessThanOrEqual:
		return LessThanOrEqual{Field: clause.Field, Value: CloneValue(clause.Value)}
	case *LessThanOrEqual:
		if clause == nil {
			return clause
		}
		return &LessThanOrEqual{Field: clause.Field, Value: CloneValue(clause.Value)}
	case Membership:
		return cloneMembership(clause)
	case *Membership:
		if clause == nil {
			return clause
		}
		cp := cloneMembership(*clause)
		return &cp
	default:
		panic(fmt.Sprintf("jql: unhandled clause type %T", c))
	}
}

func cloneConjunction(c Conjunction) Conjunction {
	if c.clauses == nil {
		return Conjunction{}
	}
	clauses := make([]Clause, len(c.clauses))
	for i, sub := range c.clauses {
		clauses[i] = CloneClause(sub)
	}
	return Conjunction{clauses: clauses}
}

func cloneMembership(m Membership) Membership {
	if m.values == nil {
		return Membership{field: m.field}
	}
	values := slices.Clone(m.values)
	for i, v := range values {
		values[i] = CloneValue(v)
	}
	return Membership{field: m.field, values: values}
}
