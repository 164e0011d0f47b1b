package jql

import (
	"fmt"
	"strings"
	"unicode"
)

// ValidationResult contains the lint analysis of a statement.
//
// Lint findings never change how a statement renders. Degenerate forms such
// as "()" and "field IN ()" are rendered as written; the warnings only tell
// the author they probably did not mean them.
type ValidationResult struct {
	// IsClean is true when no warnings were found.
	IsClean bool

	// Warnings lists findings as "<path>: <message>", in tree order.
	Warnings []string
}

// Validate walks a statement and reports constructs that render to
// syntactically valid but suspicious JQL:
//  1. Empty conjunctions, which render "()"
//  2. Empty memberships, which render "field IN ()" (never true)
//  3. An ordering that is present but has no terms
//  4. Missing or blank field names, and field names containing whitespace
//     (JQL needs those quoted, and field names are emitted verbatim)
//  5. Nil clauses or values, which render as nothing
//
// Validate is a pure function with no side effects.
func Validate(stmt Statement) ValidationResult {
	v := &validator{
		warnings: []string{},
	}
	v.validateClause("where", stmt.clause)
	if stmt.ordering != nil {
		v.validateOrdering(*stmt.ordering)
	}

	return ValidationResult{
		IsClean:  len(v.warnings) == 0,
		Warnings: v.warnings,
	}
}

// validator accumulates warnings during traversal.
type validator struct {
	warnings []string
}

func (v *validator) addWarning(path, format string, args ...any) {
	v.warnings = append(v.warnings, path+": "+fmt.Sprintf(format, args...))
}

func (v *validator) validateClause(path string, c Clause) {
	switch clause := c.(type) {
	case nil:
		v.addWarning(path, "nil clause renders as nothing")
	case Conjunction:
		v.validateConjunction(path, clause)
	case *Conjunction:
		if clause == nil {
			v.addWarning(path, "nil clause renders as nothing")
			return
		}
		v.validateConjunction(path, *clause)
	case Equals:
		v.validateComparison(path, clause.Field, clause.Value)
	case *Equals:
		if clause == nil {
			v.addWarning(path, "nil clause renders as nothing")
			return
		}
		v.validateComparison(path, clause.Field, clause.Value)
	case GreaterThanOrEqual:
		v.validateComparison(path, clause.Field, clause.Value)
	case *GreaterThanOrEqual:
		if clause == nil {
			v.addWarning(path, "nil clause renders as nothing")
			return
		}
		v.validateComparison(path, clause.Field, clause.Value)
	case LessThanOrEqual:
		v.validateComparison(path, clause.Field, clause.Value)
	case *LessThanOrEqual:
		if clause == nil {
			v.addWarning(path, "nil clause renders as nothing")
			return
		}
		v.validateComparison(path, clause.Field, clause.Value)
	case Membership:
		v.validateMembership(path, clause)
	case *Membership:
		if clause == nil {
			v.addWarning(path, "nil clause renders as nothing")
			return
		}
		v.validateMembership(path, *clause)
	default:
		v.addWarning(path, "unknown clause type %T", c)
	}
}

func (v *validator) validateConjunction(path string, c Conjunction) {
	if len(c.clauses) == 0 {
		v.addWarning(path, "empty AND renders as \"()\"")
		return
	}
	for i, sub := range c.clauses {
		v.validateClause(fmt.Sprintf("%s.and[%d]", path, i), sub)
	}
}

func (v *validator) validateComparison(path, field string, value Value) {
	v.validateField(path, field)
	v.validateValue(path+".value", value)
}

func (v *validator) validateMembership(path string, m Membership) {
	v.validateField(path, m.field)
	if len(m.values) == 0 {
		v.addWarning(path, "empty IN list renders as \"%s IN ()\" and never matches", m.field)
		return
	}
	for i, val := range m.values {
		v.validateValue(fmt.Sprintf("%s.values[%d]", path, i), val)
	}
}

func (v *validator) validateValue(path string, value Value) {
	switch val := value.(type) {
	case nil:
		v.addWarning(path, "nil value renders as nothing")
	case *Text:
		if val == nil {
			v.addWarning(path, "nil value renders as nothing")
		}
	case *Date:
		if val == nil {
			v.addWarning(path, "nil value renders as nothing")
		}
	}
}

func (v *validator) validateOrdering(o Ordering) {
	if o.IsEmpty() {
		v.addWarning("order_by", "ordering has no terms and is omitted")
		return
	}
	for i, t := range o.terms {
		path := fmt.Sprintf("order_by[%d]", i)
		v.validateField(path, t.Field)
		if t.Direction < DefaultDirection || t.Direction > Descending {
			v.addWarning(path, "unknown direction %d renders as the default", int(t.Direction))
		}
	}
}

// validateField checks a field identifier. Field names are never escaped, so
// anything that would need quoting is worth flagging.
func (v *validator) validateField(path, field string) {
	if strings.TrimSpace(field) == "" {
		v.addWarning(path, "missing field name")
		return
	}
	if strings.IndexFunc(field, unicode.IsSpace) >= 0 {
		v.addWarning(path, "field name %q contains whitespace and is emitted unquoted", field)
	}
}
