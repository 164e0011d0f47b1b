package querydef

import (
	"errors"
	"fmt"
	"regexp"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/roach88/jqlkit/internal/jql"
)

// datePattern matches scalars written as dates.
var datePattern = regexp.MustCompile(`^[0-9]{4}-[0-9]{2}-[0-9]{2}$`)

// Query is a compiled query definition.
type Query struct {
	Name        string
	Description string
	Fields      []string // search field projection (may be empty)
	Statement   jql.Statement
	Source      string
}

// JQL returns the rendered statement.
func (q *Query) JQL() string {
	return q.Statement.Serialize()
}

// Compile turns a Definition into a Query.
//
// Errors are *DefinitionError. Invalid dates wrap the *jql.ValidationError
// raised by the literal constructor, so the cause survives errors.As.
func Compile(def Definition) (*Query, error) {
	c := &compiler{def: &def}

	if strings.TrimSpace(def.Name) == "" {
		return nil, c.errorAt(nil, "name", "name is required", nil)
	}
	if def.Where == nil {
		return nil, c.errorAt(nil, "where", "where clause is required", nil)
	}

	clause, err := c.clause(def.Where, "where")
	if err != nil {
		return nil, err
	}
	stmt := jql.Where(clause)

	if def.OrderBy != nil {
		terms, err := c.orderBy(def.OrderBy)
		if err != nil {
			return nil, err
		}
		stmt = stmt.OrderBy(terms...)
	}

	return &Query{
		Name:        def.Name,
		Description: def.Description,
		Fields:      slices.Clone(def.Fields),
		Statement:   stmt,
		Source:      def.Source,
	}, nil
}

// compiler walks definition nodes and attaches positions to errors.
type compiler struct {
	def *Definition
}

func (c *compiler) errorAt(n *yaml.Node, path, message string, err error) *DefinitionError {
	e := &DefinitionError{
		Source:  c.def.Source,
		Query:   c.def.Name,
		Path:    path,
		Message: message,
		Err:     err,
	}
	// Node positions from CUE sources point into re-encoded JSON; fall back
	// to the query's own position.
	if n != nil && !c.def.noLines {
		e.Line, e.Column = n.Line, n.Column
	} else {
		e.Line, e.Column = c.def.Line, c.def.Column
	}
	return e
}

// clause compiles a single-key mapping: and | eq | gte | lte | in.
func (c *compiler) clause(n *yaml.Node, path string) (jql.Clause, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode || len(n.Content) != 2 {
		return nil, c.errorAt(n, path, "clause must be a mapping with exactly one of: and, eq, gte, lte, in", nil)
	}

	op := n.Content[0].Value
	body := resolve(n.Content[1])
	opPath := path + "." + op

	switch op {
	case "and":
		return c.conjunction(body, opPath)
	case "eq":
		field, value, err := c.comparison(body, opPath)
		if err != nil {
			return nil, err
		}
		return jql.Eq(field, value), nil
	case "gte":
		field, value, err := c.comparison(body, opPath)
		if err != nil {
			return nil, err
		}
		return jql.Gte(field, value), nil
	case "lte":
		field, value, err := c.comparison(body, opPath)
		if err != nil {
			return nil, err
		}
		return jql.Lte(field, value), nil
	case "in":
		return c.membership(body, opPath)
	default:
		return nil, c.errorAt(n.Content[0], path, fmt.Sprintf("unknown clause %q", op), nil)
	}
}

func (c *compiler) conjunction(n *yaml.Node, path string) (jql.Clause, error) {
	if n.Kind != yaml.SequenceNode {
		return nil, c.errorAt(n, path, "and must be a list of clauses", nil)
	}
	clauses := make([]jql.Clause, 0, len(n.Content))
	for i, child := range n.Content {
		sub, err := c.clause(child, fmt.Sprintf("%s[%d]", path, i))
		if err != nil {
			return nil, err
		}
		clauses = append(clauses, sub)
	}
	return jql.And(clauses...), nil
}

func (c *compiler) comparison(n *yaml.Node, path string) (string, jql.Value, error) {
	fields, err := c.fields(n, path, "field", "value")
	if err != nil {
		return "", nil, err
	}
	field, err := c.field(n, fields, path)
	if err != nil {
		return "", nil, err
	}
	valNode, ok := fields["value"]
	if !ok {
		return "", nil, c.errorAt(n, path, "value is required", nil)
	}
	value, err := c.value(valNode, path+".value")
	if err != nil {
		return "", nil, err
	}
	return field, value, nil
}

func (c *compiler) membership(n *yaml.Node, path string) (jql.Clause, error) {
	fields, err := c.fields(n, path, "field", "values")
	if err != nil {
		return nil, err
	}
	field, err := c.field(n, fields, path)
	if err != nil {
		return nil, err
	}

	valuesNode, ok := fields["values"]
	if !ok {
		return nil, c.errorAt(n, path, "values is required (use [] for an empty list)", nil)
	}
	if valuesNode.Kind != yaml.SequenceNode {
		return nil, c.errorAt(valuesNode, path+".values", "values must be a list", nil)
	}

	values := make([]jql.Value, 0, len(valuesNode.Content))
	for i, vn := range valuesNode.Content {
		v, err := c.value(vn, fmt.Sprintf("%s.values[%d]", path, i))
		if err != nil {
			return nil, err
		}
		values = append(values, v)
	}
	return jql.In(field, values...), nil
}

// fields wraps mappingFields with this definition's position info.
func (c *compiler) fields(n *yaml.Node, path string, allowed ...string) (map[string]*yaml.Node, error) {
	fields, err := mappingFields(n, allowed...)
	if err != nil {
		var defErr *DefinitionError
		if errors.As(err, &defErr) {
			pos := &yaml.Node{Line: defErr.Line, Column: defErr.Column}
			return nil, c.errorAt(pos, path, defErr.Message, nil)
		}
		return nil, err
	}
	return fields, nil
}

func (c *compiler) field(parent *yaml.Node, fields map[string]*yaml.Node, path string) (string, error) {
	fn, ok := fields["field"]
	if !ok {
		return "", c.errorAt(parent, path, "field is required", nil)
	}
	name, err := scalarString(fn)
	if err != nil {
		return "", c.errorAt(fn, path+".field", "field "+err.Error(), nil)
	}
	return name, nil
}

// value compiles a literal:
//   - unquoted YAML date scalar → jql.Date (invalid days are errors)
//   - any other non-null scalar → jql.Text (numbers and booleans keep their spelling)
//   - {date: "YYYY-MM-DD"}      → jql.Date
//   - {text: "..."}             → jql.Text
func (c *compiler) value(n *yaml.Node, path string) (jql.Value, error) {
	n = resolve(n)
	switch n.Kind {
	case yaml.ScalarNode:
		switch {
		case n.ShortTag() == "!!null":
			return nil, c.errorAt(n, path, "value must not be null", nil)
		case n.ShortTag() == "!!timestamp", isPlain(n) && datePattern.MatchString(n.Value):
			// A plain 2024-02-30 does not resolve as a timestamp; it is still
			// meant as a date and must fail rather than become text.
			return c.date(n, path)
		default:
			return jql.Text(n.Value), nil
		}

	case yaml.MappingNode:
		fields, err := c.fields(n, path, "date", "text")
		if err != nil {
			return nil, err
		}
		if len(fields) != 1 {
			return nil, c.errorAt(n, path, "value mapping must have exactly one of: date, text", nil)
		}
		if dn, ok := fields["date"]; ok {
			return c.date(dn, path+".date")
		}
		s, err := scalarString(fields["text"])
		if err != nil {
			return nil, c.errorAt(fields["text"], path+".text", "text "+err.Error(), nil)
		}
		return jql.Text(s), nil

	default:
		return nil, c.errorAt(n, path, "value must be a scalar, {date: ...} or {text: ...}", nil)
	}
}

func (c *compiler) date(n *yaml.Node, path string) (jql.Value, error) {
	s, err := scalarString(n)
	if err != nil {
		return nil, c.errorAt(n, path, "date "+err.Error(), nil)
	}
	d, err := jql.ParseDate(s)
	if err != nil {
		return nil, c.errorAt(n, path, "invalid date", err)
	}
	return d, nil
}

// isPlain reports whether a scalar was written without quotes.
func isPlain(n *yaml.Node) bool {
	return n.Style&(yaml.DoubleQuotedStyle|yaml.SingleQuotedStyle|yaml.LiteralStyle|yaml.FoldedStyle) == 0
}

// orderBy compiles a sequence of terms. Each term is either a mapping
// {field, direction?} or a scalar "field" / "field DESC".
func (c *compiler) orderBy(n *yaml.Node) ([]jql.OrderTerm, error) {
	n = resolve(n)
	if n.Kind != yaml.SequenceNode {
		return nil, c.errorAt(n, "order_by", "order_by must be a list", nil)
	}

	terms := make([]jql.OrderTerm, 0, len(n.Content))
	for i, tn := range n.Content {
		path := fmt.Sprintf("order_by[%d]", i)
		term, err := c.orderTerm(resolve(tn), path)
		if err != nil {
			return nil, err
		}
		terms = append(terms, term)
	}
	return terms, nil
}

func (c *compiler) orderTerm(n *yaml.Node, path string) (jql.OrderTerm, error) {
	var field, dir string

	switch n.Kind {
	case yaml.ScalarNode:
		parts := strings.Fields(n.Value)
		switch len(parts) {
		case 1:
			field = parts[0]
		case 2:
			field, dir = parts[0], parts[1]
		default:
			return jql.OrderTerm{}, c.errorAt(n, path, fmt.Sprintf("order term %q must be \"field\" or \"field ASC|DESC\"", n.Value), nil)
		}

	case yaml.MappingNode:
		fields, err := c.fields(n, path, "field", "direction")
		if err != nil {
			return jql.OrderTerm{}, err
		}
		if field, err = c.field(n, fields, path); err != nil {
			return jql.OrderTerm{}, err
		}
		if dn, ok := fields["direction"]; ok {
			if dir, err = scalarString(dn); err != nil {
				return jql.OrderTerm{}, c.errorAt(dn, path+".direction", "direction "+err.Error(), nil)
			}
		}

	default:
		return jql.OrderTerm{}, c.errorAt(n, path, "order term must be a string or {field, direction}", nil)
	}

	direction, ok := jql.ParseDirection(dir)
	if !ok {
		return jql.OrderTerm{}, c.errorAt(n, path, fmt.Sprintf("invalid direction %q, must be asc or desc", dir), nil)
	}
	return jql.OrderTerm{Field: field, Direction: direction}, nil
}
