package querydef

import (
	"errors"
	"fmt"
	"strings"

	"gopkg.in/yaml.v3"
)

// Sentinel errors wrapped by LoadError and DefinitionError.
var (
	ErrNotFound      = errors.New("path not found")
	ErrNoFiles       = errors.New("no query definition files found")
	ErrParse         = errors.New("parse failed")
	ErrSchema        = errors.New("schema violation")
	ErrDuplicateName = errors.New("duplicate query name")
)

// Definition is a query definition as written in a file, before
// compilation. Where and OrderBy keep their YAML nodes so compile errors can
// point at the offending line.
type Definition struct {
	Name        string
	Description string
	Fields      []string
	Where       *yaml.Node // required
	OrderBy     *yaml.Node // optional sequence of order terms

	Source string // file the definition came from ("" for in-memory)
	Line   int    // position of the definition in Source (0 = unknown)
	Column int

	noLines bool // positions inside the nodes are not meaningful (CUE sources)
}

// DefinitionError reports a definition that cannot be compiled.
type DefinitionError struct {
	Source  string
	Line    int // 0 when unknown
	Column  int
	Query   string // query name, if known
	Path    string // location inside the definition, e.g. "where.and[1].in"
	Message string
	Err     error // underlying error (optional)
}

func (e *DefinitionError) Error() string {
	var b strings.Builder
	switch {
	case e.Source != "" && e.Line > 0:
		fmt.Fprintf(&b, "%s:%d:%d: ", e.Source, e.Line, e.Column)
	case e.Source != "":
		fmt.Fprintf(&b, "%s: ", e.Source)
	}
	if e.Query != "" {
		fmt.Fprintf(&b, "query %q: ", e.Query)
	}
	if e.Path != "" {
		b.WriteString(e.Path)
		b.WriteString(": ")
	}
	b.WriteString(e.Message)
	if e.Err != nil {
		fmt.Fprintf(&b, ": %v", e.Err)
	}
	return b.String()
}

func (e *DefinitionError) Unwrap() error {
	return e.Err
}

// definitionKeys are the keys accepted at the top of a definition.
var definitionKeys = []string{"name", "description", "fields", "where", "order_by"}

// ParseYAML decodes one or more definitions from YAML (or JSON) bytes.
// The document is either a single definition or a mapping with a
// `queries:` sequence. source is used for error messages only.
func ParseYAML(data []byte, source string) ([]Definition, error) {
	var doc yaml.Node
	if err := yaml.Unmarshal(data, &doc); err != nil {
		return nil, &DefinitionError{Source: source, Message: "invalid YAML", Err: errors.Join(ErrParse, err)}
	}
	if doc.Kind == 0 || len(doc.Content) == 0 {
		return nil, &DefinitionError{Source: source, Message: "empty document", Err: ErrParse}
	}

	root := resolve(doc.Content[0])
	if root.Kind != yaml.MappingNode {
		return nil, nodeError(source, root, "", "", "document must be a mapping")
	}

	if queries := lookup(root, "queries"); queries != nil {
		if len(root.Content) != 2 {
			return nil, nodeError(source, root, "", "", "a document with `queries` must not have other keys")
		}
		queries = resolve(queries)
		if queries.Kind != yaml.SequenceNode {
			return nil, nodeError(source, queries, "", "queries", "must be a sequence")
		}
		defs := make([]Definition, 0, len(queries.Content))
		for i, item := range queries.Content {
			def, err := decodeDefinition(resolve(item), source)
			if err != nil {
				var defErr *DefinitionError
				if errors.As(err, &defErr) && defErr.Path == "" {
					defErr.Path = fmt.Sprintf("queries[%d]", i)
				}
				return nil, err
			}
			defs = append(defs, def)
		}
		return defs, nil
	}

	def, err := decodeDefinition(root, source)
	if err != nil {
		return nil, err
	}
	return []Definition{def}, nil
}

// decodeDefinition reads a single definition mapping.
func decodeDefinition(n *yaml.Node, source string) (Definition, error) {
	def := Definition{Source: source, Line: n.Line, Column: n.Column}

	if n.Kind != yaml.MappingNode {
		return def, nodeError(source, n, "", "", "definition must be a mapping")
	}
	fields, err := mappingFields(n, definitionKeys...)
	if err != nil {
		return def, withSource(err, source, "")
	}

	if v, ok := fields["name"]; ok {
		if def.Name, err = scalarString(v); err != nil {
			return def, nodeError(source, v, "", "name", err.Error())
		}
	}
	if v, ok := fields["description"]; ok {
		if def.Description, err = scalarString(v); err != nil {
			return def, nodeError(source, v, def.Name, "description", err.Error())
		}
	}
	if v, ok := fields["fields"]; ok {
		if err := v.Decode(&def.Fields); err != nil {
			return def, nodeError(source, v, def.Name, "fields", "must be a list of field names")
		}
	}
	def.Where = fields["where"]
	def.OrderBy = fields["order_by"]

	return def, nil
}

// resolve follows YAML aliases to the anchored node.
func resolve(n *yaml.Node) *yaml.Node {
	for n != nil && n.Kind == yaml.AliasNode {
		n = n.Alias
	}
	return n
}

// lookup returns the value node for key in a mapping, or nil.
func lookup(n *yaml.Node, key string) *yaml.Node {
	for i := 0; i+1 < len(n.Content); i += 2 {
		if n.Content[i].Value == key {
			return n.Content[i+1]
		}
	}
	return nil
}

// mappingFields collects a mapping's values by key, rejecting unknown and
// repeated keys. Returned nodes are alias-resolved.
func mappingFields(n *yaml.Node, allowed ...string) (map[string]*yaml.Node, error) {
	n = resolve(n)
	if n.Kind != yaml.MappingNode {
		return nil, &DefinitionError{Line: n.Line, Column: n.Column, Message: "must be a mapping"}
	}

	fields := make(map[string]*yaml.Node, len(n.Content)/2)
	for i := 0; i+1 < len(n.Content); i += 2 {
		key := n.Content[i]
		if !contains(allowed, key.Value) {
			return nil, &DefinitionError{
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("unknown key %q (allowed: %s)", key.Value, strings.Join(allowed, ", ")),
			}
		}
		if _, dup := fields[key.Value]; dup {
			return nil, &DefinitionError{
				Line:    key.Line,
				Column:  key.Column,
				Message: fmt.Sprintf("key %q repeated", key.Value),
			}
		}
		fields[key.Value] = resolve(n.Content[i+1])
	}
	return fields, nil
}

func scalarString(n *yaml.Node) (string, error) {
	n = resolve(n)
	if n.Kind != yaml.ScalarNode || n.ShortTag() == "!!null" {
		return "", errors.New("must be a string")
	}
	return n.Value, nil
}

func contains(list []string, s string) bool {
	for _, v := range list {
		if v == s {
			return true
		}
	}
	return false
}

func nodeError(source string, n *yaml.Node, query, path, message string) *DefinitionError {
	return &DefinitionError{
		Source:  source,
		Line:    n.Line,
		Column:  n.Column,
		Query:   query,
		Path:    path,
		Message: message,
	}
}

// withSource fills in the source and query of a DefinitionError produced by
// a helper that only knew the node.
func withSource(err error, source, query string) error {
	var defErr *DefinitionError
	if errors.As(err, &defErr) {
		defErr.Source = source
		if defErr.Query == "" {
			defErr.Query = query
		}
	}
	return err
}
