package querydef

import (
	_ "embed"
	"fmt"
	"strings"

	"cuelang.org/go/cue"
	"cuelang.org/go/cue/cuecontext"
	cueerrors "cuelang.org/go/cue/errors"
	"cuelang.org/go/cue/token"
)

//go:embed schema.cue
var schemaCUE string

// ParseCUE decodes the queries declared under `query:` in a CUE source.
//
// Each query is unified with the embedded #Query schema and must be concrete.
// The query's label is its name unless the body sets `name` itself.
//
//	query: "sre-release": {
//	    where: in: {field: "project", values: ["SRE"]}
//	    order_by: [{field: "created", direction: "desc"}]
//	}
func ParseCUE(data []byte, source string) ([]Definition, error) {
	ctx := cuecontext.New()

	schema := ctx.CompileString(schemaCUE, cue.Filename("querydef/schema.cue"))
	if err := schema.Err(); err != nil {
		// The schema is embedded; failing to compile it is a build defect.
		return nil, fmt.Errorf("compile embedded schema: %w", err)
	}
	querySchema := schema.LookupPath(cue.ParsePath("#Query"))

	v := ctx.CompileBytes(data, cue.Filename(source))
	if err := v.Err(); err != nil {
		return nil, formatCUEError(err, source, "", ErrParse)
	}

	queriesVal := v.LookupPath(cue.ParsePath("query"))
	if !queriesVal.Exists() {
		return nil, nil
	}

	iter, err := queriesVal.Fields()
	if err != nil {
		return nil, formatCUEError(err, source, "", ErrSchema)
	}

	var defs []Definition
	for iter.Next() {
		label := strings.Trim(iter.Label(), `"`)

		unified := querySchema.Unify(iter.Value())
		if err := unified.Validate(cue.Concrete(true)); err != nil {
			return nil, formatCUEError(err, source, label, ErrSchema)
		}

		data, err := unified.MarshalJSON()
		if err != nil {
			return nil, formatCUEError(err, source, label, ErrSchema)
		}

		parsed, err := ParseYAML(data, source)
		if err != nil {
			return nil, err
		}
		for _, def := range parsed {
			if def.Name == "" {
				def.Name = label
			}
			pos := iter.Value().Pos()
			def.Line, def.Column = pos.Line(), pos.Column()
			def.noLines = true
			defs = append(defs, def)
		}
	}

	return defs, nil
}

// formatCUEError converts a CUE error into a DefinitionError positioned at
// the first error, preferring a position inside source over one inside the
// embedded schema.
func formatCUEError(err error, source, query string, kind error) *DefinitionError {
	defErr := &DefinitionError{
		Source:  source,
		Query:   query,
		Message: err.Error(),
		Err:     kind,
	}

	errs := cueerrors.Errors(err)
	if len(errs) == 0 {
		return defErr
	}

	first := errs[0]
	defErr.Message = first.Error()
	if pos, ok := pickPos(cueerrors.Positions(first), source); ok {
		defErr.Line, defErr.Column = pos.Line(), pos.Column()
	}
	return defErr
}

func pickPos(positions []token.Pos, source string) (token.Pos, bool) {
	for _, pos := range positions {
		if pos.IsValid() && pos.Filename() == source {
			return pos, true
		}
	}
	return token.NoPos, false
}
