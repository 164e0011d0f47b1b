// Package querydef loads query definitions from files and compiles them to
// jql.Statement values.
//
// Three formats are accepted, chosen by file extension:
//
//	.cue         queries under `query: <name>: {...}`, unified with #Query
//	.yaml, .yml  one definition, or a list under `queries:`
//	.json        same layout as YAML
//
// Definition layout:
//
//	name: sre-release
//	description: Open SRE work for the current release
//	fields: [summary, status]
//	where:
//	  and:
//	    - in: {field: project, values: [SRE]}
//	    - gte: {field: created, value: 2024-01-01}
//	order_by:
//	  - {field: created, direction: desc}
//	  - key
//
// Values are text unless written as an unquoted YAML date (2024-01-01) or as
// {date: "2024-01-01"}. A quoted "2024-01-01" stays text. {text: ...} forces
// text explicitly.
//
// Every format is decoded through yaml.v3 nodes (JSON is a subset of YAML, and
// CUE values are exported as JSON after schema validation), so one walker
// compiles all of them. YAML sources report line:column positions on errors;
// CUE sources report positions from the CUE schema check.
package querydef
