// Package jql builds Jira Query Language statements as an abstract syntax
// tree and renders them to their exact textual form.
//
// ARCHITECTURE:
//
// The package is layered leaves first:
//
//	[EscapeText] → [Value] → [Clause] → [Ordering] → [Statement]
//
// Callers build Values, compose them into Clauses, wrap a Clause and an
// optional Ordering into a Statement, then ask the Statement for its text.
// Nothing in this package performs I/O; the search package consumes the
// rendered text.
//
// SEALED INTERFACES:
//
// Value and Clause are sealed interfaces using the marker method pattern.
// Only types in this package implement them, so the serializer's type
// switches are exhaustive. A new variant must add a case to SerializeValue or
// SerializeClause (and to CloneValue/CloneClause) before it renders.
//
//	switch c := clause.(type) {
//	case Conjunction:
//	    // (a AND b)
//	case Equals, GreaterThanOrEqual, LessThanOrEqual:
//	    // field op value
//	case Membership:
//	    // field IN (v1, v2)
//	}
//
// ESCAPING:
//
// EscapeText is the only place free text enters the generated query. Text
// values always render through it. Field names are schema identifiers and are
// emitted verbatim; Validate flags suspicious ones without rewriting them.
//
// IMMUTABILITY:
//
// Variants holding slices (Conjunction, Membership, Ordering) copy their input
// on construction and hand out copies from their accessors. A built tree can
// be serialized from any number of goroutines without coordination.
//
// Rendering examples:
//
//	And(In("project", Text("SRE")), In("labels", Text("v1"), Text("v2")))
//	    → (project IN ("SRE") AND labels IN ("v1", "v2"))
//
//	Where(And()).OrderBy(Desc("createdDate"))
//	    → () ORDER BY createdDate DESC
package jql
