package search

import (
	"bytes"
	"encoding/json"
	"strings"
)

// StringAt walks nested JSON objects along path and returns the string
// found at the end. Any missing key, non-object step or non-string leaf
// yields false.
//
// Traversal is strict. A missing intermediate key ends the walk with false;
// it does not stay on the current object and try the next key there, as the
// older Jira client helper did. {"name":"x"} at path ("status", "name") is a
// miss, not "x".
func StringAt(raw json.RawMessage, path ...string) (string, bool) {
	if len(path) == 0 || len(raw) == 0 {
		return "", false
	}

	current := raw
	for _, key := range path {
		var obj map[string]json.RawMessage
		if err := json.Unmarshal(current, &obj); err != nil || obj == nil {
			return "", false
		}
		next, ok := obj[key]
		if !ok {
			return "", false
		}
		current = next
	}

	var s string
	if err := json.Unmarshal(current, &s); err != nil {
		return "", false
	}
	return s, true
}

// StatusCategory returns status.statusCategory.name ("To Do",
// "In Progress", "Done").
func StatusCategory(issue Issue) (string, bool) {
	status, ok := issue.Fields["status"]
	if !ok {
		return "", false
	}
	return StringAt(status, "statusCategory", "name")
}

// StoryPoints returns the first numeric value among the candidate field IDs.
// Story points live in a custom field whose ID differs between sites, so
// callers pass every ID that might hold them.
func StoryPoints(issue Issue, fieldIDs []string) (float64, bool) {
	for _, id := range fieldIDs {
		raw, ok := issue.Fields[id]
		if !ok {
			continue
		}
		var v any
		dec := json.NewDecoder(bytes.NewReader(raw))
		dec.UseNumber()
		if err := dec.Decode(&v); err != nil {
			continue
		}
		n, ok := v.(json.Number)
		if !ok {
			continue
		}
		if f, err := n.Float64(); err == nil {
			return f, true
		}
	}
	return 0, false
}

// Field describes one issue field as listed by the field catalogue.
type Field struct {
	ID   string `json:"id"`
	Name string `json:"name"`
}

// FieldIDs returns the IDs of every field whose name equals name, ignoring
// case. Custom fields can share a display name, so there may be several.
func FieldIDs(fields []Field, name string) []string {
	var ids []string
	for _, f := range fields {
		if strings.EqualFold(f.Name, name) {
			ids = append(ids, f.ID)
		}
	}
	return ids
}
