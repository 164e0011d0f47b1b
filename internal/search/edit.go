package search

import (
	"encoding/json"
)

// EditRequest is the body of an issue update.
type EditRequest struct {
	Update EditUpdate `json:"update"`
}

// EditUpdate lists per-field update operations.
type EditUpdate struct {
	Labels []LabelOp `json:"labels"`
}

// LabelOp is a single label operation. Only additions are supported.
type LabelOp struct {
	Add string
}

// MarshalJSON renders the operation as {"add": label}.
func (op LabelOp) MarshalJSON() ([]byte, error) {
	return json.Marshal(map[string]string{"add": op.Add})
}

// AddLabels returns an update that adds each label.
func AddLabels(labels ...string) EditRequest {
	ops := make([]LabelOp, 0, len(labels))
	for _, l := range labels {
		ops = append(ops, LabelOp{Add: l})
	}
	return EditRequest{Update: EditUpdate{Labels: ops}}
}
