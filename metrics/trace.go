package metrics

import (
	"encoding/json"
	"fmt"
)

// MarshalJSON serializes t. encoding/json already emits map keys in sorted
// order, which is what §6 requires of the serialized trace — no custom
// ordering logic is needed here.
func (t Trace) MarshalJSON() ([]byte, error) {
	type alias Trace // avoid recursing back into this method
	out, err := json.Marshal(alias(t))
	if err != nil {
		return nil, fmt.Errorf("metrics: marshal trace: %w", err)
	}
	return out, nil
}

// UsageFromGraph builds an EdgeUsage snapshot for edgeIDs, reading each
// edge's Used through usedOf, as sim does when it walks a topology.Graph's
// edges.
func UsageFromGraph(edgeIDs []string, usedOf func(edgeID string) (float64, error)) (EdgeUsage, error) {
	out := make(EdgeUsage, len(edgeIDs))
	for _, id := range edgeIDs {
		u, err := usedOf(id)
		if err != nil {
			return nil, err
		}
		out[id] = u
	}
	return out, nil
}
