package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"
)

// PairwiseDistance computes the Euclidean distance between two controllers'
// usage vectors over edgeIDs — §6's two-controller view-divergence measure.
func PairwiseDistance(a, b EdgeUsage, edgeIDs []string) (float64, error) {
	va := make([]float64, len(edgeIDs))
	vb := make([]float64, len(edgeIDs))
	for i, id := range edgeIDs {
		x, ok := a[id]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrEdgeMissing, id)
		}
		y, ok := b[id]
		if !ok {
			return 0, fmt.Errorf("%w: %q", ErrEdgeMissing, id)
		}
		va[i], vb[i] = x, y
	}
	return floats.Distance(va, vb, 2), nil
}
