package metrics

import (
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/netsim/ctrlsim/topology"
)

// RMSE computes §4.9's deviation-from-perfectly-balanced measure over
// edgeIDs in g: with ρ = ΣUsed/ΣCapacity the graph's global fill fraction
// and opt_i = ρ·Capacity_i the ideal proportional allocation, it returns
// sqrt(Σ(Used_i - opt_i)²). Despite the name, this is an unnormalized sum
// of squared deviations, not divided by the edge count — the spec's own
// formula, carried over as written rather than "corrected" to a true mean.
//
// floats.Distance(used, opt, 2) computes exactly this sum-of-squares root
// in one call, the same gonum primitive the pairwise view-distance measure
// in distance.go is built on.
func RMSE(g *topology.Graph, edgeIDs []string) (float64, error) {
	if len(edgeIDs) == 0 {
		return 0, nil
	}

	used := make([]float64, len(edgeIDs))
	cap_ := make([]float64, len(edgeIDs))
	var totalUsed, totalCap float64
	for i, id := range edgeIDs {
		e, err := g.Edge(id)
		if err != nil {
			return 0, fmt.Errorf("metrics: %w", err)
		}
		used[i] = e.Used
		cap_[i] = e.Capacity
		totalUsed += e.Used
		totalCap += e.Capacity
	}

	if totalCap == 0 {
		return 0, nil
	}
	rho := totalUsed / totalCap

	opt := make([]float64, len(edgeIDs))
	for i, c := range cap_ {
		opt[i] = rho * c
	}

	return floats.Distance(used, opt, 2), nil
}

// RMSEAll computes RMSE over every edge in g.
func RMSEAll(g *topology.Graph) (float64, error) {
	edges := g.Edges()
	ids := make([]string, len(edges))
	for i, e := range edges {
		ids[i] = e.ID
	}
	return RMSE(g, ids)
}

// RMSEServers computes RMSE restricted to serverEdgeIDs — the server-facing
// subset called out separately in §6's metric breakdown.
func RMSEServers(g *topology.Graph, serverEdgeIDs []string) (float64, error) {
	return RMSE(g, serverEdgeIDs)
}
