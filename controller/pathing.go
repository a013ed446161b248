package controller

import (
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/topology"
	"github.com/netsim/ctrlsim/view"
)

// candidate is one server's shortest path to the ingress switch, together
// with its path metric under a given usedOf function (§4.3).
type candidate struct {
	server   string
	edgeIDs  []string
	metric   float64
	feasible bool
}

// usedOfFunc returns the effective "used" load to charge for edgeID when
// computing a path metric. The default variants pass plainUsed; the
// SeparateState variant passes a closure blending sync_used (§4.6).
type usedOfFunc func(g *topology.Graph, edgeID string) (float64, error)

// plainUsed reads Edge.Used directly — the metric basis for LinkBalancer,
// GreedyLocal, and RandomChoice.
func plainUsed(g *topology.Graph, edgeID string) (float64, error) {
	e, err := g.Edge(edgeID)
	if err != nil {
		return 0, err
	}
	return e.Used, nil
}

// shortestPath returns the edge-ID sequence of an unweighted (hop-count)
// shortest path from `from` to `to` over g's directed edges, via BFS in the
// style of lvlath/bfs. Ties among neighbors at the same BFS depth are
// broken by sorted edge ID — a stable, documented iteration order per the
// Design Note on order dependence.
//
// Returns (nil, false) if no path exists.
func shortestPath(g *topology.Graph, from, to string) ([]string, bool) {
	if from == to {
		return nil, false
	}

	visited := map[string]bool{from: true}
	parentNode := make(map[string]string)
	parentEdge := make(map[string]string)
	queue := []string{from}

	for len(queue) > 0 {
		cur := queue[0]
		queue = queue[1:]

		out := g.OutEdges(cur)
		sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })

		for _, e := range out {
			if visited[e.To] {
				continue
			}
			visited[e.To] = true
			parentNode[e.To] = cur
			parentEdge[e.To] = e.ID
			queue = append(queue, e.To)
		}

		if visited[to] {
			break
		}
	}

	if !visited[to] {
		return nil, false
	}

	var edges []string
	for n := to; n != from; n = parentNode[n] {
		edges = append(edges, parentEdge[n])
	}
	reverse(edges)

	return edges, true
}

func reverse(s []string) {
	for i, j := 0, len(s)-1; i < j; i, j = i+1, j-1 {
		s[i], s[j] = s[j], s[i]
	}
}

// pathMetric computes the §4.3 path metric: the left-to-right running max
// of (used+size)/capacity over edgeIDs, rejecting (feasible=false) as soon
// as any edge would exceed 1.0.
//
// If usedOf alone (before size is even added) already exceeds the edge's
// capacity, the view's estimate of that edge is itself oversubscribed —
// distinct from an ordinary saturated-link rejection — and log, if
// non-nil, records view.ErrMayBeOversubscribed before the candidate is
// rejected same as any other infeasible one (§3).
func pathMetric(g *topology.Graph, edgeIDs []string, size float64, usedOf usedOfFunc, log logrus.FieldLogger) (metric float64, feasible bool, err error) {
	feasible = true
	for _, id := range edgeIDs {
		e, err := g.Edge(id)
		if err != nil {
			return 0, false, err
		}
		used, err := usedOf(g, id)
		if err != nil {
			return 0, false, err
		}
		if used > e.Capacity && log != nil {
			log.WithFields(logrus.Fields{"edge": id, "used": used, "capacity": e.Capacity}).
				Warn(view.ErrMayBeOversubscribed.Error())
		}
		ratio := (used + size) / e.Capacity
		if ratio > 1.0 {
			return 0, false, nil
		}
		if ratio > metric {
			metric = ratio
		}
	}
	return metric, feasible, nil
}

// candidatesFor enumerates one candidate per server in servers: its
// shortest path to ingress in v's graph, and that path's metric/feasibility
// under usedOf (§4.3 step 1–2).
func candidatesFor(v *view.View, servers []string, ingress string, size float64, usedOf usedOfFunc, log logrus.FieldLogger) ([]candidate, error) {
	out := make([]candidate, 0, len(servers))
	for _, s := range servers {
		edges, ok := shortestPath(v.Graph(), s, ingress)
		if !ok {
			continue
		}
		metric, feasible, err := pathMetric(v.Graph(), edges, size, usedOf, log)
		if err != nil {
			return nil, err
		}
		out = append(out, candidate{server: s, edgeIDs: edges, metric: metric, feasible: feasible})
	}
	return out, nil
}

// bestFeasible selects the minimum-metric feasible candidate, breaking ties
// by minimum path length (§4.3 step 3), and a deterministic server-ID order
// as the final tie-break.
func bestFeasible(cands []candidate) (candidate, bool) {
	var best candidate
	found := false
	for _, c := range cands {
		if !c.feasible {
			continue
		}
		if !found {
			best, found = c, true
			continue
		}
		if c.metric < best.metric ||
			(c.metric == best.metric && len(c.edgeIDs) < len(best.edgeIDs)) ||
			(c.metric == best.metric && len(c.edgeIDs) == len(best.edgeIDs) && c.server < best.server) {
			best = c
		}
	}
	return best, found
}
