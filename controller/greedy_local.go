package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/view"
)

// defaultGreedyLimit is the metric threshold below which a local-only
// candidate is accepted without searching the full server set (§4.4).
const defaultGreedyLimit = 0.5

// GreedyLocal prefers a path through one of its own local servers when one
// is good enough (metric <= limit), and only falls back to the full,
// LinkBalancer-style global search when no local candidate clears the bar
// (§4.4, two-phase local-then-global search).
type GreedyLocal struct {
	base
	limit float64
}

// GreedyOption configures a GreedyLocal at construction.
type GreedyOption func(*GreedyLocal)

// WithGreedyLimit overrides the default local-acceptance threshold.
func WithGreedyLimit(limit float64) GreedyOption {
	return func(g *GreedyLocal) { g.limit = limit }
}

// NewGreedyLocal returns a GreedyLocal controller named name over v.
func NewGreedyLocal(name string, v *view.View, log logrus.FieldLogger, opts ...GreedyOption) *GreedyLocal {
	g := &GreedyLocal{
		base:  newBase(name, v, log, view.WriteThrough),
		limit: defaultGreedyLimit,
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// HandleRequest implements §4.4: try the controller's own local servers
// first; if the best of those clears the limit, take it. Otherwise widen
// the search to every known server, exactly as LinkBalancer would.
func (c *GreedyLocal) HandleRequest(ingress string, size, duration, now float64) ([]string, bool, error) {
	local, err := candidatesFor(c.v, c.v.LocalServers(), ingress, size, plainUsed, c.log)
	if err != nil {
		return nil, false, err
	}

	best, ok := bestFeasible(local)
	if !ok || best.metric > c.limit {
		global, err := candidatesFor(c.v, c.v.Servers(), ingress, size, plainUsed, c.log)
		if err != nil {
			return nil, false, err
		}
		best, ok = bestFeasible(global)
	}

	if !ok {
		c.log.WithFields(logrus.Fields{"ingress": ingress, "size": size}).
			Warn("controller: no feasible path, dropping request")
		return nil, true, nil
	}

	committed, err := c.reserve(best.edgeIDs, size, now, duration)
	if err != nil {
		return nil, false, err
	}
	if !committed {
		c.log.WithFields(logrus.Fields{"ingress": ingress}).
			Error("controller: pre-checked path rejected by allocator")
		return nil, true, nil
	}

	return best.edgeIDs, false, nil
}
