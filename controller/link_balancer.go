package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/view"
)

// LinkBalancer selects, for each request, the candidate path with the
// minimum worst-link utilization, breaking ties by path length (§4.3).
type LinkBalancer struct {
	base
}

// NewLinkBalancer returns a LinkBalancer controller named name over v.
func NewLinkBalancer(name string, v *view.View, log logrus.FieldLogger) *LinkBalancer {
	return &LinkBalancer{base: newBase(name, v, log, view.WriteThrough)}
}

// HandleRequest implements §4.3: enumerate one candidate per known server,
// select the minimum path-metric candidate (ties broken by length), and
// reserve it in this controller's view.
func (c *LinkBalancer) HandleRequest(ingress string, size, duration, now float64) ([]string, bool, error) {
	cands, err := candidatesFor(c.v, c.v.Servers(), ingress, size, plainUsed, c.log)
	if err != nil {
		return nil, false, err
	}

	best, ok := bestFeasible(cands)
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
