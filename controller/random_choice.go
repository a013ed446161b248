package controller

import (
	"math/rand"

	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/view"
)

// RandomChoice selects uniformly at random among the feasible candidates, a
// baseline against which the load-aware variants are measured (§4.5).
type RandomChoice struct {
	base
	rng *rand.Rand
}

// RandomOption configures a RandomChoice at construction.
type RandomOption func(*RandomChoice)

// WithRandSource overrides the default *rand.Rand, for reproducible runs.
func WithRandSource(r *rand.Rand) RandomOption {
	return func(c *RandomChoice) { c.rng = r }
}

// NewRandomChoice returns a RandomChoice controller named name over v.
func NewRandomChoice(name string, v *view.View, log logrus.FieldLogger, opts ...RandomOption) *RandomChoice {
	c := &RandomChoice{
		base: newBase(name, v, log, view.WriteThrough),
		rng:  rand.New(rand.NewSource(1)),
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

// HandleRequest implements §4.5: gather every feasible candidate across all
// known servers, in deterministic server-ID order, then draw one uniformly.
func (c *RandomChoice) HandleRequest(ingress string, size, duration, now float64) ([]string, bool, error) {
	cands, err := candidatesFor(c.v, c.v.Servers(), ingress, size, plainUsed, c.log)
	if err != nil {
		return nil, false, err
	}

	feasible := make([]candidate, 0, len(cands))
	for _, cd := range cands {
		if cd.feasible {
			feasible = append(feasible, cd)
		}
	}

	if len(feasible) == 0 {
		c.log.WithFields(logrus.Fields{"ingress": ingress, "size": size}).
			Warn("controller: no feasible path, dropping request")
		return nil, true, nil
	}

	pick := feasible[c.rng.Intn(len(feasible))]

	committed, err := c.reserve(pick.edgeIDs, size, now, duration)
	if err != nil {
		return nil, false, err
	}
	if !committed {
		c.log.WithFields(logrus.Fields{"ingress": ingress}).
			Error("controller: pre-checked path rejected by allocator")
		return nil, true, nil
	}

	return pick.edgeIDs, false, nil
}
