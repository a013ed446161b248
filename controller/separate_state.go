package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/topology"
	"github.com/netsim/ctrlsim/view"
)

// defaultAlpha is SeparateState's default alpha. Only its sign matters to
// HandleRequest: any positive alpha enables the shift toward the
// sync-informed candidate, zero disables it (§4.6).
const defaultAlpha = 0.5

// SeparateState keeps the ordinary Used counter and the sync_used side
// channel distinct per foreign edge (view.WriteSyncField), and chooses
// between the candidate its own local data prefers and the candidate its
// most recent sync data prefers by an alpha-gated shift toward the latter
// (§4.6). The exact generalization of the "shift-by" comparison beyond a
// two-path setting is an explicit design decision, not a direct reading of
// one: see the SeparateState entry in the design ledger.
type SeparateState struct {
	base
	alpha float64
}

// SeparateOption configures a SeparateState at construction.
type SeparateOption func(*SeparateState)

// WithAlpha overrides the default local/sync blending weight.
func WithAlpha(alpha float64) SeparateOption {
	return func(s *SeparateState) { s.alpha = alpha }
}

// NewSeparateState returns a SeparateState controller named name over v.
func NewSeparateState(name string, v *view.View, log logrus.FieldLogger, opts ...SeparateOption) *SeparateState {
	s := &SeparateState{
		base:  newBase(name, v, log, view.WriteSyncField),
		alpha: defaultAlpha,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// blendedUsed reads Edge.Used for local edges; for foreign edges it takes
// whichever of Used and the sync_used side channel is larger, so a foreign
// edge's own owner's local activity is never understated by a stale push.
func (c *SeparateState) blendedUsed(g *topology.Graph, edgeID string) (float64, error) {
	e, err := g.Edge(edgeID)
	if err != nil {
		return 0, err
	}
	if c.v.IsLocal(edgeID) {
		return e.Used, nil
	}
	if syncUsed, ok := c.v.SyncUsed(edgeID); ok && syncUsed > e.Used {
		return syncUsed, nil
	}
	return e.Used, nil
}

// HandleRequest implements §4.6. It computes the best candidate under
// plain local knowledge and the best candidate under the sync-blended view
// separately; when they pick different servers and alpha is positive, it
// shifts to the sync-informed pick if the local pick, re-scored with
// sync-blended loads, is infeasible or has a strictly higher metric. On an
// equal re-scored metric it keeps the local pick. alpha=0 always keeps the
// local pick when both exist, and every positive alpha decides the same way.
func (c *SeparateState) HandleRequest(ingress string, size, duration, now float64) ([]string, bool, error) {
	servers := c.v.Servers()

	localCands, err := candidatesFor(c.v, servers, ingress, size, plainUsed, c.log)
	if err != nil {
		return nil, false, err
	}
	syncCands, err := candidatesFor(c.v, servers, ingress, size, c.blendedUsed, c.log)
	if err != nil {
		return nil, false, err
	}

	localBest, lok := bestFeasible(localCands)
	syncBest, sok := bestFeasible(syncCands)

	var chosen candidate
	switch {
	case !lok && !sok:
		c.log.WithFields(logrus.Fields{"ingress": ingress, "size": size}).
			Warn("controller: no feasible path, dropping request")
		return nil, true, nil
	case !lok:
		chosen = syncBest
	case !sok:
		chosen = localBest
	case localBest.server == syncBest.server:
		chosen = localBest
	default:
		localUnderSync, localFeasibleUnderSync, err := pathMetric(c.v.Graph(), localBest.edgeIDs, size, c.blendedUsed, c.log)
		if err != nil {
			return nil, false, err
		}
		shift := c.alpha * (localUnderSync - syncBest.metric)
		if shift > 0 || (c.alpha > 0 && !localFeasibleUnderSync) {
			chosen = syncBest
		} else {
			chosen = localBest
		}
	}

	committed, err := c.reserve(chosen.edgeIDs, size, now, duration)
	if err != nil {
		return nil, false, err
	}
	if !committed {
		c.log.WithFields(logrus.Fields{"ingress": ingress}).
			Error("controller: pre-checked path rejected by allocator")
		return nil, true, nil
	}

	return chosen.edgeIDs, false, nil
}
