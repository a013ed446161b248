package sim

import "github.com/netsim/ctrlsim/topology"

// snapshotQueue holds the most recent staleness+1 clones of the physical
// graph, oldest first, one pushed per tick boundary. A controller refresh
// reads oldest(), so once the queue is full every refresh sees the physical
// graph as it stood `staleness` tick boundaries earlier — resolving what
// would otherwise be an unbounded-growth queue (§4.8, §9).
type snapshotQueue struct {
	entries []*topology.Graph
	limit   int // staleness + 1
}

func newSnapshotQueue(staleness int) *snapshotQueue {
	return &snapshotQueue{limit: staleness + 1}
}

// push appends a clone of g, evicting the oldest entry once the queue
// exceeds its limit.
func (q *snapshotQueue) push(g *topology.Graph) {
	q.entries = append(q.entries, g.Clone())
	if len(q.entries) > q.limit {
		q.entries = q.entries[len(q.entries)-q.limit:]
	}
}

// oldest returns the least-recent snapshot still retained, or nil if the
// queue has never been pushed to.
func (q *snapshotQueue) oldest() *topology.Graph {
	if len(q.entries) == 0 {
		return nil
	}
	return q.entries[0]
}
