package allocator

import (
	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/topology"
)

// Allocator reserves and releases capacity for flows along paths in a
// *topology.Graph, tracking active reservations in its own Heap (§4.1).
//
// An Allocator is bound to exactly one Graph + Heap pair for its lifetime —
// the physical simulation holds one, and each controller view holds another
// over its own private graph copy (§3 "Simulation state" / "Controller
// state"). Time monotonicity (§3 invariant) is tracked per Allocator.
type Allocator struct {
	graph *topology.Graph
	heap  *Heap
	log   logrus.FieldLogger

	lastSeen float64
	started  bool
}

// New returns an Allocator bound to graph, with its own empty active-flow
// heap. log may be nil, in which case a disabled logger is used (no
// package-level logging globals, per the ambient logging contract).
func New(graph *topology.Graph, log logrus.FieldLogger) *Allocator {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel + 1) // effectively silent; never our global.
		log = l
	}
	return &Allocator{
		graph: graph,
		heap:  NewHeap(),
		log:   log,
	}
}

// ActiveCount reports the number of currently reserved flows.
func (a *Allocator) ActiveCount() int { return a.heap.Len() }

// checkMonotonic enforces §3's time-monotonicity invariant. It is the one
// fatal error condition in this package (§7 "Time-non-monotonic ... Fatal").
func (a *Allocator) checkMonotonic(now float64) error {
	if a.started && now < a.lastSeen {
		return ErrTimeNonMonotonic
	}
	a.started = true
	if now > a.lastSeen {
		a.lastSeen = now
	}
	return nil
}

// Allocate reserves size bandwidth along path (an ordered list of edge IDs)
// for duration ticks starting at now, per §4.1.
//
// The allocation is all-or-nothing: if any edge on path would exceed its
// capacity, nothing is modified and Result.Committed is false. On success,
// every edge's Used is incremented by size and the flow is pushed onto the
// heap keyed by now+duration.
//
// Returns ErrEmptyPath, ErrBadDuration, or ErrTimeNonMonotonic; a rejected
// (infeasible) allocation is reported via Result, not an error, per §4.1's
// failure semantics.
func (a *Allocator) Allocate(path []string, size, now, duration float64) (Result, error) {
	if len(path) == 0 {
		return Result{}, ErrEmptyPath
	}
	if duration <= 0 {
		return Result{}, ErrBadDuration
	}
	if err := a.checkMonotonic(now); err != nil {
		return Result{}, err
	}

	// Feasibility pre-check: no edge on path is mutated until every edge
	// has been confirmed to have headroom (§4.1 "never partially commit").
	edges := make([]topology.Edge, len(path))
	for i, id := range path {
		e, err := a.graph.Edge(id)
		if err != nil {
			return Result{}, err
		}
		edges[i] = e
		if e.Used+size > e.Capacity {
			a.log.WithFields(logrus.Fields{
				"edge": id,
				"used": e.Used,
				"size": size,
				"cap":  e.Capacity,
			}).Warn("allocator: rejected allocation, edge would be oversubscribed")
			return Result{Committed: false, RejectedEdgeID: id}, nil
		}
	}

	for _, e := range edges {
		if _, _, err := a.graph.AddUsed(e.ID, size); err != nil {
			return Result{}, err
		}
	}
	a.heap.push(Flow{ReleaseAt: now + duration, EdgeIDs: path, Size: size})

	return Result{Committed: true}, nil
}

// Free pops every flow whose ReleaseAt <= now and subtracts its Size from
// every edge on its path, clamped at zero (§4.1). Free never fails on its
// own account — only time non-monotonicity can produce an error.
//
// Over-frees (a subtraction that would drive Used negative) are logged as
// warnings and saturate at zero, per §7; this is expected in a controller
// view whose Used has been overwritten by a stale or divergent sync.
func (a *Allocator) Free(now float64) error {
	if err := a.checkMonotonic(now); err != nil {
		return err
	}

	for {
		flow, ok := a.heap.popIfDue(now)
		if !ok {
			break
		}
		for _, id := range flow.EdgeIDs {
			newUsed, clamped, err := a.graph.AddUsed(id, -flow.Size)
			if err != nil {
				return err
			}
			if clamped {
				a.log.WithFields(logrus.Fields{
					"edge": id,
					"size": flow.Size,
				}).Warn("allocator: over-free, clamped used to zero")
			}
			_ = newUsed
		}
	}

	return nil
}
