package view

import "errors"

// Sentinel errors for view operations.
var (
	// ErrNilGraph indicates a nil *topology.Graph was passed to NewView.
	ErrNilGraph = errors.New("view: physical graph is nil")

	// ErrNoGovernedSwitches indicates a View was constructed with an empty
	// governed-switch set, which would make every edge foreign.
	ErrNoGovernedSwitches = errors.New("view: governed switch set is empty")

	// ErrMayBeOversubscribed indicates a view's estimated Used for an edge
	// (ordinarily a foreign edge fed by sync or a blended read) already
	// exceeds that edge's Capacity, before any new request's size is even
	// added — a transient overshoot §3 permits in a view but never in the
	// physical graph. Candidates that trip this are always rejected.
	ErrMayBeOversubscribed = errors.New("view: edge usage exceeds capacity in a synced/estimated view")
)

// SyncMode selects what SyncToward writes into the peer view (§4.2, §4.6).
type SyncMode int

const (
	// WriteThrough overwrites the peer's ordinary Used value — the
	// behavior of LinkBalancer, GreedyLocal, and RandomChoice.
	WriteThrough SyncMode = iota

	// WriteSyncField writes the peer's sync_used/sync_ts side channel
	// instead, leaving the peer's own Used untouched — the SeparateState
	// variant (§4.6).
	WriteSyncField
)

// edgeMeta holds the per-foreign-edge bookkeeping a View needs beyond the
// plain topology.Edge: whether the edge is local to this view, and (for
// SeparateState peers) the last value and tick pushed via WriteSyncField.
type edgeMeta struct {
	local    bool
	hasSync  bool
	syncUsed float64
	syncTs   int64
}
