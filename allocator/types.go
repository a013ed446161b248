package allocator

import "errors"

// Sentinel errors for allocator operations.
var (
	// ErrEmptyPath indicates an allocation was attempted with a zero-length path.
	ErrEmptyPath = errors.New("allocator: path must contain at least one edge")

	// ErrBadDuration indicates duration <= 0 was supplied to Allocate.
	ErrBadDuration = errors.New("allocator: duration must be positive")

	// ErrTimeNonMonotonic indicates now is earlier than the last time seen by
	// this allocator, a fatal programming/workload error per §4.8/§7.
	ErrTimeNonMonotonic = errors.New("allocator: time moved backwards")
)

// Flow is an active reservation: a path of edge IDs holding size bandwidth
// until ReleaseAt (§3: "Flow (active reservation)").
type Flow struct {
	ReleaseAt float64
	EdgeIDs   []string
	Size      float64
}

// Result reports what Allocate did, since a rejected allocation is not an
// error (§4.1: "caller learns via a no-op ... or by a return flag") — it is
// an ordinary, expected outcome the path selector must already have
// anticipated.
type Result struct {
	// Committed is true iff every edge on the path had headroom and the
	// flow was reserved and pushed onto the heap.
	Committed bool
	// RejectedEdgeID names the first edge that would have been
	// oversubscribed, when Committed is false.
	RejectedEdgeID string
}
