// Package topology defines the directed, capacitated network graph shared by
// the simulator and every controller's private view: switches and servers as
// nodes, and edges carrying an immutable capacity and a mutable reserved load.
//
// Graph is the storage primitive — adjacency-list-of-maps under a pair of
// RWMutex locks, in the style of lvlath/core. It intentionally knows nothing
// about flows, controllers, or simulated time; those live in allocator, view,
// and sim respectively.
//
// Node kinds:
//
//	Switch — owned by exactly one controller; may have many incident edges.
//	Server — exactly one incident edge to a switch (enforced by callers, not
//	         by Graph itself, since Graph has no notion of "owner").
package topology
