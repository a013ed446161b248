// Package allocator implements the resource-accounting primitive shared by
// the physical network graph and every controller's private view (§4.1).
//
// Allocate reserves capacity for a flow along a path and schedules its
// future release; Free pops every flow whose release time has arrived and
// returns its reservation. Both operate on a *topology.Graph plus a
// *Heap of active flows — the allocator never owns a graph, so the
// physical simulation and each controller view can each keep their own
// Heap over the same Allocate/Free primitives.
//
// The active-flow heap is a container/heap min-heap keyed by release time,
// in the style of lvlath/dijkstra's lazy-decrease-key priority queue.
package allocator
