// Package view implements each controller's private copy of the network
// topology (§3 "Controller View", §4.2 "Controller View & Bookkeeping").
//
// A View is built once from the physical topology.Graph at simulator
// construction. It tags every edge local (governed by this view's
// controller) or foreign, and derives the controller's local-edge list and
// local-server set. Two operations drive the consistency model:
//
//   - RefreshLocalState copies Used from a source graph into every local
//     edge — "a controller polling its switches".
//   - SyncToward pushes this view's Used into a peer's view for every edge
//     that is not local to the peer, optionally through the separate-state
//     sync_used/sync_ts side channel instead of overwriting Used directly.
//
// View never holds a reference to its peers; the sync round is brokered
// externally by package sim, per the Design Note on cyclic relations.
package view
