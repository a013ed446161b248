// Package ctrlsim is a discrete-event simulator for comparing
// load-balancing strategies across a federation of SDN-style controllers,
// each governing a disjoint slice of switches and holding only a partial,
// periodically-synced view of the shared network.
//
// Everything lives under focused subpackages:
//
//	topology/   — the capacitated network graph (switches, servers, edges)
//	allocator/  — all-or-nothing path reservation and time-driven release
//	view/       — a controller's private, partially-synced graph copy
//	controller/ — the four path-selection strategies and their shared plumbing
//	workload/   — request records and legacy trace conversion
//	sim/        — the scheduler that drives everything above through time
//	metrics/    — RMSE and view-divergence measures over a simulation run
//	config/     — run parameters, as functional options or a YAML file
//
// A minimal run builds a topology.Graph, wraps one view.View per controller
// around it, picks a controller package constructor per switch, and hands
// the result to sim.New along with a config.SimConfig and a slice of
// workload.Request.
package ctrlsim
