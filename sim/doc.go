// Package sim drives the discrete-event scheduler: it advances simulated
// time in fixed steps, dispatches arriving requests to the controller that
// owns their ingress switch, frees expired flows, runs the sync protocol on
// its configured cadence, and samples metrics at every tick boundary
// (§4.7, §4.8).
package sim
