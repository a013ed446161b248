// Package workload models inbound traffic requests and the conversion of
// legacy tick/bucket-indexed records into the simulator's canonical
// continuous arrival-time representation (§6).
package workload
