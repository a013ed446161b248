// Package config holds the simulator's run parameters: sync cadence, step
// size, staleness, and the per-variant tuning knobs, constructible either
// through functional options or by loading a YAML file (§4.7, §6).
package config
