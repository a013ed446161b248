package sim

import "errors"

// Sentinel errors for simulation construction and execution.
var (
	// ErrNoControllers indicates a simulation was built with an empty controller set.
	ErrNoControllers = errors.New("sim: at least one controller is required")

	// ErrUnownedSwitch indicates a request arrived at a switch no controller owns.
	ErrUnownedSwitch = errors.New("sim: switch has no owning controller")

	// ErrUnknownOwner indicates switchOwner named a controller not present in
	// the controller set.
	ErrUnknownOwner = errors.New("sim: switch owner is not a known controller")
)
