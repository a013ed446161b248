package config

import (
	"errors"

	"github.com/sirupsen/logrus"
)

// Sentinel errors for configuration validation.
var (
	// ErrBadStepSize indicates a non-positive step size was supplied.
	ErrBadStepSize = errors.New("config: step size must be positive")

	// ErrBadSyncPeriod indicates a negative sync period was supplied.
	ErrBadSyncPeriod = errors.New("config: sync period must be non-negative")

	// ErrBadStaleness indicates a negative staleness was supplied.
	ErrBadStaleness = errors.New("config: staleness must be non-negative")

	// ErrBadGreedyLimit indicates a negative greedy_limit was supplied.
	ErrBadGreedyLimit = errors.New("config: greedy limit must be non-negative")

	// ErrBadAlpha indicates an alpha outside [0, 1] was supplied.
	ErrBadAlpha = errors.New("config: alpha must be within [0, 1]")
)

const (
	// DefaultStepSize is the default metric-sampling tick width (§4.8).
	DefaultStepSize = 1.0

	// DefaultGreedyLimit is GreedyLocal's default local-acceptance threshold (§4.4).
	DefaultGreedyLimit = 0.5

	// DefaultAlpha is SeparateState's default local/sync blending weight (§4.6).
	DefaultAlpha = 0.5
)

// SimConfig holds one simulation run's parameters.
//
// SyncPeriod carries a three-way distinction (§4.7, §9 Open Question
// "sync_period semantics"):
//
//   - nil: controllers never sync with one another.
//   - pointer to 0: controllers sync on every tick.
//   - pointer to a positive value: controllers sync every SyncPeriod time
//     units, phase-preserved across step-size changes.
type SimConfig struct {
	SyncPeriod      *float64
	StepSize        float64
	IgnoreRemaining bool
	Staleness       int
	GreedyLimit     float64
	Alpha           float64

	// Logger is never serialized; it is supplied fresh at construction or
	// via WithLogger, following the teacher's convention of injecting a
	// logrus.FieldLogger rather than reaching for a package-level logger.
	Logger logrus.FieldLogger
}

// Validate checks SimConfig's numeric fields against their documented
// ranges. SyncPeriod's nil case is always valid; a non-nil SyncPeriod must
// be non-negative.
func (c *SimConfig) Validate() error {
	if c.StepSize <= 0 {
		return ErrBadStepSize
	}
	if c.SyncPeriod != nil && *c.SyncPeriod < 0 {
		return ErrBadSyncPeriod
	}
	if c.Staleness < 0 {
		return ErrBadStaleness
	}
	if c.GreedyLimit < 0 {
		return ErrBadGreedyLimit
	}
	if c.Alpha < 0 || c.Alpha > 1 {
		return ErrBadAlpha
	}
	return nil
}
