package config

import "github.com/sirupsen/logrus"

// Option configures a SimConfig at construction, in the functional-options
// style used throughout this codebase's graph and builder packages.
type Option func(*SimConfig)

// WithSyncPeriod sets SyncPeriod to a non-nil pointer to period. Pass 0 for
// sync-every-tick.
func WithSyncPeriod(period float64) Option {
	return func(c *SimConfig) { c.SyncPeriod = &period }
}

// WithNoSync sets SyncPeriod to nil: controllers never sync.
func WithNoSync() Option {
	return func(c *SimConfig) { c.SyncPeriod = nil }
}

// WithStepSize overrides the default metric-sampling tick width.
func WithStepSize(step float64) Option {
	return func(c *SimConfig) { c.StepSize = step }
}

// WithIgnoreRemaining sets whether the run skips its final drain of
// not-yet-freed flows at the end of the request stream (§4.8).
func WithIgnoreRemaining(ignore bool) Option {
	return func(c *SimConfig) { c.IgnoreRemaining = ignore }
}

// WithStaleness sets how many ticks old the snapshot of the physical graph
// is that controllers refresh their local edges from (§4.8, §9).
func WithStaleness(ticks int) Option {
	return func(c *SimConfig) { c.Staleness = ticks }
}

// WithGreedyLimit sets SimConfig.GreedyLimit. No package in this module
// reads that field; a GreedyLocal's threshold is set with
// controller.WithGreedyLimit.
func WithGreedyLimit(limit float64) Option {
	return func(c *SimConfig) { c.GreedyLimit = limit }
}

// WithAlpha sets SimConfig.Alpha. No package in this module reads that
// field; a SeparateState's alpha is set with controller.WithAlpha.
func WithAlpha(alpha float64) Option {
	return func(c *SimConfig) { c.Alpha = alpha }
}

// WithLogger sets the logger propagated to every simulation component.
func WithLogger(log logrus.FieldLogger) Option {
	return func(c *SimConfig) { c.Logger = log }
}

// New returns a SimConfig with documented defaults, adjusted by opts.
func New(opts ...Option) *SimConfig {
	c := &SimConfig{
		StepSize:    DefaultStepSize,
		GreedyLimit: DefaultGreedyLimit,
		Alpha:       DefaultAlpha,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}
