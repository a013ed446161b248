package controller

import (
	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/allocator"
	"github.com/netsim/ctrlsim/topology"
	"github.com/netsim/ctrlsim/view"
)

// Controller is the capability set shared by every path-selection variant
// (§4.2–§4.6, Design Note "Polymorphic controllers").
type Controller interface {
	// Name returns the controller's identity, used for switch ownership,
	// logging, and per-controller metrics (§3 "its name").
	Name() string

	// View returns the controller's private topology view.
	View() *view.View

	// RefreshLocalState polls source (ordinarily the physical graph, or a
	// staleness snapshot of it) into every local edge of the controller's
	// view (§4.2).
	RefreshLocalState(source *topology.Graph) error

	// SyncToward pushes this controller's local state into peer, per this
	// variant's SyncMode (§4.2, §4.6).
	SyncToward(peer Controller, edgeIDs []string, timestep int64) error

	// Free releases any of the controller's own expired flow reservations
	// in its view, in lockstep with the physical simulation (§3 "its own
	// active-flow heap").
	Free(now float64) error

	// HandleRequest selects a path for a request arriving at ingress and,
	// on success, reserves it in the controller's own view. It returns
	// dropped=true when no feasible path exists (§4.3 step 3, §7
	// "Infeasible-path").
	HandleRequest(ingress string, size, duration, now float64) (path []string, dropped bool, err error)
}

// base holds the state and behavior common to every variant: a name, a
// view, a per-view allocator, a logger, and the sync mode this variant
// writes with. Concrete variants embed base and override HandleRequest.
type base struct {
	name     string
	v        *view.View
	alloc    *allocator.Allocator
	log      logrus.FieldLogger
	syncMode view.SyncMode
}

func newBase(name string, v *view.View, log logrus.FieldLogger, syncMode view.SyncMode) base {
	if log == nil {
		l := logrus.New()
		l.SetLevel(logrus.PanicLevel + 1)
		log = l
	}
	return base{
		name:     name,
		v:        v,
		alloc:    allocator.New(v.Graph(), log.WithField("controller", name)),
		log:      log.WithField("controller", name),
		syncMode: syncMode,
	}
}

func (b *base) Name() string        { return b.name }
func (b *base) View() *view.View    { return b.v }
func (b *base) Free(now float64) error { return b.alloc.Free(now) }

func (b *base) RefreshLocalState(source *topology.Graph) error {
	return b.v.RefreshLocalState(source)
}

func (b *base) SyncToward(peer Controller, edgeIDs []string, timestep int64) error {
	return b.v.SyncToward(peer.View(), b.syncMode, edgeIDs, timestep)
}

// reserve commits path in the controller's own view via its allocator and
// reports whether the allocator committed it. It logs nothing itself; the
// calling HandleRequest logs a rejection.
func (b *base) reserve(path []string, size, now, duration float64) (committed bool, err error) {
	res, err := b.alloc.Allocate(path, size, now, duration)
	if err != nil {
		return false, err
	}
	return res.Committed, nil
}
