package sim

import (
	"fmt"
	"math"
	"sort"

	"github.com/sirupsen/logrus"

	"github.com/netsim/ctrlsim/allocator"
	"github.com/netsim/ctrlsim/config"
	"github.com/netsim/ctrlsim/controller"
	"github.com/netsim/ctrlsim/metrics"
	"github.com/netsim/ctrlsim/topology"
	"github.com/netsim/ctrlsim/workload"
)

// Simulation is one run's state: the physical graph, every controller and
// the switches it owns, the physical-level allocator, and the scheduler's
// own clock (§3 "Simulation state").
type Simulation struct {
	log logrus.FieldLogger
	cfg *config.SimConfig

	physical    *topology.Graph
	controllers map[string]controller.Controller
	order       []string // controller names, sorted once for deterministic sync/refresh order
	switchOwner map[string]string

	alloc *allocator.Allocator

	timeNow  float64
	lastSync float64
	snapshots *snapshotQueue
}

// New builds a Simulation over physical, with controllers keyed by name and
// switchOwner mapping every governed switch to its owning controller's name.
func New(physical *topology.Graph, controllers map[string]controller.Controller, switchOwner map[string]string, cfg *config.SimConfig) (*Simulation, error) {
	if len(controllers) == 0 {
		return nil, ErrNoControllers
	}
	for sw, owner := range switchOwner {
		if _, ok := controllers[owner]; !ok {
			return nil, fmt.Errorf("%w: switch %q names owner %q", ErrUnknownOwner, sw, owner)
		}
	}

	if cfg == nil {
		cfg = config.New()
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	log := cfg.Logger
	if log == nil {
		log = logrus.New()
	}

	order := make([]string, 0, len(controllers))
	for name := range controllers {
		order = append(order, name)
	}
	sort.Strings(order)

	return &Simulation{
		log:         log,
		cfg:         cfg,
		physical:    physical,
		controllers: controllers,
		order:       order,
		switchOwner: switchOwner,
		alloc:       allocator.New(physical, log.WithField("component", "physical-allocator")),
		snapshots:   newSnapshotQueue(cfg.Staleness),
	}, nil
}

// Run dispatches requests (assumed sorted by ArrivalTime, as
// workload.ConvertBatch guarantees) against the simulation's controllers,
// advancing time in cfg.StepSize increments, and returns one metrics
// snapshot per tick boundary (§4.8).
func (s *Simulation) Run(requests []workload.Request) (metrics.Trace, error) {
	var trace metrics.Trace
	idx := 0

	for idx < len(requests) || s.alloc.ActiveCount() > 0 {
		nextTick := s.timeNow + s.cfg.StepSize

		for idx < len(requests) && requests[idx].ArrivalTime < nextTick {
			req := requests[idx]
			s.timeNow = req.ArrivalTime

			// Free, sync-check, and refresh at this arrival's own time,
			// before dispatch — not batched once per tick after every
			// arrival is already dispatched — so a flow releasing exactly
			// at this arrival's time is freed in time to be seen by it.
			if err := s.freeAll(s.timeNow); err != nil {
				return nil, err
			}
			s.refreshAll()
			if s.dueToSync() {
				if err := s.syncAll(); err != nil {
					return nil, err
				}
				s.advanceLastSync()
			}

			if err := s.handleArrival(req); err != nil {
				return nil, err
			}
			idx++
		}

		s.timeNow = nextTick

		if err := s.freeAll(s.timeNow); err != nil {
			return nil, err
		}
		if s.dueToSync() {
			if err := s.syncAll(); err != nil {
				return nil, err
			}
			s.advanceLastSync()
		}
		s.snapshots.push(s.physical)
		s.refreshAll()

		snap, err := s.sample()
		if err != nil {
			return nil, err
		}
		trace = append(trace, snap)

		if idx >= len(requests) && s.cfg.IgnoreRemaining {
			break
		}
	}

	return trace, nil
}

// handleArrival routes req to the controller owning its ingress switch,
// reserves the chosen path in that controller's own view, and mirrors the
// reservation into the physical graph (§4.2 "the simulator also reserves
// the returned path in the physical graph").
func (s *Simulation) handleArrival(req workload.Request) error {
	ownerName, ok := s.switchOwner[req.Switch]
	if !ok {
		return fmt.Errorf("%w: %q", ErrUnownedSwitch, req.Switch)
	}
	owner := s.controllers[ownerName]

	path, dropped, err := owner.HandleRequest(req.Switch, req.Size, req.Duration, s.timeNow)
	if err != nil {
		return err
	}
	if dropped {
		s.log.WithFields(logrus.Fields{"switch": req.Switch, "controller": ownerName}).
			Debug("sim: request dropped, no feasible path")
		return nil
	}

	res, err := s.alloc.Allocate(path, req.Size, s.timeNow, req.Duration)
	if err != nil {
		return err
	}
	if !res.Committed {
		s.log.WithFields(logrus.Fields{"switch": req.Switch, "controller": ownerName, "edge": res.RejectedEdgeID}).
			Error("sim: controller's chosen path was infeasible in the physical graph")
	}

	return nil
}

func (s *Simulation) freeAll(now float64) error {
	if err := s.alloc.Free(now); err != nil {
		return err
	}
	for _, name := range s.order {
		if err := s.controllers[name].Free(now); err != nil {
			return err
		}
	}
	return nil
}

// dueToSync implements §4.7's three-way sync_period policy: nil never
// syncs, a period of exactly 0 syncs on every tick, and a positive period
// syncs once that much time has elapsed since the last sync.
func (s *Simulation) dueToSync() bool {
	if s.cfg.SyncPeriod == nil {
		return false
	}
	if *s.cfg.SyncPeriod == 0 {
		return true
	}
	return s.timeNow-s.lastSync >= *s.cfg.SyncPeriod
}

// advanceLastSync keeps the sync schedule phase-locked to its original
// period even if step_size does not evenly divide sync_period, rather than
// drifting to exactly timeNow every time (§4.7, §9 "sync_period phase").
func (s *Simulation) advanceLastSync() {
	if s.cfg.SyncPeriod == nil || *s.cfg.SyncPeriod == 0 {
		s.lastSync = s.timeNow
		return
	}
	period := *s.cfg.SyncPeriod
	s.lastSync = s.timeNow - math.Mod(s.timeNow-s.lastSync, period)
}

// syncAll runs the pairwise push-sync protocol between every ordered pair
// of distinct controllers, in the simulation's fixed controller order, so a
// run's sync sequence never depends on map iteration (§4.2, Design Note on
// order dependence).
func (s *Simulation) syncAll() error {
	for _, fromName := range s.order {
		for _, toName := range s.order {
			if fromName == toName {
				continue
			}
			from := s.controllers[fromName]
			to := s.controllers[toName]
			if err := from.SyncToward(to, nil, int64(s.timeNow)); err != nil {
				return err
			}
		}
	}
	return nil
}

// refreshAll polls every controller's local edges from the physical graph,
// or — when staleness > 0 — from the oldest snapshot still inside the
// staleness window (§4.8, §9). Run pushes one snapshot per tick boundary,
// so arrival-time refreshes within a tick read the same snapshot.
func (s *Simulation) refreshAll() {
	source := s.physical
	if s.cfg.Staleness > 0 {
		if stale := s.snapshots.oldest(); stale != nil {
			source = stale
		}
	}

	for _, name := range s.order {
		if err := s.controllers[name].RefreshLocalState(source); err != nil {
			s.log.WithFields(logrus.Fields{"controller": name}).WithError(err).
				Error("sim: refresh_local_state failed")
		}
	}
}

// serverEdgeIDs returns the IDs of every edge leaving a server node in g —
// the subset RMSEServers restricts itself to (§3 "servers are single-link").
func serverEdgeIDs(g *topology.Graph) ([]string, error) {
	var out []string
	for _, e := range g.Edges() {
		n, err := g.Node(e.From)
		if err != nil {
			return nil, err
		}
		if n.Kind == topology.Server {
			out = append(out, e.ID)
		}
	}
	return out, nil
}

// sample builds one metrics.Snapshot from the current state of every
// controller's view and the physical graph, including the §4.9 RMSE and
// pairwise-distance series derived from that state.
func (s *Simulation) sample() (metrics.Snapshot, error) {
	physEdges := s.physical.Edges()
	edgeIDs := make([]string, len(physEdges))
	for i, e := range physEdges {
		edgeIDs[i] = e.ID
	}

	physUsage, err := metrics.UsageFromGraph(edgeIDs, func(id string) (float64, error) {
		e, err := s.physical.Edge(id)
		return e.Used, err
	})
	if err != nil {
		return metrics.Snapshot{}, err
	}

	views := make(map[string]metrics.EdgeUsage, len(s.controllers))
	for _, name := range s.order {
		v := s.controllers[name].View()
		usage, err := metrics.UsageFromGraph(edgeIDs, func(id string) (float64, error) {
			e, err := v.Graph().Edge(id)
			return e.Used, err
		})
		if err != nil {
			return metrics.Snapshot{}, err
		}
		views[name] = usage
	}

	rmseLinks, err := metrics.RMSEAll(s.physical)
	if err != nil {
		return metrics.Snapshot{}, err
	}

	srvIDs, err := serverEdgeIDs(s.physical)
	if err != nil {
		return metrics.Snapshot{}, err
	}
	rmseServers, err := metrics.RMSEServers(s.physical, srvIDs)
	if err != nil {
		return metrics.Snapshot{}, err
	}

	named := make(map[string]metrics.EdgeUsage, len(views)+1)
	for name, usage := range views {
		named[name] = usage
	}
	named["physical"] = physUsage
	names := make([]string, 0, len(named))
	for name := range named {
		names = append(names, name)
	}
	sort.Strings(names)

	distances := make(map[string]float64)
	for i := 0; i < len(names); i++ {
		for j := i + 1; j < len(names); j++ {
			d, err := metrics.PairwiseDistance(named[names[i]], named[names[j]], edgeIDs)
			if err != nil {
				return metrics.Snapshot{}, err
			}
			distances[fmt.Sprintf("%s-%s", names[i], names[j])] = d
		}
	}

	return metrics.Snapshot{
		Time:           s.timeNow,
		Views:          views,
		Physical:       physUsage,
		RMSELinks:      rmseLinks,
		RMSEServers:    rmseServers,
		StateDistances: distances,
	}, nil
}
