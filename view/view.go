package view

import (
	"sort"

	"github.com/netsim/ctrlsim/topology"
)

// View is one controller's private copy of the network, tagged with
// locality and (for SeparateState) sync bookkeeping.
type View struct {
	name    string
	graph   *topology.Graph
	meta    map[string]*edgeMeta // edge ID -> bookkeeping
	local   []string             // local edge IDs, derived once, sorted
	servers []string             // all known server IDs, sorted
}

// NewView clones physical and tags every edge local iff either endpoint is
// in governedSwitches (§4.2: "walks its edges once, tagging an edge local
// iff either endpoint is one of its governed switches").
//
// Complexity: O(V + E).
func NewView(name string, physical *topology.Graph, governedSwitches map[string]bool) (*View, error) {
	if physical == nil {
		return nil, ErrNilGraph
	}
	if len(governedSwitches) == 0 {
		return nil, ErrNoGovernedSwitches
	}

	g := physical.Clone()
	v := &View{
		name:  name,
		graph: g,
		meta:  make(map[string]*edgeMeta),
	}

	for _, e := range g.Edges() {
		isLocal := governedSwitches[e.From] || governedSwitches[e.To]
		v.meta[e.ID] = &edgeMeta{local: isLocal}
		if isLocal {
			v.local = append(v.local, e.ID)
		}
	}
	sort.Strings(v.local)

	for _, id := range g.Nodes() {
		n, err := g.Node(id)
		if err != nil {
			return nil, err
		}
		if n.Kind == topology.Server {
			v.servers = append(v.servers, id)
		}
	}
	sort.Strings(v.servers)

	return v, nil
}

// Name returns the owning controller's name.
func (v *View) Name() string { return v.name }

// Graph returns this view's private topology, for read access by path
// selection and mutation by the owning controller's allocator.
func (v *View) Graph() *topology.Graph { return v.graph }

// IsLocal reports whether edgeID is governed by this view's controller.
func (v *View) IsLocal(edgeID string) bool {
	m, ok := v.meta[edgeID]
	return ok && m.local
}

// LocalEdgeIDs returns the view's local-edge list, derived once at
// construction, in sorted (deterministic) order.
func (v *View) LocalEdgeIDs() []string {
	out := make([]string, len(v.local))
	copy(out, v.local)
	return out
}

// Servers returns every server ID known to this view (the full server set,
// per §4.3's "one candidate per known server" — every controller's view is
// a full topology copy, so every controller knows every server).
func (v *View) Servers() []string {
	out := make([]string, len(v.servers))
	copy(out, v.servers)
	return out
}

// LocalServers returns servers whose single switch neighbor is governed by
// this view (§4.2: "its local-server set").
//
// Complexity: O(S) where S is the number of servers.
func (v *View) LocalServers() []string {
	var out []string
	for _, s := range v.servers {
		edges := v.graph.OutEdges(s)
		if len(edges) != 1 {
			continue // malformed topology; caller's invariant check catches this elsewhere.
		}
		if v.IsLocal(edges[0].ID) {
			out = append(out, s)
		}
	}
	return out
}

// RefreshLocalState copies Used from source into every local edge of this
// view (§4.2: "models a controller polling its switches"). source is
// ordinarily the physical graph, or a staleness snapshot of it (§4.8).
func (v *View) RefreshLocalState(source *topology.Graph) error {
	for _, id := range v.local {
		e, err := source.Edge(id)
		if err != nil {
			return err
		}
		if err := v.graph.SetUsed(id, e.Used); err != nil {
			return err
		}
	}
	return nil
}

// SyncToward pushes this view's Used into peer for every edge in edgeIDs
// (or this view's full local-edge list, if edgeIDs is nil) that is not
// local to peer (§4.2: "edges shared between two controllers ... are never
// overwritten by sync on either side").
//
// mode selects whether the peer's ordinary Used is overwritten
// (WriteThrough) or its sync_used/sync_ts side channel is updated instead
// (WriteSyncField, for SeparateState). Applying SyncToward twice with no
// intervening mutation is a no-op (§4.2 idempotence, §8 property 6):
// both branches simply rewrite the same source value.
func (v *View) SyncToward(peer *View, mode SyncMode, edgeIDs []string, timestep int64) error {
	ids := edgeIDs
	if ids == nil {
		ids = v.local
	}

	for _, id := range ids {
		if peer.IsLocal(id) {
			continue // never overwrite an edge the peer itself governs.
		}
		e, err := v.graph.Edge(id)
		if err != nil {
			return err
		}
		switch mode {
		case WriteSyncField:
			pm, ok := peer.meta[id]
			if !ok {
				pm = &edgeMeta{}
				peer.meta[id] = pm
			}
			pm.hasSync = true
			pm.syncUsed = e.Used
			pm.syncTs = timestep
		default:
			if err := peer.graph.SetUsed(id, e.Used); err != nil {
				return err
			}
		}
	}

	return nil
}

// SyncUsed returns the last value pushed into edgeID via WriteSyncField,
// and whether any such push has occurred yet.
func (v *View) SyncUsed(edgeID string) (used float64, ok bool) {
	m, present := v.meta[edgeID]
	if !present || !m.hasSync {
		return 0, false
	}
	return m.syncUsed, true
}

// SyncTimestamp returns the tick at which edgeID's sync_used was last
// installed (§3 "sync_ts").
func (v *View) SyncTimestamp(edgeID string) (ts int64, ok bool) {
	m, present := v.meta[edgeID]
	if !present || !m.hasSync {
		return 0, false
	}
	return m.syncTs, true
}
