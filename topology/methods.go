package topology

import "fmt"

// AddNode registers a node of the given kind. Returns ErrEmptyNodeID or
// ErrNodeExists.
//
// Complexity: O(1).
func (g *Graph) AddNode(id string, kind Kind) error {
	if id == "" {
		return ErrEmptyNodeID
	}
	g.muNode.Lock()
	defer g.muNode.Unlock()

	if _, ok := g.nodes[id]; ok {
		return fmt.Errorf("%w: %q", ErrNodeExists, id)
	}
	g.nodes[id] = &Node{ID: id, Kind: kind}
	g.adjacency[id] = make(map[string]string)

	return nil
}

// HasNode reports whether id is a known node.
//
// Complexity: O(1).
func (g *Graph) HasNode(id string) bool {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	_, ok := g.nodes[id]
	return ok
}

// Node returns a copy of the node record for id.
//
// Complexity: O(1).
func (g *Graph) Node(id string) (Node, error) {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	n, ok := g.nodes[id]
	if !ok {
		return Node{}, fmt.Errorf("%w: %q", ErrNodeNotFound, id)
	}
	return *n, nil
}

// Nodes returns all node IDs. Order is not guaranteed; callers that need a
// stable order should sort.
//
// Complexity: O(V).
func (g *Graph) Nodes() []string {
	g.muNode.RLock()
	defer g.muNode.RUnlock()

	out := make([]string, 0, len(g.nodes))
	for id := range g.nodes {
		out = append(out, id)
	}
	return out
}

// AddEdge adds a directed edge from->to with the given capacity. Both
// endpoints must already exist. Returns ErrNodeNotFound, ErrSelfLoop,
// ErrBadCapacity, or ErrEdgeExists.
//
// Complexity: O(1).
func (g *Graph) AddEdge(from, to string, capacity float64) (*Edge, error) {
	if from == to {
		return nil, fmt.Errorf("%w: %q", ErrSelfLoop, from)
	}
	if capacity <= 0 {
		return nil, fmt.Errorf("%w: got %g", ErrBadCapacity, capacity)
	}

	g.muNode.RLock()
	_, fromOK := g.nodes[from]
	_, toOK := g.nodes[to]
	g.muNode.RUnlock()
	if !fromOK {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, from)
	}
	if !toOK {
		return nil, fmt.Errorf("%w: %q", ErrNodeNotFound, to)
	}

	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	if _, ok := g.adjacency[from][to]; ok {
		return nil, fmt.Errorf("%w: %q->%q", ErrEdgeExists, from, to)
	}

	id := fmt.Sprintf("%s->%s", from, to)
	e := &Edge{ID: id, From: from, To: to, Capacity: capacity}
	g.edges[id] = e
	if g.adjacency[from] == nil {
		g.adjacency[from] = make(map[string]string)
	}
	g.adjacency[from][to] = id

	return e, nil
}

// Edge returns a copy of the edge record for id.
//
// Complexity: O(1).
func (g *Graph) Edge(id string) (Edge, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	e, ok := g.edges[id]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %q", ErrEdgeNotFound, id)
	}
	return *e, nil
}

// EdgeBetween returns a copy of the edge from->to, if one exists.
//
// Complexity: O(1).
func (g *Graph) EdgeBetween(from, to string) (Edge, error) {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	id, ok := g.adjacency[from][to]
	if !ok {
		return Edge{}, fmt.Errorf("%w: %q->%q", ErrEdgeNotFound, from, to)
	}
	return *g.edges[id], nil
}

// Edges returns all edges. Order is not guaranteed.
//
// Complexity: O(E).
func (g *Graph) Edges() []Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	out := make([]Edge, 0, len(g.edges))
	for _, e := range g.edges {
		out = append(out, *e)
	}
	return out
}

// OutEdges returns the edges leaving node id. Order is not guaranteed.
//
// Complexity: O(deg(id)).
func (g *Graph) OutEdges(id string) []Edge {
	g.muEdge.RLock()
	defer g.muEdge.RUnlock()

	nbrs := g.adjacency[id]
	out := make([]Edge, 0, len(nbrs))
	for _, eid := range nbrs {
		out = append(out, *g.edges[eid])
	}
	return out
}

// SetUsed overwrites the Used field of edge id directly, bypassing the
// allocator's accounting. This is the primitive refresh_local_state and
// sync_toward build on: it does not touch capacity, does not validate
// against any flow heap, and is the only mutator outside of package
// allocator that ever changes Used.
//
// Complexity: O(1).
func (g *Graph) SetUsed(id string, used float64) error {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	e, ok := g.edges[id]
	if !ok {
		return fmt.Errorf("%w: %q", ErrEdgeNotFound, id)
	}
	e.Used = used
	return nil
}

// AddUsed adds delta (which may be negative) to edge id's Used, clamping at
// zero. Returns the post-clamp value and whether clamping occurred (an
// "over-free" per §4.1/§7).
//
// Complexity: O(1).
func (g *Graph) AddUsed(id string, delta float64) (newUsed float64, clamped bool, err error) {
	g.muEdge.Lock()
	defer g.muEdge.Unlock()

	e, ok := g.edges[id]
	if !ok {
		return 0, false, fmt.Errorf("%w: %q", ErrEdgeNotFound, id)
	}
	e.Used += delta
	if e.Used < 0 {
		e.Used = 0
		clamped = true
	}
	return e.Used, clamped, nil
}
