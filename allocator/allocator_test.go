package allocator_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netsim/ctrlsim/allocator"
	"github.com/netsim/ctrlsim/topology"
)

func newSingleEdgeGraph(t *testing.T, capacity float64) (*topology.Graph, string) {
	t.Helper()
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("a", topology.Switch))
	require.NoError(t, g.AddNode("b", topology.Switch))
	e, err := g.AddEdge("a", "b", capacity)
	require.NoError(t, err)
	return g, e.ID
}

// TestAllocate_RejectThenAccept mirrors scenario S5: a single edge with
// capacity 10 and used 8; allocating 3 is rejected, allocating 2 succeeds,
// and freeing returns used to 8.
func TestAllocate_RejectThenAccept(t *testing.T) {
	g, edgeID := newSingleEdgeGraph(t, 10)
	require.NoError(t, g.SetUsed(edgeID, 8))

	a := allocator.New(g, nil)

	res, err := a.Allocate([]string{edgeID}, 3, 0, 1)
	require.NoError(t, err)
	require.False(t, res.Committed)
	require.Equal(t, edgeID, res.RejectedEdgeID)

	e, err := g.Edge(edgeID)
	require.NoError(t, err)
	require.Equal(t, 8.0, e.Used)

	res, err = a.Allocate([]string{edgeID}, 2, 0, 1)
	require.NoError(t, err)
	require.True(t, res.Committed)

	e, err = g.Edge(edgeID)
	require.NoError(t, err)
	require.Equal(t, 10.0, e.Used)

	require.NoError(t, a.Free(1))
	e, err = g.Edge(edgeID)
	require.NoError(t, err)
	require.Equal(t, 8.0, e.Used)
}

func TestAllocate_EmptyPathAndBadDuration(t *testing.T) {
	g, edgeID := newSingleEdgeGraph(t, 10)
	a := allocator.New(g, nil)

	_, err := a.Allocate(nil, 1, 0, 1)
	require.ErrorIs(t, err, allocator.ErrEmptyPath)

	_, err = a.Allocate([]string{edgeID}, 1, 0, 0)
	require.ErrorIs(t, err, allocator.ErrBadDuration)
}

func TestAllocate_TimeNonMonotonic(t *testing.T) {
	g, edgeID := newSingleEdgeGraph(t, 10)
	a := allocator.New(g, nil)

	_, err := a.Allocate([]string{edgeID}, 1, 5, 1)
	require.NoError(t, err)

	_, err = a.Allocate([]string{edgeID}, 1, 3, 1)
	require.ErrorIs(t, err, allocator.ErrTimeNonMonotonic)

	err = a.Free(3)
	require.ErrorIs(t, err, allocator.ErrTimeNonMonotonic)
}

// TestAllocateFree_RoundTrip verifies invariant 1: an allocate-then-free
// cycle returns every edge's Used to its pre-allocation value and drains
// the active-flow heap.
func TestAllocateFree_RoundTrip(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("s1", topology.Server))
	require.NoError(t, g.AddNode("sw1", topology.Switch))
	require.NoError(t, g.AddNode("sw2", topology.Switch))
	e1, err := g.AddEdge("s1", "sw1", 100)
	require.NoError(t, err)
	e2, err := g.AddEdge("sw1", "sw2", 100)
	require.NoError(t, err)

	a := allocator.New(g, nil)
	res, err := a.Allocate([]string{e1.ID, e2.ID}, 10, 0, 5)
	require.NoError(t, err)
	require.True(t, res.Committed)
	require.Equal(t, 1, a.ActiveCount())

	require.NoError(t, a.Free(5))
	require.Equal(t, 0, a.ActiveCount())

	got1, err := g.Edge(e1.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, got1.Used)
	got2, err := g.Edge(e2.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, got2.Used)
}

func TestAllocate_AllOrNothingAcrossPath(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("s1", topology.Server))
	require.NoError(t, g.AddNode("sw1", topology.Switch))
	require.NoError(t, g.AddNode("sw2", topology.Switch))
	e1, err := g.AddEdge("s1", "sw1", 100)
	require.NoError(t, err)
	e2, err := g.AddEdge("sw1", "sw2", 5)
	require.NoError(t, err)
	require.NoError(t, g.SetUsed(e2.ID, 4))

	a := allocator.New(g, nil)
	res, err := a.Allocate([]string{e1.ID, e2.ID}, 2, 0, 1)
	require.NoError(t, err)
	require.False(t, res.Committed)
	require.Equal(t, e2.ID, res.RejectedEdgeID)

	// the first edge must not have been partially committed.
	got1, err := g.Edge(e1.ID)
	require.NoError(t, err)
	require.Equal(t, 0.0, got1.Used)
}
