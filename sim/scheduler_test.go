package sim_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/netsim/ctrlsim/config"
	"github.com/netsim/ctrlsim/controller"
	"github.com/netsim/ctrlsim/metrics"
	"github.com/netsim/ctrlsim/sim"
	"github.com/netsim/ctrlsim/topology"
	"github.com/netsim/ctrlsim/view"
	"github.com/netsim/ctrlsim/workload"
)

// buildSingleControllerGraph builds one switch with two servers, all
// governed by a single controller — scenario 1 of §8.
func buildSingleControllerGraph(t *testing.T) (*topology.Graph, *view.View) {
	t.Helper()
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("sw1", topology.Switch))
	require.NoError(t, g.AddNode("s1", topology.Server))
	require.NoError(t, g.AddNode("s2", topology.Server))
	_, err := g.AddEdge("s1", "sw1", 100)
	require.NoError(t, err)
	_, err = g.AddEdge("s2", "sw1", 100)
	require.NoError(t, err)

	v, err := view.NewView("a", g, map[string]bool{"sw1": true})
	require.NoError(t, err)
	return g, v
}

func TestRun_SingleController_ViewMatchesPhysical(t *testing.T) {
	g, v := buildSingleControllerGraph(t)
	lb := controller.NewLinkBalancer("a", v, nil)

	s, err := sim.New(g, map[string]controller.Controller{"a": lb}, map[string]string{"sw1": "a"}, config.New(config.WithStepSize(1)))
	require.NoError(t, err)

	requests := []workload.Request{
		{ArrivalTime: 0.1, Switch: "sw1", Size: 5, Duration: 10},
		{ArrivalTime: 0.5, Switch: "sw1", Size: 5, Duration: 10},
	}

	trace, err := s.Run(requests)
	require.NoError(t, err)
	require.NotEmpty(t, trace)

	last := trace[len(trace)-1]
	for id, used := range last.Physical {
		require.Equal(t, used, last.Views["a"][id])
	}
}

// buildFederatedGraph builds the two-domain topology of §8 scenarios 2-4.
func buildFederatedGraph(t *testing.T) *topology.Graph {
	t.Helper()
	g := topology.NewGraph()
	for _, id := range []string{"sw1", "sw2"} {
		require.NoError(t, g.AddNode(id, topology.Switch))
	}
	for _, id := range []string{"s1", "s2"} {
		require.NoError(t, g.AddNode(id, topology.Server))
	}
	_, err := g.AddEdge("s1", "sw1", 100)
	require.NoError(t, err)
	_, err = g.AddEdge("s2", "sw2", 100)
	require.NoError(t, err)
	_, err = g.AddEdge("sw1", "sw2", 1000)
	require.NoError(t, err)
	_, err = g.AddEdge("sw2", "sw1", 1000)
	require.NoError(t, err)
	return g
}

// TestRun_TwoControllers_NeverSyncDiverges mirrors scenario 3: with
// SyncPeriod nil, each controller's view of the other's domain never
// catches up to the physical truth.
func TestRun_TwoControllers_NeverSyncDiverges(t *testing.T) {
	g := buildFederatedGraph(t)
	va, err := view.NewView("a", g, map[string]bool{"sw1": true})
	require.NoError(t, err)
	vb, err := view.NewView("b", g, map[string]bool{"sw2": true})
	require.NoError(t, err)

	a := controller.NewLinkBalancer("a", va, nil)
	b := controller.NewLinkBalancer("b", vb, nil)

	s, err := sim.New(g,
		map[string]controller.Controller{"a": a, "b": b},
		map[string]string{"sw1": "a", "sw2": "b"},
		config.New(config.WithNoSync(), config.WithStepSize(1)),
	)
	require.NoError(t, err)

	requests := []workload.Request{
		{ArrivalTime: 0.1, Switch: "sw2", Size: 30, Duration: 50},
	}
	trace, err := s.Run(requests)
	require.NoError(t, err)
	require.NotEmpty(t, trace)

	last := trace[len(trace)-1]
	require.NotEqual(t, last.Physical["s2->sw2"], last.Views["a"]["s2->sw2"])
}

// TestRun_TwoControllers_SyncEveryTickConverges mirrors scenario 2: with
// SyncPeriod 0, every foreign edge a controller can see is refreshed every
// tick, so views converge onto the physical truth.
func TestRun_TwoControllers_SyncEveryTickConverges(t *testing.T) {
	g := buildFederatedGraph(t)
	va, err := view.NewView("a", g, map[string]bool{"sw1": true})
	require.NoError(t, err)
	vb, err := view.NewView("b", g, map[string]bool{"sw2": true})
	require.NoError(t, err)

	a := controller.NewLinkBalancer("a", va, nil)
	b := controller.NewLinkBalancer("b", vb, nil)

	s, err := sim.New(g,
		map[string]controller.Controller{"a": a, "b": b},
		map[string]string{"sw1": "a", "sw2": "b"},
		config.New(config.WithSyncPeriod(0), config.WithStepSize(1)),
	)
	require.NoError(t, err)

	requests := []workload.Request{
		{ArrivalTime: 0.1, Switch: "sw2", Size: 30, Duration: 50},
	}
	trace, err := s.Run(requests)
	require.NoError(t, err)
	require.NotEmpty(t, trace)

	last := trace[len(trace)-1]
	require.Equal(t, last.Physical["s2->sw2"], last.Views["a"]["s2->sw2"])
}

// TestRun_RMSEZeroWhenFillFractionsMatch checks invariant 3: RMSE is zero
// once both servers carry the same fill fraction, and nonzero right after
// only one of them has taken load.
func TestRun_RMSEZeroWhenFillFractionsMatch(t *testing.T) {
	g, v := buildSingleControllerGraph(t)
	lb := controller.NewLinkBalancer("a", v, nil)

	s, err := sim.New(g, map[string]controller.Controller{"a": lb}, map[string]string{"sw1": "a"}, config.New(config.WithStepSize(1), config.WithIgnoreRemaining(true)))
	require.NoError(t, err)

	requests := []workload.Request{
		{ArrivalTime: 0.1, Switch: "sw1", Size: 20, Duration: 1000},
	}
	_, err = s.Run(requests)
	require.NoError(t, err)

	rmse, err := metrics.RMSEAll(g)
	require.NoError(t, err)
	require.Greater(t, rmse, 0.0)

	require.NoError(t, g.SetUsed("s2->sw1", 20))
	rmse, err = metrics.RMSEAll(g)
	require.NoError(t, err)
	require.InDelta(t, 0.0, rmse, 1e-9)
}

func TestNew_RejectsUnknownOwner(t *testing.T) {
	g, v := buildSingleControllerGraph(t)
	a := controller.NewLinkBalancer("a", v, nil)
	_, err := sim.New(g, map[string]controller.Controller{"a": a}, map[string]string{"sw1": "ghost"}, nil)
	require.ErrorIs(t, err, sim.ErrUnknownOwner)
}

func TestNew_RejectsInvalidStepSize(t *testing.T) {
	g, v := buildSingleControllerGraph(t)
	a := controller.NewLinkBalancer("a", v, nil)
	_, err := sim.New(g, map[string]controller.Controller{"a": a}, map[string]string{"sw1": "a"}, config.New(config.WithStepSize(0)))
	require.ErrorIs(t, err, config.ErrBadStepSize)
}

func TestNew_RejectsEmptyControllers(t *testing.T) {
	g, _ := buildSingleControllerGraph(t)
	_, err := sim.New(g, map[string]controller.Controller{}, nil, nil)
	require.ErrorIs(t, err, sim.ErrNoControllers)
}
