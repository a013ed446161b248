package controller

import (
	"testing"

	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/require"

	"github.com/netsim/ctrlsim/topology"
)

// TestPathMetric_OversubscribedViewIsInfeasible covers §3's "may be
// oversubscribed" case: usedOf already exceeds capacity before size is
// even added, which must still report infeasible rather than a negative
// or otherwise nonsensical metric.
func TestPathMetric_OversubscribedViewIsInfeasible(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("a", topology.Switch))
	require.NoError(t, g.AddNode("b", topology.Switch))
	_, err := g.AddEdge("a", "b", 100)
	require.NoError(t, err)

	overEstimated := func(g *topology.Graph, edgeID string) (float64, error) {
		return 120, nil // estimated usage already past this edge's capacity
	}

	log := logrus.New()
	metric, feasible, err := pathMetric(g, []string{"a->b"}, 5, overEstimated, log)
	require.NoError(t, err)
	require.False(t, feasible)
	require.Equal(t, 0.0, metric)
}

func TestPathMetric_NilLoggerIsTolerated(t *testing.T) {
	g := topology.NewGraph()
	require.NoError(t, g.AddNode("a", topology.Switch))
	require.NoError(t, g.AddNode("b", topology.Switch))
	_, err := g.AddEdge("a", "b", 100)
	require.NoError(t, err)

	overEstimated := func(g *topology.Graph, edgeID string) (float64, error) {
		return 120, nil
	}

	_, feasible, err := pathMetric(g, []string{"a->b"}, 5, overEstimated, nil)
	require.NoError(t, err)
	require.False(t, feasible)
}
