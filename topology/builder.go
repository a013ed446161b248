package topology

import "fmt"

// Sentinel errors for declarative graph construction.
var ErrTooFewNodes = fmt.Errorf("topology: constructor given too few nodes")

// buildConfig carries construction-wide defaults shared by every
// Constructor run against one Build call.
type buildConfig struct {
	capacity float64
}

// BuildOption customizes a Build call's shared defaults.
type BuildOption func(*buildConfig)

// WithDefaultCapacity overrides the capacity new edges receive when a
// Constructor does not specify one explicitly.
func WithDefaultCapacity(capacity float64) BuildOption {
	return func(c *buildConfig) { c.capacity = capacity }
}

// Constructor adds nodes and edges to g, using cfg's shared defaults. It is
// the unit of composition Build assembles a graph from — one hub-and-spoke
// or chain shape per call, composable by passing several to Build.
type Constructor func(g *Graph, cfg buildConfig) error

// Build runs each constructor in order against a fresh Graph, applying
// opts' shared defaults (namely default edge capacity) to every one of
// them. This is the declarative counterpart to building a Graph by hand
// with AddNode/AddEdge, for topologies that recur across tests and
// examples.
func Build(constructors []Constructor, opts ...BuildOption) (*Graph, error) {
	cfg := buildConfig{capacity: 100}
	for _, opt := range opts {
		opt(&cfg)
	}

	g := NewGraph()
	for _, c := range constructors {
		if err := c(g, cfg); err != nil {
			return nil, err
		}
	}
	return g, nil
}

// Star returns a Constructor that adds one switch hub and len(serverIDs)
// servers, each with a single directed edge toward the hub — the shape
// every controller's LocalServers computation assumes of a well-formed
// topology (§3: "exactly one incident edge").
func Star(hubSwitch string, serverIDs []string) Constructor {
	return func(g *Graph, cfg buildConfig) error {
		if len(serverIDs) == 0 {
			return ErrTooFewNodes
		}
		if !g.HasNode(hubSwitch) {
			if err := g.AddNode(hubSwitch, Switch); err != nil {
				return err
			}
		}
		for _, s := range serverIDs {
			if err := g.AddNode(s, Server); err != nil {
				return err
			}
			if _, err := g.AddEdge(s, hubSwitch, cfg.capacity); err != nil {
				return err
			}
		}
		return nil
	}
}

// Chain returns a Constructor that adds switchIDs in order and links each
// consecutive pair with edges in both directions, the shape a line of
// federated controllers hands off traffic along.
func Chain(switchIDs []string) Constructor {
	return func(g *Graph, cfg buildConfig) error {
		if len(switchIDs) < 2 {
			return ErrTooFewNodes
		}
		for _, sw := range switchIDs {
			if !g.HasNode(sw) {
				if err := g.AddNode(sw, Switch); err != nil {
					return err
				}
			}
		}
		for i := 0; i < len(switchIDs)-1; i++ {
			a, b := switchIDs[i], switchIDs[i+1]
			if _, err := g.AddEdge(a, b, cfg.capacity); err != nil {
				return err
			}
			if _, err := g.AddEdge(b, a, cfg.capacity); err != nil {
				return err
			}
		}
		return nil
	}
}
