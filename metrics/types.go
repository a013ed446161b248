package metrics

import "errors"

// ErrEdgeMissing indicates a requested edge ID was absent from one of the
// EdgeUsage maps being compared.
var ErrEdgeMissing = errors.New("metrics: edge missing from usage map")

// EdgeUsage is a snapshot of Edge.Used keyed by edge ID, the unit both RMSE
// and view-distance computations operate over.
type EdgeUsage map[string]float64

// Snapshot is one sampled tick: every controller's view usage plus the
// physical graph's usage, keyed by controller name, together with the
// derived §4.9 metric series for that tick (§6 "simulation trace").
type Snapshot struct {
	Time     float64              `json:"time"`
	Views    map[string]EdgeUsage `json:"views"`
	Physical EdgeUsage            `json:"physical"`

	// RMSELinks is RMSE (see RMSE) over every physical edge.
	RMSELinks float64 `json:"rmse_links"`
	// RMSEServers is RMSE restricted to edges leaving a server node.
	RMSEServers float64 `json:"rmse_servers"`
	// StateDistances is the Euclidean distance between every unordered
	// pair among the controllers' views and "physical", keyed by "<a>-<b>"
	// with a before b in sorted name order (§4.9 "pairwise view distances").
	StateDistances map[string]float64 `json:"state_distances"`
}

// Trace is an ordered sequence of Snapshots, one per sampled tick.
type Trace []Snapshot
