// Package controller implements the four path-selection strategies of
// §4.3–§4.6: LinkBalancer, GreedyLocal, RandomChoice, and SeparateState.
//
// All four share one capability set — RefreshLocalState, SyncToward,
// HandleRequest — exposed as the Controller interface, per the Design Note
// "Polymorphic controllers ... express as a tagged variant or an
// interface." HandleRequest is the only method whose behavior diverges
// meaningfully between variants; path-metric and path-feasibility
// computation are factored out as free functions over a *view.View in
// pathing.go, shared by every variant.
package controller
