// Package analyzer defines the shared contract for graph-based dead code
// analyzers and the fork-join helper they use to scan large graphs.
package analyzer

import (
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
)

// Result is the output of one analysis pass: the finalized finding list
// plus the reachable set, which downstream consumers (cycle detection,
// runtime-dead computation) need alongside the findings.
type Result struct {
	Findings  []models.DeadCode
	Reachable *graph.Set
}

// GraphAnalyzer is implemented by every analysis pass. An analyzer
// consumes an immutable declaration graph plus the entry point set and
// produces a finalized, deterministically ordered finding list.
// Implementations must not mutate the graph.
type GraphAnalyzer interface {
	// Name identifies the analyzer in reports and diagnostics.
	Name() string

	// Analyze runs the pass over the graph from the given entry points.
	Analyze(g *graph.Graph, entryPoints graph.IDSet) (*Result, error)
}
