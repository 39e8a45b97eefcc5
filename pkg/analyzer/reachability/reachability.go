// Package reachability implements the baseline whole-type-retaining
// reachability analysis. Touching any member of a type keeps the entire
// type alive, so it never flags dead members inside live types; the deep
// analyzer is the precise counterpart.
package reachability

import (
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
)

// Analyzer is the baseline reachability pass.
type Analyzer struct{}

var _ analyzer.GraphAnalyzer = (*Analyzer)(nil)

// New creates a baseline reachability analyzer.
func New() *Analyzer {
	return &Analyzer{}
}

// Name implements analyzer.GraphAnalyzer.
func (a *Analyzer) Name() string {
	return "reachability"
}

// Analyze runs a single worklist traversal from the entry point set.
// Reaching a declaration also retains its ancestor chain and, through
// the children push, every nested member of each retained type. Every
// declaration outside the reachable set becomes a finding, minus
// imports, files and packages.
func (a *Analyzer) Analyze(g *graph.Graph, entryPoints graph.IDSet) (*analyzer.Result, error) {
	reachable := a.findReachable(g, entryPoints)

	var findings []models.DeadCode
	for i := 0; i < g.Len(); i++ {
		decl := g.At(uint32(i))
		if reachable.ContainsIndex(uint32(i)) {
			continue
		}
		switch decl.Kind {
		case graph.KindImport, graph.KindFile, graph.KindPackage:
			continue
		}
		findings = append(findings, models.New(*decl, issueFor(decl)))
	}

	return &analyzer.Result{
		Findings:  models.Finalize(findings),
		Reachable: reachable,
	}, nil
}

// findReachable computes the coarse reachable set. The worklist pushes
// reference neighbors, the parent chain, and all children of each
// visited node, so a type reached through any member drags the whole
// type and its members in.
func (a *Analyzer) findReachable(g *graph.Graph, entryPoints graph.IDSet) *graph.Set {
	reachable := graph.NewSet(g)

	var stack []uint32
	for id := range entryPoints {
		if idx, ok := g.Index(id); ok {
			stack = append(stack, idx)
		}
	}

	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !reachable.AddIndex(idx) {
			continue
		}

		for _, n := range g.Neighbors(idx) {
			if !reachable.ContainsIndex(n) {
				stack = append(stack, n)
			}
		}

		decl := g.At(idx)
		if decl.Parent != "" {
			if pidx, ok := g.Index(decl.Parent); ok && !reachable.ContainsIndex(pidx) {
				stack = append(stack, pidx)
			}
		}
		for _, child := range g.Children(decl.ID) {
			if cidx, ok := g.Index(child); ok && !reachable.ContainsIndex(cidx) {
				stack = append(stack, cidx)
			}
		}
	}

	return reachable
}

// issueFor classifies an unreachable declaration. Imports never get here;
// Analyze excludes them along with files and packages.
func issueFor(decl *graph.Declaration) models.Issue {
	switch decl.Kind {
	case graph.KindParameter:
		return models.IssueUnusedParameter
	case graph.KindEnumCase:
		return models.IssueUnusedEnumCase
	default:
		return models.IssueUnreferenced
	}
}
