// Package deep implements the strict, member-precise reachability
// analysis. Unlike the baseline pass it never auto-retains whole types,
// so it can surface unused members inside live classes; the cost is a
// set of escape-hatch heuristics for call edges that polymorphism, DI,
// serialization and coroutines hide from the static graph.
package deep

import (
	"fmt"

	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
)

// Analyzer is the strict analysis pass.
type Analyzer struct {
	unusedMembers bool
	parallel      bool
	workers       int
}

var _ analyzer.GraphAnalyzer = (*Analyzer)(nil)

// Option configures the analyzer.
type Option func(*Analyzer)

// WithUnusedMembers toggles unused-member detection inside reachable
// classes. On by default.
func WithUnusedMembers(detect bool) Option {
	return func(a *Analyzer) {
		a.unusedMembers = detect
	}
}

// WithParallel toggles fork-join evaluation of the per-declaration
// phases. Parallelism never changes output content or ordering.
func WithParallel(parallel bool) Option {
	return func(a *Analyzer) {
		a.parallel = parallel
	}
}

// WithWorkers caps the worker count for parallel phases.
func WithWorkers(n int) Option {
	return func(a *Analyzer) {
		a.workers = n
	}
}

// New creates a deep analyzer.
func New(opts ...Option) *Analyzer {
	a := &Analyzer{unusedMembers: true}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Name implements analyzer.GraphAnalyzer.
func (a *Analyzer) Name() string {
	return "deep"
}

func (a *Analyzer) scanOpts() analyzer.ScanOptions {
	return analyzer.ScanOptions{Parallel: a.parallel, Workers: a.workers}
}

// Analyze runs the phased analysis: strict reachability with escape
// hatches, unreachable filtering, optional unused-member detection,
// pattern flags, then a deterministic finalize.
func (a *Analyzer) Analyze(g *graph.Graph, entryPoints graph.IDSet) (*analyzer.Result, error) {
	reachable := a.findReachableStrict(g, entryPoints)

	findings := a.findUnreachable(g, reachable)
	if a.unusedMembers {
		findings = append(findings, a.findUnusedMembers(g, reachable)...)
	}
	findings = append(findings, a.detectDeadPatterns(g, reachable)...)

	return &analyzer.Result{
		Findings:  models.Finalize(findings),
		Reachable: reachable,
	}, nil
}

// findReachableStrict computes the member-precise reachable set. One
// shared worklist serves every entry point, so the traversal is O(V+E)
// for the whole graph rather than per root. Ancestor propagation and the
// escape-hatch closure each run exactly once; they are deliberately not
// iterated to a fixed point, so a member rescued by an escape hatch does
// not rescue its own nested members in the same run.
func (a *Analyzer) findReachableStrict(g *graph.Graph, entryPoints graph.IDSet) *graph.Set {
	reachable := graph.NewSet(g)
	visited := graph.NewSet(g)

	var stack []uint32
	for id := range entryPoints {
		if idx, ok := g.Index(id); ok {
			stack = append(stack, idx)
		}
	}
	for len(stack) > 0 {
		idx := stack[len(stack)-1]
		stack = stack[:len(stack)-1]
		if !visited.AddIndex(idx) {
			continue
		}
		reachable.AddIndex(idx)
		for _, n := range g.Neighbors(idx) {
			if !visited.ContainsIndex(n) {
				stack = append(stack, n)
			}
		}
	}

	// Ancestor propagation: a used member implies its containing type,
	// file and package are live. Children are never auto-marked.
	for _, id := range reachable.IDs() {
		collectAncestors(g, id, reachable)
	}

	// Classes with an inbound Call edge are instantiated somewhere,
	// which keeps their primary constructor alive.
	instantiated := graph.NewIDSet()
	for _, id := range reachable.IDs() {
		if g.HasInboundKind(id, graph.RefCall) {
			instantiated.Add(id)
		}
	}

	ctx := &ruleContext{g: g, reachable: reachable, instantiated: instantiated}
	rescued := analyzer.ScanIndexes(g.Len(), a.scanOpts(), func(idx uint32) []uint32 {
		decl := g.At(idx)
		if reachable.ContainsIndex(idx) {
			return nil
		}
		if decl.Parent == "" || !reachable.Contains(decl.Parent) {
			return nil
		}
		for _, rule := range escapeRules {
			if rule.matches(ctx, decl) {
				return []uint32{idx}
			}
		}
		return nil
	})
	reachable.AddIndexes(rescued)

	// Sealed/interface closure: subtypes of reachable sealed types and
	// implementations of reachable interfaces are dispatch targets.
	newcomers := a.collectSubtypeClosure(g, reachable)
	reachable.AddIndexes(newcomers)

	// Incremental DFS seeded only from the closure delta, bounding the
	// propagation cost to the newly added nodes.
	for _, start := range newcomers {
		if visited.ContainsIndex(start) {
			continue
		}
		stack = append(stack[:0], start)
		local := graph.NewSet(g)
		for len(stack) > 0 {
			idx := stack[len(stack)-1]
			stack = stack[:len(stack)-1]
			if !local.AddIndex(idx) {
				continue
			}
			reachable.AddIndex(idx)
			for _, n := range g.Neighbors(idx) {
				if !local.ContainsIndex(n) {
					stack = append(stack, n)
				}
			}
		}
	}

	return reachable
}

// collectSubtypeClosure returns the indexes of not-yet-reachable
// declarations whose super types name a reachable sealed type or
// interface, matching on both fully-qualified and simple names.
func (a *Analyzer) collectSubtypeClosure(g *graph.Graph, reachable *graph.Set) []uint32 {
	names := make(map[string]struct{})
	for _, id := range reachable.IDs() {
		decl, ok := g.Declaration(id)
		if !ok {
			continue
		}
		if !isSealedType(decl) && decl.Kind != graph.KindInterface {
			continue
		}
		fqn := decl.QualifiedName()
		names[fqn] = struct{}{}
		names[graph.SimpleName(fqn)] = struct{}{}
	}
	if len(names) == 0 {
		return nil
	}

	return analyzer.ScanIndexes(g.Len(), a.scanOpts(), func(idx uint32) []uint32 {
		if reachable.ContainsIndex(idx) {
			return nil
		}
		decl := g.At(idx)
		for _, super := range decl.SuperTypes {
			if _, ok := names[super]; ok {
				return []uint32{idx}
			}
			if _, ok := names[graph.SimpleName(super)]; ok {
				return []uint32{idx}
			}
		}
		return nil
	})
}

func collectAncestors(g *graph.Graph, id graph.DeclarationID, reachable *graph.Set) {
	decl, ok := g.Declaration(id)
	if !ok {
		return
	}
	for decl.Parent != "" {
		if !reachable.Add(decl.Parent) {
			return
		}
		parent, ok := g.Declaration(decl.Parent)
		if !ok {
			return
		}
		decl = parent
	}
}

// findUnreachable turns the declarations left outside the reachable set
// into findings, after dropping the noise cases: file and package nodes,
// members and constructors of unreachable types (the type itself is the
// finding), inlined constants and synthesized value-type methods.
func (a *Analyzer) findUnreachable(g *graph.Graph, reachable *graph.Set) []models.DeadCode {
	return analyzer.ScanIndexes(g.Len(), a.scanOpts(), func(idx uint32) []models.DeadCode {
		decl := g.At(idx)
		if reachable.ContainsIndex(idx) {
			return nil
		}
		if a.shouldSkip(decl, g, reachable) {
			return nil
		}
		return []models.DeadCode{models.New(*decl, issueFor(decl))}
	})
}

func (a *Analyzer) shouldSkip(decl *graph.Declaration, g *graph.Graph, reachable *graph.Set) bool {
	if decl.Kind == graph.KindFile || decl.Kind == graph.KindPackage {
		return true
	}
	if decl.Parent != "" && !reachable.Contains(decl.Parent) {
		if parent, ok := g.Declaration(decl.Parent); ok && parent.Kind.IsType() {
			return true
		}
	}
	if decl.Kind == graph.KindConstructor && decl.Parent != "" && !reachable.Contains(decl.Parent) {
		return true
	}
	if isConstProperty(decl) {
		return true
	}
	if isSynthesizedValueMethod(decl, g) {
		return true
	}
	return false
}

// findUnusedMembers scans members of reachable classes, the key
// differentiator from the baseline pass. A member with zero inbound
// references is Unreferenced; a property that is only ever written is
// AssignOnly.
func (a *Analyzer) findUnusedMembers(g *graph.Graph, reachable *graph.Set) []models.DeadCode {
	return analyzer.ScanIndexes(g.Len(), a.scanOpts(), func(idx uint32) []models.DeadCode {
		decl := g.At(idx)
		if !reachable.ContainsIndex(idx) {
			return nil
		}
		if decl.Parent == "" || !reachable.Contains(decl.Parent) {
			return nil
		}
		if decl.Kind.IsType() || decl.Kind == graph.KindFile || decl.Kind == graph.KindPackage {
			return nil
		}
		if decl.HasModifier("override") || decl.HasAnnotation("Override") {
			return nil
		}
		if decl.Kind == graph.KindConstructor {
			return nil
		}
		if isSerializationMember(decl) || isConstProperty(decl) {
			return nil
		}
		if isDIEntryPoint(decl) {
			return nil
		}
		if isSynthesizedValueMethod(decl, g) {
			return nil
		}

		var out []models.DeadCode
		if !g.IsReferenced(decl.ID) {
			out = append(out, models.New(*decl, models.IssueUnreferenced).
				WithConfidence(models.ConfidenceMedium))
		}
		if decl.Kind == graph.KindProperty {
			if dc, ok := a.detectWriteOnlyProperty(decl, g); ok {
				out = append(out, dc)
			}
		}
		return out
	})
}

// detectWriteOnlyProperty flags properties that are assigned but never
// read. Zero-reference properties are not flagged here; they are already
// reported as unreferenced.
func (a *Analyzer) detectWriteOnlyProperty(decl *graph.Declaration, g *graph.Graph) (models.DeadCode, bool) {
	refs := g.ReferencesTo(decl.ID)
	if len(refs) == 0 {
		return models.DeadCode{}, false
	}
	hasWrite, hasRead := false, false
	for _, r := range refs {
		switch r.Kind {
		case graph.RefWrite:
			hasWrite = true
		case graph.RefRead:
			hasRead = true
		}
	}
	if !hasWrite || hasRead {
		return models.DeadCode{}, false
	}
	dc := models.New(*decl, models.IssueAssignOnly).
		WithConfidence(models.ConfidenceMedium).
		WithMessage(fmt.Sprintf("Property '%s' is written but never read", decl.Name))
	return dc, true
}

// detectDeadPatterns applies naming and annotation heuristics to
// declarations already confirmed unreachable, upgrading the confidence
// where the pattern is strong.
func (a *Analyzer) detectDeadPatterns(g *graph.Graph, reachable *graph.Set) []models.DeadCode {
	return analyzer.ScanIndexes(g.Len(), a.scanOpts(), func(idx uint32) []models.DeadCode {
		decl := g.At(idx)
		if reachable.ContainsIndex(idx) {
			return nil
		}

		if isDebugOnlyPattern(decl) {
			return []models.DeadCode{models.New(*decl, models.IssueUnreferenced).
				WithConfidence(models.ConfidenceHigh).
				WithMessage(fmt.Sprintf("%s '%s' appears to be debug-only code", decl.Kind.DisplayName(), decl.Name))}
		}
		if isTestHelperPattern(decl) {
			return []models.DeadCode{models.New(*decl, models.IssueUnreferenced).
				WithConfidence(models.ConfidenceHigh).
				WithMessage(fmt.Sprintf("%s '%s' appears to be test code in main source", decl.Kind.DisplayName(), decl.Name))}
		}
		if isDeprecatedUnused(decl, g) {
			return []models.DeadCode{models.New(*decl, models.IssueUnreferenced).
				WithConfidence(models.ConfidenceHigh).
				WithMessage(fmt.Sprintf("%s '%s' is deprecated and has no usages", decl.Kind.DisplayName(), decl.Name))}
		}
		if isStubImplementation(decl) {
			return []models.DeadCode{models.New(*decl, models.IssueUnreferenced).
				WithConfidence(models.ConfidenceMedium).
				WithMessage(fmt.Sprintf("%s '%s' appears to be a stub/empty implementation", decl.Kind.DisplayName(), decl.Name))}
		}
		return nil
	})
}

func issueFor(decl *graph.Declaration) models.Issue {
	switch decl.Kind {
	case graph.KindImport:
		return models.IssueUnusedImport
	case graph.KindParameter:
		return models.IssueUnusedParameter
	case graph.KindEnumCase:
		return models.IssueUnusedEnumCase
	default:
		return models.IssueUnreferenced
	}
}
