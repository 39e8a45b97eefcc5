// Package hybrid reconciles static findings with external evidence:
// shrinker usage facts corroborate a finding and raise its confidence;
// runtime coverage showing zero executions confirms it outright. The
// package also surfaces the inverse signal, declarations the static
// analysis keeps alive that never ran in production.
package hybrid

import (
	"fmt"

	"github.com/KevinDoremy/SearchDeadCode/pkg/coverage"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
)

// UsageFacts is the name predicate distilled from an R8/ProGuard usage
// listing.
type UsageFacts interface {
	IsDefinitivelyUnused(name string) bool
}

// Merger enriches finding confidence with external fact sources. Both
// sources are optional; with neither configured, Merge is the identity
// apart from re-finalization.
type Merger struct {
	usage    UsageFacts
	coverage *coverage.Data
}

// Option configures the merger.
type Option func(*Merger)

// WithUsageFacts supplies shrinker usage facts.
func WithUsageFacts(facts UsageFacts) Option {
	return func(m *Merger) {
		m.usage = facts
	}
}

// WithCoverage supplies runtime coverage facts.
func WithCoverage(data *coverage.Data) Option {
	return func(m *Merger) {
		m.coverage = data
	}
}

// New creates a merger.
func New(opts ...Option) *Merger {
	m := &Merger{}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Merge applies the configured fact sources to each finding.
// Corroboration by usage facts raises confidence one level, capped at
// High. A covered region executed exactly zero times marks the finding
// runtime confirmed, which forces Confirmed. A declaration with no
// overlapping coverage region yields no runtime fact either way.
func (m *Merger) Merge(findings []models.DeadCode) []models.DeadCode {
	out := make([]models.DeadCode, 0, len(findings))
	for _, dc := range findings {
		if m.usage != nil && m.corroborated(&dc.Declaration) {
			dc = dc.WithConfidence(dc.Confidence.Raise())
		}
		if m.coverage != nil {
			start, end := dc.Declaration.Location.LineRange()
			count, known := m.coverage.ExecutionCount(dc.Declaration.Location.File, start, end)
			if known && count == 0 {
				dc = dc.WithRuntimeConfirmed(true)
			}
		}
		out = append(out, dc)
	}
	return models.Finalize(out)
}

func (m *Merger) corroborated(decl *graph.Declaration) bool {
	if m.usage.IsDefinitivelyUnused(decl.QualifiedName()) {
		return true
	}
	return m.usage.IsDefinitivelyUnused(decl.Name)
}

// FindRuntimeDeadCode surfaces declarations that static analysis deems
// reachable but coverage shows never executed: theoretically live,
// practically dead. It is a separate category from the static findings
// and requires coverage facts.
func (m *Merger) FindRuntimeDeadCode(g *graph.Graph, reachable *graph.Set) []models.DeadCode {
	if m.coverage == nil {
		return nil
	}
	var findings []models.DeadCode
	for _, id := range reachable.IDs() {
		decl, ok := g.Declaration(id)
		if !ok {
			continue
		}
		switch decl.Kind {
		case graph.KindFile, graph.KindPackage, graph.KindImport:
			continue
		}
		start, end := decl.Location.LineRange()
		count, known := m.coverage.ExecutionCount(decl.Location.File, start, end)
		if !known || count != 0 {
			continue
		}
		findings = append(findings, models.New(*decl, models.IssueNeverExecuted).
			WithRuntimeConfirmed(true).
			WithMessage(fmt.Sprintf("%s '%s' is statically reachable but was never executed", decl.Kind.DisplayName(), decl.Name)))
	}
	return models.Finalize(findings)
}
