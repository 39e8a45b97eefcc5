package hybrid

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinDoremy/SearchDeadCode/pkg/coverage"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
	"github.com/KevinDoremy/SearchDeadCode/pkg/proguard"
	"github.com/KevinDoremy/SearchDeadCode/pkg/testutil"
)

func finding(name, file string, line, endLine uint32) models.DeadCode {
	return models.New(graph.Declaration{
		ID:   graph.DeclarationID(name),
		Name: name,
		Kind: graph.KindMethod,
		Location: graph.Location{
			File:    file,
			Line:    line,
			EndLine: endLine,
			Column:  1,
		},
	}, models.IssueUnreferenced)
}

func TestMergeWithoutFactsIsIdentity(t *testing.T) {
	findings := []models.DeadCode{finding("a", "a.kt", 1, 3)}
	out := New().Merge(findings)
	require.Len(t, out, 1)
	assert.Equal(t, models.ConfidenceMedium, out[0].Confidence)
	assert.False(t, out[0].RuntimeConfirmed)
}

func TestUsageCorroborationRaisesOneLevel(t *testing.T) {
	usage := proguard.NewUsage()
	usage.AddMember("a")

	out := New(WithUsageFacts(usage)).Merge([]models.DeadCode{
		finding("a", "a.kt", 1, 3),
		finding("b", "a.kt", 10, 12),
	})
	require.Len(t, out, 2)
	assert.Equal(t, models.ConfidenceHigh, out[0].Confidence)
	assert.Equal(t, models.ConfidenceMedium, out[1].Confidence)
}

func TestUsageCorroborationCapsAtHigh(t *testing.T) {
	usage := proguard.NewUsage()
	usage.AddMember("a")

	in := finding("a", "a.kt", 1, 3).WithConfidence(models.ConfidenceHigh)
	out := New(WithUsageFacts(usage)).Merge([]models.DeadCode{in})
	require.Len(t, out, 1)
	assert.Equal(t, models.ConfidenceHigh, out[0].Confidence)
}

func TestUsageCorroborationKeepsConfirmed(t *testing.T) {
	usage := proguard.NewUsage()
	usage.AddMember("a")

	// A finding confirmed by an earlier coverage pass must survive a
	// later usage-facts merge at Confirmed.
	in := finding("a", "a.kt", 1, 3).WithRuntimeConfirmed(true)
	require.Equal(t, models.ConfidenceConfirmed, in.Confidence)

	out := New(WithUsageFacts(usage)).Merge([]models.DeadCode{in})
	require.Len(t, out, 1)
	assert.Equal(t, models.ConfidenceConfirmed, out[0].Confidence)
	assert.True(t, out[0].RuntimeConfirmed)
}

func TestZeroCoverageForcesConfirmed(t *testing.T) {
	cov := coverage.New()
	cov.AddRegion("a.kt", 1, 3, 0)

	out := New(WithCoverage(cov)).Merge([]models.DeadCode{finding("a", "a.kt", 1, 3)})
	require.Len(t, out, 1)
	assert.True(t, out[0].RuntimeConfirmed)
	assert.Equal(t, models.ConfidenceConfirmed, out[0].Confidence)
}

func TestExecutedDeclarationNotConfirmed(t *testing.T) {
	cov := coverage.New()
	cov.AddRegion("a.kt", 1, 3, 7)

	out := New(WithCoverage(cov)).Merge([]models.DeadCode{finding("a", "a.kt", 1, 3)})
	require.Len(t, out, 1)
	assert.False(t, out[0].RuntimeConfirmed)
	assert.Equal(t, models.ConfidenceMedium, out[0].Confidence)
}

func TestNoOverlappingCoverageIsNoFact(t *testing.T) {
	cov := coverage.New()
	cov.AddRegion("a.kt", 100, 110, 0)

	// A zero count elsewhere in the file says nothing about this range.
	out := New(WithCoverage(cov)).Merge([]models.DeadCode{finding("a", "a.kt", 1, 3)})
	require.Len(t, out, 1)
	assert.False(t, out[0].RuntimeConfirmed)
}

func TestFindRuntimeDeadCode(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("rarelyUsed", graph.KindFunction)
	f.Refer("main", "rarelyUsed", graph.RefCall)

	g := f.Build()
	reachable := graph.NewSet(g)
	reachable.Add(f.ID("main"))
	reachable.Add(f.ID("rarelyUsed"))

	mainDecl, _ := g.Declaration(f.ID("main"))
	rareDecl, _ := g.Declaration(f.ID("rarelyUsed"))

	cov := coverage.New()
	mainStart, mainEnd := mainDecl.Location.LineRange()
	cov.AddRegion("app.kt", mainStart, mainEnd, 42)
	rareStart, rareEnd := rareDecl.Location.LineRange()
	cov.AddRegion("app.kt", rareStart, rareEnd, 0)

	m := New(WithCoverage(cov))
	out := m.FindRuntimeDeadCode(g, reachable)
	require.Len(t, out, 1)
	assert.Equal(t, f.ID("rarelyUsed"), out[0].Declaration.ID)
	assert.Equal(t, models.IssueNeverExecuted, out[0].Issue)
	assert.True(t, out[0].RuntimeConfirmed)
	assert.Equal(t, models.ConfidenceConfirmed, out[0].Confidence)
}

func TestFindRuntimeDeadCodeWithoutCoverage(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("main", graph.KindFunction)
	g := f.Build()
	reachable := graph.NewSet(g)
	reachable.Add(f.ID("main"))

	assert.Nil(t, New().FindRuntimeDeadCode(g, reachable))
}
