package reachability

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
	"github.com/KevinDoremy/SearchDeadCode/pkg/testutil"
)

func TestWholeTypeRetention(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("Foo", graph.KindClass)
	f.DeclareIn("used", graph.KindMethod, "Foo")
	f.DeclareIn("neverCalled", graph.KindMethod, "Foo")
	f.Refer("main", "used", graph.RefCall)

	g := f.Build()
	result, err := New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	// Reaching one method retains the whole owning type.
	assert.True(t, result.Reachable.Contains(f.ID("Foo")))
	assert.True(t, result.Reachable.Contains(f.ID("neverCalled")))
	assert.Empty(t, result.Findings)
}

func TestUnreachableReported(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("Orphan", graph.KindClass)
	f.Declare("stale", graph.KindImport)
	f.Declare("lib", graph.KindFile)
	f.Declare("pkg", graph.KindPackage)

	g := f.Build()
	result, err := New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	// Imports, files and packages are trivial exclusions.
	require.Len(t, result.Findings, 1)
	assert.Equal(t, f.ID("Orphan"), result.Findings[0].Declaration.ID)
	assert.Equal(t, models.IssueUnreferenced, result.Findings[0].Issue)
}

func TestSoundness(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("a", graph.KindFunction)
	f.Declare("b", graph.KindFunction)
	f.Declare("dead", graph.KindFunction)
	f.Refer("main", "a", graph.RefCall)
	f.Refer("a", "b", graph.RefCall)

	g := f.Build()
	result, err := New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	for _, dc := range result.Findings {
		assert.False(t, result.Reachable.Contains(dc.Declaration.ID),
			"reachable declaration %s reported dead", dc.Declaration.Name)
	}
	require.Len(t, result.Findings, 1)
	assert.Equal(t, f.ID("dead"), result.Findings[0].Declaration.ID)
}

func TestEmptyEntryPoints(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("a", graph.KindFunction)
	f.Declare("b", graph.KindFunction)

	g := f.Build()
	result, err := New().Analyze(g, graph.NewIDSet())
	require.NoError(t, err)

	assert.Equal(t, 0, result.Reachable.Len())
	assert.Len(t, result.Findings, 2)
}

func TestEmptyGraph(t *testing.T) {
	g := graph.NewBuilder().Build()
	result, err := New().Analyze(g, graph.NewIDSet())
	require.NoError(t, err)
	assert.Empty(t, result.Findings)
	assert.Equal(t, 0, result.Reachable.Len())
}

func TestUnknownEntryPointIgnored(t *testing.T) {
	f := testutil.NewFixture("app.kt")
	f.Declare("a", graph.KindFunction)

	g := f.Build()
	entries := graph.NewIDSet(graph.DeclarationID("missing"))
	result, err := New().Analyze(g, entries)
	require.NoError(t, err)
	assert.Equal(t, 0, result.Reachable.Len())
	assert.Len(t, result.Findings, 1)
}
