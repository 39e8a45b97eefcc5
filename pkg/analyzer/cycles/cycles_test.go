package cycles

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/reachability"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/testutil"
)

func TestZombiePair(t *testing.T) {
	f := testutil.NewFixture("legacy.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("LegacyHelperA", graph.KindClass)
	f.Declare("LegacyHelperB", graph.KindClass)
	f.Refer("LegacyHelperA", "LegacyHelperB", graph.RefCall)
	f.Refer("LegacyHelperB", "LegacyHelperA", graph.RefCall)

	g := f.Build()
	result, err := reachability.New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	// Each helper is independently reported dead by reachability.
	assert.Len(t, result.Findings, 2)

	found := New().Detect(g, result.Reachable)
	require.Len(t, found, 1)
	assert.Equal(t, 2, found[0].Size)
	assert.True(t, found[0].ZombiePair)
	assert.Equal(t, []string{"LegacyHelperA", "LegacyHelperB"}, found[0].Names)
}

func TestThreeCycle(t *testing.T) {
	f := testutil.NewFixture("cycle.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("A", graph.KindClass)
	f.Declare("B", graph.KindClass)
	f.Declare("C", graph.KindClass)
	f.Refer("A", "B", graph.RefCall)
	f.Refer("B", "C", graph.RefCall)
	f.Refer("C", "A", graph.RefCall)

	g := f.Build()
	result, err := reachability.New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	found := New().Detect(g, result.Reachable)
	require.Len(t, found, 1)
	assert.Equal(t, 3, found[0].Size)
	assert.False(t, found[0].ZombiePair)
}

func TestReachableCycleIgnored(t *testing.T) {
	f := testutil.NewFixture("live.kt")
	f.Declare("main", graph.KindFunction)
	f.Declare("A", graph.KindFunction)
	f.Declare("B", graph.KindFunction)
	f.Refer("main", "A", graph.RefCall)
	f.Refer("A", "B", graph.RefCall)
	f.Refer("B", "A", graph.RefCall)

	g := f.Build()
	result, err := reachability.New().Analyze(g, f.Entries("main"))
	require.NoError(t, err)

	assert.Empty(t, New().Detect(g, result.Reachable))
}

func TestNoEdgesNoCycles(t *testing.T) {
	f := testutil.NewFixture("flat.kt")
	f.Declare("a", graph.KindFunction)
	f.Declare("b", graph.KindFunction)

	g := f.Build()
	reachable := graph.NewSet(g)
	assert.Empty(t, New().Detect(g, reachable))
}

func TestEmptyGraph(t *testing.T) {
	g := graph.NewBuilder().Build()
	assert.Empty(t, New().Detect(g, graph.NewSet(g)))
}
