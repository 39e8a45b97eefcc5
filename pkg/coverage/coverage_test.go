package coverage

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestAddRegionSumsIdenticalRanges(t *testing.T) {
	d := New()
	d.AddRegion("a.kt", 1, 10, 3)
	d.AddRegion("a.kt", 1, 10, 4)
	d.AddRegion("a.kt", 20, 30, 0)

	count, ok := d.ExecutionCount("a.kt", 1, 10)
	require.True(t, ok)
	assert.Equal(t, int64(7), count)
	assert.Equal(t, 2, d.Len())
}

func TestExecutionCountOverlap(t *testing.T) {
	d := New()
	d.AddRegion("a.kt", 5, 10, 2)
	d.AddRegion("a.kt", 11, 20, 3)

	// A query spanning both regions sums them.
	count, ok := d.ExecutionCount("a.kt", 8, 12)
	require.True(t, ok)
	assert.Equal(t, int64(5), count)

	// Partial overlap counts too.
	count, ok = d.ExecutionCount("a.kt", 10, 10)
	require.True(t, ok)
	assert.Equal(t, int64(2), count)

	_, ok = d.ExecutionCount("a.kt", 50, 60)
	assert.False(t, ok)
	_, ok = d.ExecutionCount("other.kt", 5, 10)
	assert.False(t, ok)
}

func TestMerge(t *testing.T) {
	a := New()
	a.AddRegion("a.kt", 1, 10, 1)

	b := New()
	b.AddRegion("a.kt", 1, 10, 2)
	b.AddRegion("b.kt", 1, 5, 0)

	a.Merge(b)
	count, ok := a.ExecutionCount("a.kt", 1, 10)
	require.True(t, ok)
	assert.Equal(t, int64(3), count)

	count, ok = a.ExecutionCount("b.kt", 1, 5)
	require.True(t, ok)
	assert.Equal(t, int64(0), count)

	a.Merge(nil)
	assert.Equal(t, 2, a.Len())
}

func TestRead(t *testing.T) {
	raw := `{
		"files": [
			{"file": "a.kt", "regions": [
				{"start_line": 1, "end_line": 10, "count": 5},
				{"start_line": 20, "end_line": 25, "count": 0}
			]}
		]
	}`
	d, err := Read(strings.NewReader(raw))
	require.NoError(t, err)

	count, ok := d.ExecutionCount("a.kt", 20, 25)
	require.True(t, ok)
	assert.Equal(t, int64(0), count)
}

func TestReadRejectsGarbage(t *testing.T) {
	_, err := Read(strings.NewReader("{"))
	assert.Error(t, err)
}
