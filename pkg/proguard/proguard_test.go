package proguard

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const sampleListing = `com.example.UnusedClass
com.example.PartiallyUsed:
    int unusedField
    void unusedMethod(int,java.lang.String)

com.example.AnotherClass
`

func TestReadListing(t *testing.T) {
	u, err := Read(strings.NewReader(sampleListing))
	require.NoError(t, err)

	assert.True(t, u.IsDefinitivelyUnused("com.example.UnusedClass"))
	assert.True(t, u.IsDefinitivelyUnused("com.example.PartiallyUsed"))
	assert.True(t, u.IsDefinitivelyUnused("com.example.AnotherClass"))
	assert.True(t, u.IsDefinitivelyUnused("unusedField"))
	assert.True(t, u.IsDefinitivelyUnused("unusedMethod"))
	// Qualified member names match on their simple part.
	assert.True(t, u.IsDefinitivelyUnused("com.example.PartiallyUsed.unusedMethod"))

	assert.False(t, u.IsDefinitivelyUnused("com.example.LiveClass"))
	assert.False(t, u.IsDefinitivelyUnused("liveMethod"))
}

func TestMemberNameStripping(t *testing.T) {
	assert.Equal(t, "unusedMethod", memberName("void unusedMethod(int)"))
	assert.Equal(t, "unusedField", memberName("int unusedField"))
	assert.Equal(t, "bare", memberName("bare"))
}

func TestEmptyListing(t *testing.T) {
	u, err := Read(strings.NewReader(""))
	require.NoError(t, err)
	assert.Equal(t, 0, u.Len())
	assert.False(t, u.IsDefinitivelyUnused("anything"))
}
