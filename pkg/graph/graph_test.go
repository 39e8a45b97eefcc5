package graph

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decl(id DeclarationID, name string, kind Kind, file string, line uint32) Declaration {
	return Declaration{
		ID:   id,
		Name: name,
		Kind: kind,
		Location: Location{
			File:      file,
			Line:      line,
			Column:    1,
			StartByte: line * 100,
			EndByte:   line*100 + 50,
		},
	}
}

func TestBuilderBuild(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a", "Alpha", KindClass, "a.kt", 1))
	b.AddDeclaration(decl("b", "beta", KindFunction, "a.kt", 10))
	b.AddReference(Reference{From: "a", To: "b", Kind: RefCall})

	g := b.Build()
	require.Equal(t, 2, g.Len())

	d, ok := g.Declaration("a")
	require.True(t, ok)
	assert.Equal(t, "Alpha", d.Name)

	_, ok = g.Declaration("missing")
	assert.False(t, ok)

	idx, ok := g.Index("a")
	require.True(t, ok)
	neighbors := g.Neighbors(idx)
	require.Len(t, neighbors, 1)
	assert.Equal(t, DeclarationID("b"), g.At(neighbors[0]).ID)
}

func TestByName(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a.kt:100-190", "render", KindFunction, "a.kt", 1))
	b.AddDeclaration(decl("b.kt:100-190", "render", KindMethod, "b.kt", 1))
	b.AddDeclaration(decl("a.kt:1000-1090", "layout", KindFunction, "a.kt", 10))

	g := b.Build()
	assert.ElementsMatch(t,
		[]DeclarationID{"a.kt:100-190", "b.kt:100-190"},
		g.ByName("render"))
	assert.Equal(t, []DeclarationID{"a.kt:1000-1090"}, g.ByName("layout"))
	assert.Empty(t, g.ByName("missing"))
}

func TestBuilderKeepsFirstDuplicate(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a", "First", KindClass, "a.kt", 1))
	b.AddDeclaration(decl("a", "Second", KindClass, "a.kt", 2))

	g := b.Build()
	require.Equal(t, 1, g.Len())
	d, ok := g.Declaration("a")
	require.True(t, ok)
	assert.Equal(t, "First", d.Name)
}

func TestBuildDropsDanglingEdges(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a", "Alpha", KindClass, "a.kt", 1))
	b.AddReference(Reference{From: "a", To: "ghost", Kind: RefCall})
	b.AddReference(Reference{From: "ghost", To: "a", Kind: RefCall})

	g := b.Build()
	idx, _ := g.Index("a")
	assert.Empty(t, g.Neighbors(idx))
	assert.False(t, g.IsReferenced("a"))
	assert.Empty(t, g.References())
}

func TestChildrenLookup(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("cls", "Foo", KindClass, "a.kt", 1))
	child := decl("m", "bar", KindMethod, "a.kt", 5)
	child.Parent = "cls"
	b.AddDeclaration(child)

	g := b.Build()
	children := g.Children("cls")
	require.Len(t, children, 1)
	assert.Equal(t, DeclarationID("m"), children[0])
	assert.Empty(t, g.Children("m"))
}

func TestInboundLookup(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a", "a", KindFunction, "a.kt", 1))
	b.AddDeclaration(decl("p", "p", KindProperty, "a.kt", 5))
	b.AddReference(Reference{From: "a", To: "p", Kind: RefWrite})
	b.AddReference(Reference{From: "a", To: "p", Kind: RefRead})

	g := b.Build()
	refs := g.ReferencesTo("p")
	require.Len(t, refs, 2)
	assert.True(t, g.HasInboundKind("p", RefWrite))
	assert.True(t, g.HasInboundKind("p", RefRead))
	assert.False(t, g.HasInboundKind("p", RefCall))
	assert.True(t, g.IsReferenced("p"))
	assert.False(t, g.IsReferenced("a"))
}

func TestSortIDs(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("z", "z", KindFunction, "b.kt", 1))
	b.AddDeclaration(decl("y", "y", KindFunction, "a.kt", 20))
	b.AddDeclaration(decl("x", "x", KindFunction, "a.kt", 3))
	g := b.Build()

	ids := []DeclarationID{"z", "unknown", "y", "x"}
	g.SortIDs(ids)
	assert.Equal(t, []DeclarationID{"x", "y", "z", "unknown"}, ids)
}

func TestSet(t *testing.T) {
	b := NewBuilder()
	b.AddDeclaration(decl("a", "a", KindFunction, "a.kt", 1))
	b.AddDeclaration(decl("b", "b", KindFunction, "a.kt", 5))
	g := b.Build()

	s := NewSet(g)
	assert.True(t, s.Add("a"))
	assert.False(t, s.Add("missing"))
	assert.True(t, s.Contains("a"))
	assert.False(t, s.Contains("b"))
	assert.False(t, s.Contains("missing"))
	assert.Equal(t, 1, s.Len())

	idx, _ := g.Index("b")
	assert.True(t, s.AddIndex(idx))
	assert.False(t, s.AddIndex(idx))
	assert.Equal(t, []DeclarationID{"a", "b"}, s.IDs())
}

func TestDocumentBuild(t *testing.T) {
	raw := `{
		"declarations": [
			{"id": "a", "name": "Main", "kind": "class", "visibility": "public",
			 "location": {"file": "main.kt", "line": 1, "column": 1, "start_byte": 0, "end_byte": 100}},
			{"id": "b", "name": "helper", "kind": "function", "visibility": "private",
			 "location": {"file": "main.kt", "line": 10, "column": 1, "start_byte": 200, "end_byte": 300}}
		],
		"references": [
			{"from": "a", "to": "b", "kind": "call"},
			{"from": "a", "to": "ghost", "kind": "call"}
		],
		"entry_points": ["a", "not-a-real-id"]
	}`

	doc, err := ReadDocument(strings.NewReader(raw))
	require.NoError(t, err)

	g, entries := doc.Build()
	assert.Equal(t, 2, g.Len())
	assert.True(t, entries.Contains("a"))
	// Unknown entry ids are dropped, not errors.
	assert.False(t, entries.Contains("not-a-real-id"))

	idx, _ := g.Index("a")
	require.Len(t, g.Neighbors(idx), 1)
}

func TestReadDocumentRejectsGarbage(t *testing.T) {
	_, err := ReadDocument(strings.NewReader("not json"))
	assert.Error(t, err)
}

func TestDeclarationHelpers(t *testing.T) {
	d := Declaration{
		Name:        "bar",
		Modifiers:   []string{"private", "suspend"},
		Annotations: []string{"com.example.SerializedName"},
	}
	assert.True(t, d.HasModifier("suspend"))
	assert.False(t, d.HasModifier("override"))
	assert.True(t, d.HasAnnotation("SerializedName"))
	assert.False(t, d.HasAnnotation("Inject"))

	assert.Equal(t, "bar", d.QualifiedName())
	d.FullyQualifiedName = "com.example.Foo.bar"
	assert.Equal(t, "com.example.Foo.bar", d.QualifiedName())
	assert.Equal(t, "bar", SimpleName(d.QualifiedName()))
}

func TestLocationLineRange(t *testing.T) {
	start, end := Location{Line: 5, EndLine: 9}.LineRange()
	assert.Equal(t, 5, start)
	assert.Equal(t, 9, end)

	start, end = Location{Line: 5}.LineRange()
	assert.Equal(t, 5, start)
	assert.Equal(t, 5, end)
}
