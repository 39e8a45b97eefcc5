// Package testutil provides a graph fixture builder shared by analyzer
// tests. Declarations are addressed by name; ids, locations and byte
// ranges are synthesized so tests only state what they care about.
package testutil

import (
	"testing"

	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
)

// Fixture accumulates declarations and references for one test graph.
type Fixture struct {
	builder  *graph.Builder
	file     string
	nextLine uint32
	ids      map[string]graph.DeclarationID
}

// NewFixture creates a fixture whose declarations live in file.
func NewFixture(file string) *Fixture {
	return &Fixture{
		builder:  graph.NewBuilder(),
		file:     file,
		nextLine: 1,
		ids:      make(map[string]graph.DeclarationID),
	}
}

// DeclOption customizes a fixture declaration.
type DeclOption func(*graph.Declaration)

// WithModifiers sets the modifier list.
func WithModifiers(mods ...string) DeclOption {
	return func(d *graph.Declaration) {
		d.Modifiers = mods
	}
}

// WithAnnotations sets the annotation list.
func WithAnnotations(anns ...string) DeclOption {
	return func(d *graph.Declaration) {
		d.Annotations = anns
	}
}

// WithSuperTypes sets the super type names.
func WithSuperTypes(supers ...string) DeclOption {
	return func(d *graph.Declaration) {
		d.SuperTypes = supers
	}
}

// WithLanguage overrides the default kotlin language tag.
func WithLanguage(lang string) DeclOption {
	return func(d *graph.Declaration) {
		d.Language = lang
	}
}

// WithFile overrides the fixture file for one declaration.
func WithFile(file string) DeclOption {
	return func(d *graph.Declaration) {
		d.Location.File = file
	}
}

// WithFQN sets the fully qualified name.
func WithFQN(fqn string) DeclOption {
	return func(d *graph.Declaration) {
		d.FullyQualifiedName = fqn
	}
}

// WithVisibility sets the visibility.
func WithVisibility(v graph.Visibility) DeclOption {
	return func(d *graph.Declaration) {
		d.Visibility = v
	}
}

// Declare adds a top-level declaration and returns its id.
func (f *Fixture) Declare(name string, kind graph.Kind, opts ...DeclOption) graph.DeclarationID {
	return f.DeclareIn(name, kind, "", opts...)
}

// DeclareIn adds a declaration nested under the named parent. The
// parent must have been declared first.
func (f *Fixture) DeclareIn(name string, kind graph.Kind, parent string, opts ...DeclOption) graph.DeclarationID {
	line := f.nextLine
	f.nextLine += 10
	start := line * 100
	end := start + 90

	d := graph.Declaration{
		Name:       name,
		Kind:       kind,
		Visibility: graph.VisibilityPublic,
		Language:   "kotlin",
		Location: graph.Location{
			File:      f.file,
			Line:      line,
			EndLine:   line + 2,
			Column:    1,
			StartByte: start,
			EndByte:   end,
		},
	}
	if parent != "" {
		d.Parent = f.ids[parent]
	}
	for _, opt := range opts {
		opt(&d)
	}
	d.ID = graph.NewDeclarationID(d.Location.File, d.Location.StartByte, d.Location.EndByte)

	f.builder.AddDeclaration(d)
	f.ids[name] = d.ID
	return d.ID
}

// Refer adds a reference edge between two named declarations. Either
// side may be undeclared; the builder drops dangling edges.
func (f *Fixture) Refer(from, to string, kind graph.ReferenceKind) {
	fromID, ok := f.ids[from]
	if !ok {
		fromID = graph.DeclarationID(from)
	}
	toID, ok := f.ids[to]
	if !ok {
		toID = graph.DeclarationID(to)
	}
	f.builder.AddReference(graph.Reference{From: fromID, To: toID, Kind: kind})
}

// ID returns the id assigned to a named declaration.
func (f *Fixture) ID(name string) graph.DeclarationID {
	return f.ids[name]
}

// Build produces the immutable graph.
func (f *Fixture) Build() *graph.Graph {
	return f.builder.Build()
}

// Entries builds an entry point set from declaration names.
func (f *Fixture) Entries(names ...string) graph.IDSet {
	set := graph.NewIDSet()
	for _, name := range names {
		set.Add(f.ids[name])
	}
	return set
}

// MustDecl fetches a declaration by name from a built graph.
func MustDecl(t *testing.T, g *graph.Graph, f *Fixture, name string) *graph.Declaration {
	t.Helper()
	decl, ok := g.Declaration(f.ID(name))
	if !ok {
		t.Fatalf("declaration %q not in graph", name)
	}
	return decl
}
