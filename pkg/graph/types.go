package graph

import (
	"fmt"
	"strings"
)

// DeclarationID uniquely identifies one declaration. It is derived from the
// declaring file and byte range, so it is stable across runs and orders
// lexicographically by file path.
type DeclarationID string

// NewDeclarationID builds an id from a file path and byte range.
func NewDeclarationID(file string, startByte, endByte uint32) DeclarationID {
	return DeclarationID(fmt.Sprintf("%s:%d-%d", file, startByte, endByte))
}

// String returns the string representation.
func (id DeclarationID) String() string {
	return string(id)
}

// Kind classifies a declaration.
type Kind string

const (
	KindClass       Kind = "class"
	KindInterface   Kind = "interface"
	KindObject      Kind = "object"
	KindFunction    Kind = "function"
	KindMethod      Kind = "method"
	KindProperty    Kind = "property"
	KindField       Kind = "field"
	KindParameter   Kind = "parameter"
	KindConstructor Kind = "constructor"
	KindImport      Kind = "import"
	KindEnumCase    Kind = "enum_case"
	KindFile        Kind = "file"
	KindPackage     Kind = "package"
)

// String returns the string representation.
func (k Kind) String() string {
	return string(k)
}

// IsType reports whether the kind is a type-level declaration (class,
// interface, or object).
func (k Kind) IsType() bool {
	return k == KindClass || k == KindInterface || k == KindObject
}

// DisplayName returns a human-readable name for messages.
func (k Kind) DisplayName() string {
	switch k {
	case KindEnumCase:
		return "Enum case"
	default:
		if k == "" {
			return "Declaration"
		}
		return strings.ToUpper(string(k[:1])) + string(k[1:])
	}
}

// Visibility of a declaration.
type Visibility string

const (
	VisibilityPublic    Visibility = "public"
	VisibilityInternal  Visibility = "internal"
	VisibilityProtected Visibility = "protected"
	VisibilityPrivate   Visibility = "private"
)

// String returns the string representation.
func (v Visibility) String() string {
	return string(v)
}

// ReferenceKind classifies an edge in the reference graph.
type ReferenceKind string

const (
	RefCall        ReferenceKind = "call"
	RefRead        ReferenceKind = "read"
	RefWrite       ReferenceKind = "write"
	RefInherit     ReferenceKind = "inherit"
	RefInstantiate ReferenceKind = "instantiate"
)

// String returns the string representation.
func (r ReferenceKind) String() string {
	return string(r)
}

// Location records where a declaration lives in source.
type Location struct {
	File      string `json:"file"`
	Line      uint32 `json:"line"`
	EndLine   uint32 `json:"end_line,omitempty"`
	Column    uint32 `json:"column"`
	StartByte uint32 `json:"start_byte"`
	EndByte   uint32 `json:"end_byte"`
}

// LineRange returns the inclusive line span of the location. A missing
// end line means a single-line declaration.
func (l Location) LineRange() (int, int) {
	start := int(l.Line)
	end := int(l.EndLine)
	if end < start {
		end = start
	}
	return start, end
}

// Declaration is one named program element. Relationships (parent, super
// types, references) are expressed as keys, never pointers, so the graph's
// ownership structure stays acyclic even when the reference graph is not.
type Declaration struct {
	ID                 DeclarationID `json:"id"`
	Name               string        `json:"name"`
	Kind               Kind          `json:"kind"`
	Parent             DeclarationID `json:"parent,omitempty"` // empty means top-level
	Modifiers          []string      `json:"modifiers,omitempty"`
	Annotations        []string      `json:"annotations,omitempty"`
	Visibility         Visibility    `json:"visibility"`
	SuperTypes         []string      `json:"super_types,omitempty"`
	FullyQualifiedName string        `json:"fully_qualified_name,omitempty"`
	Location           Location      `json:"location"`
	Language           string        `json:"language,omitempty"`
	IsStatic           bool          `json:"is_static,omitempty"`
}

// HasModifier reports whether the declaration carries the given modifier.
func (d *Declaration) HasModifier(mod string) bool {
	for _, m := range d.Modifiers {
		if m == mod {
			return true
		}
	}
	return false
}

// HasAnnotation reports whether any annotation contains the given fragment.
// Annotations are matched by substring because front ends record them both
// simple ("Inject") and qualified ("javax.inject.Inject").
func (d *Declaration) HasAnnotation(fragment string) bool {
	for _, a := range d.Annotations {
		if strings.Contains(a, fragment) {
			return true
		}
	}
	return false
}

// QualifiedName returns the fully-qualified name when recorded, falling back
// to the simple name.
func (d *Declaration) QualifiedName() string {
	if d.FullyQualifiedName != "" {
		return d.FullyQualifiedName
	}
	return d.Name
}

// SimpleName returns the last dot-separated segment of the qualified name.
func SimpleName(qualified string) string {
	if idx := strings.LastIndex(qualified, "."); idx >= 0 {
		return qualified[idx+1:]
	}
	return qualified
}

// Reference is a directed edge recording one declaration's use of another.
type Reference struct {
	From DeclarationID `json:"from"`
	To   DeclarationID `json:"to"`
	Kind ReferenceKind `json:"kind"`
}
