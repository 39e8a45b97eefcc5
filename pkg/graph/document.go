package graph

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Document is the wire form of a graph produced by the external parser
// front end: flat declaration and reference lists plus the detected entry
// point ids.
type Document struct {
	Declarations []Declaration   `json:"declarations"`
	References   []Reference     `json:"references"`
	EntryPoints  []DeclarationID `json:"entry_points,omitempty"`
}

// Build converts the document into an immutable Graph and the entry-point
// set. Front-end output is best effort, so duplicate declarations and
// dangling references are tolerated, not reported.
func (d *Document) Build() (*Graph, IDSet) {
	b := NewBuilder()
	for _, decl := range d.Declarations {
		b.AddDeclaration(decl)
	}
	for _, ref := range d.References {
		b.AddReference(ref)
	}
	g := b.Build()

	entries := make(IDSet, len(d.EntryPoints))
	for _, id := range d.EntryPoints {
		if _, ok := g.Index(id); ok {
			entries.Add(id)
		}
	}
	return g, entries
}

// ReadDocument decodes a graph document from a reader.
func ReadDocument(r io.Reader) (*Document, error) {
	var doc Document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding graph document: %w", err)
	}
	return &doc, nil
}

// LoadDocument reads a graph document from a file.
func LoadDocument(path string) (*Document, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening graph document: %w", err)
	}
	defer f.Close()
	return ReadDocument(f)
}
