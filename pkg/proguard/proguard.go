// Package proguard holds distilled shrinker facts: the symbol names an
// independent whole-program optimizer (R8/ProGuard) determined to be
// unused. Parsing the full usage.txt format is an external concern;
// this package consumes a line-oriented symbol listing where member
// lines are indented under their class line.
package proguard

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"
)

// Usage answers whether a symbol was removed by the shrinker.
type Usage struct {
	classes map[string]struct{}
	members map[string]struct{}
}

// NewUsage creates an empty usage fact set.
func NewUsage() *Usage {
	return &Usage{
		classes: make(map[string]struct{}),
		members: make(map[string]struct{}),
	}
}

// AddClass records a class the shrinker removed.
func (u *Usage) AddClass(name string) {
	u.classes[name] = struct{}{}
}

// AddMember records a member the shrinker removed.
func (u *Usage) AddMember(name string) {
	u.members[name] = struct{}{}
}

// IsDefinitivelyUnused reports whether the shrinker removed the symbol,
// matching fully-qualified class names and bare member names.
func (u *Usage) IsDefinitivelyUnused(name string) bool {
	if _, ok := u.classes[name]; ok {
		return true
	}
	if _, ok := u.members[name]; ok {
		return true
	}
	// A qualified member name matches when its simple part was removed.
	if i := strings.LastIndexByte(name, '.'); i >= 0 {
		if _, ok := u.members[name[i+1:]]; ok {
			return true
		}
	}
	return false
}

// Len returns the number of recorded symbols.
func (u *Usage) Len() int {
	return len(u.classes) + len(u.members)
}

// Read parses a line-oriented symbol listing. Unindented lines are
// class names; indented lines are members of the preceding class. A
// member line keeps only its bare name, dropping type and argument
// decoration.
func Read(r io.Reader) (*Usage, error) {
	u := NewUsage()
	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if !strings.HasPrefix(line, " ") && !strings.HasPrefix(line, "\t") {
			u.AddClass(strings.TrimSuffix(strings.TrimSpace(line), ":"))
			continue
		}
		u.AddMember(memberName(strings.TrimSpace(line)))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading usage listing: %w", err)
	}
	return u, nil
}

// Load reads usage facts from a file.
func Load(path string) (*Usage, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening usage listing %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}

// memberName strips a usage.txt member line down to the bare member
// name: return type and modifiers before it, argument list after it.
func memberName(line string) string {
	if i := strings.IndexByte(line, '('); i >= 0 {
		line = line[:i]
	}
	if i := strings.LastIndexByte(line, ' '); i >= 0 {
		line = line[i+1:]
	}
	return line
}
