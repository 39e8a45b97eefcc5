// Package coverage holds distilled runtime coverage facts: execution
// counts keyed by file and line range. Parsing JaCoCo, Kover or LCOV
// output into this form is an external concern; the analyzers only
// consume the facts.
package coverage

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
)

// Region is one covered line range with its accumulated execution count.
type Region struct {
	StartLine int   `json:"start_line"`
	EndLine   int   `json:"end_line"`
	Count     int64 `json:"count"`
}

// Data is a mergeable collection of coverage regions grouped by file.
type Data struct {
	regions map[string][]Region
}

// New creates an empty coverage data set.
func New() *Data {
	return &Data{regions: make(map[string][]Region)}
}

// AddRegion records an execution count for a line range. Counts for an
// identical file and range accumulate by summing, so multiple coverage
// runs can be folded into one data set.
func (d *Data) AddRegion(file string, startLine, endLine int, count int64) {
	for i, r := range d.regions[file] {
		if r.StartLine == startLine && r.EndLine == endLine {
			d.regions[file][i].Count += count
			return
		}
	}
	d.regions[file] = append(d.regions[file], Region{
		StartLine: startLine,
		EndLine:   endLine,
		Count:     count,
	})
}

// Merge folds another data set into this one, summing counts for
// identical regions.
func (d *Data) Merge(other *Data) {
	if other == nil {
		return
	}
	for file, regions := range other.regions {
		for _, r := range regions {
			d.AddRegion(file, r.StartLine, r.EndLine, r.Count)
		}
	}
}

// ExecutionCount sums the counts of every region overlapping the given
// line range. The second return is false when no region overlaps at
// all, which means "no fact", not "never executed".
func (d *Data) ExecutionCount(file string, startLine, endLine int) (int64, bool) {
	var total int64
	overlapped := false
	for _, r := range d.regions[file] {
		if r.StartLine <= endLine && r.EndLine >= startLine {
			total += r.Count
			overlapped = true
		}
	}
	return total, overlapped
}

// Regions returns the recorded regions for a file.
func (d *Data) Regions(file string) []Region {
	return d.regions[file]
}

// Len returns the total number of recorded regions.
func (d *Data) Len() int {
	n := 0
	for _, regions := range d.regions {
		n += len(regions)
	}
	return n
}

type fileRecord struct {
	File    string   `json:"file"`
	Regions []Region `json:"regions"`
}

type document struct {
	Files []fileRecord `json:"files"`
}

// Read decodes the distilled JSON facts form.
func Read(r io.Reader) (*Data, error) {
	var doc document
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, fmt.Errorf("decoding coverage facts: %w", err)
	}
	d := New()
	for _, f := range doc.Files {
		for _, region := range f.Regions {
			d.AddRegion(f.File, region.StartLine, region.EndLine, region.Count)
		}
	}
	return d, nil
}

// Load reads coverage facts from a file.
func Load(path string) (*Data, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening coverage facts %s: %w", path, err)
	}
	defer f.Close()
	return Read(f)
}
