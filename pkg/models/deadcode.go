// Package models defines the dead-code finding types shared by all
// analyzers and consumed by reporting.
package models

import (
	"fmt"
	"sort"
	"strconv"

	"github.com/zeebo/blake3"

	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
)

// Confidence indicates how certain the analysis is that a finding is dead.
// The levels form an ordered lattice; Confirmed is reserved for runtime
// coverage evidence.
type Confidence int

const (
	ConfidenceLow Confidence = iota
	ConfidenceMedium
	ConfidenceHigh
	ConfidenceConfirmed
)

// String returns the string representation.
func (c Confidence) String() string {
	switch c {
	case ConfidenceLow:
		return "low"
	case ConfidenceMedium:
		return "medium"
	case ConfidenceHigh:
		return "high"
	case ConfidenceConfirmed:
		return "confirmed"
	default:
		return "unknown"
	}
}

// Score maps the level to a 0-1 value for filtering and sorting.
func (c Confidence) Score() float64 {
	switch c {
	case ConfidenceLow:
		return 0.25
	case ConfidenceMedium:
		return 0.50
	case ConfidenceHigh:
		return 0.75
	case ConfidenceConfirmed:
		return 1.0
	default:
		return 0
	}
}

// Raise returns the next level up. Confirmed stays runtime-owned: static
// corroboration caps at High and never moves an already High or
// Confirmed level.
func (c Confidence) Raise() Confidence {
	if c >= ConfidenceHigh {
		return c
	}
	return c + 1
}

// MarshalJSON encodes the level as its name.
func (c Confidence) MarshalJSON() ([]byte, error) {
	return []byte(`"` + c.String() + `"`), nil
}

// Severity of a finding.
type Severity int

const (
	SeverityInfo Severity = iota
	SeverityWarning
	SeverityError
)

// String returns the string representation.
func (s Severity) String() string {
	switch s {
	case SeverityInfo:
		return "info"
	case SeverityWarning:
		return "warning"
	case SeverityError:
		return "error"
	default:
		return "unknown"
	}
}

// MarshalJSON encodes the severity as its name.
func (s Severity) MarshalJSON() ([]byte, error) {
	return []byte(`"` + s.String() + `"`), nil
}

// Issue classifies a dead-code finding.
type Issue string

const (
	// IssueUnreferenced marks a declaration with no inbound references.
	IssueUnreferenced Issue = "unreferenced"
	// IssueAssignOnly marks a property that is written but never read.
	IssueAssignOnly Issue = "assign_only"
	// IssueUnusedParameter marks a parameter that is never used.
	IssueUnusedParameter Issue = "unused_parameter"
	// IssueUnusedImport marks an import that is never used.
	IssueUnusedImport Issue = "unused_import"
	// IssueUnusedEnumCase marks an enum case that is never used.
	IssueUnusedEnumCase Issue = "unused_enum_case"
	// IssueNeverExecuted marks a statically reachable declaration that
	// coverage shows was never executed.
	IssueNeverExecuted Issue = "never_executed"
)

// Code returns the stable issue code used in reports.
func (i Issue) Code() string {
	switch i {
	case IssueUnreferenced:
		return "DC001"
	case IssueAssignOnly:
		return "DC002"
	case IssueUnusedParameter:
		return "DC003"
	case IssueUnusedImport:
		return "DC004"
	case IssueUnusedEnumCase:
		return "DC005"
	case IssueNeverExecuted:
		return "DC017"
	default:
		return "DC000"
	}
}

// DefaultSeverity returns the severity assigned when a finding is created.
func (i Issue) DefaultSeverity() Severity {
	switch i {
	case IssueUnusedParameter, IssueUnusedImport:
		return SeverityInfo
	default:
		return SeverityWarning
	}
}

// DefaultMessage renders the standard message for a declaration.
func (i Issue) DefaultMessage(decl *graph.Declaration) string {
	switch i {
	case IssueAssignOnly:
		return fmt.Sprintf("%s '%s' is assigned but never read", decl.Kind.DisplayName(), decl.Name)
	case IssueUnusedParameter:
		return fmt.Sprintf("Parameter '%s' is never used", decl.Name)
	case IssueUnusedImport:
		return fmt.Sprintf("Import '%s' is never used", decl.Name)
	case IssueUnusedEnumCase:
		return fmt.Sprintf("Enum case '%s' is never used", decl.Name)
	case IssueNeverExecuted:
		return fmt.Sprintf("%s '%s' is reachable but was never executed at runtime", decl.Kind.DisplayName(), decl.Name)
	default:
		return fmt.Sprintf("%s '%s' is never used", decl.Kind.DisplayName(), decl.Name)
	}
}

// DeadCode is one finding. Findings are created with defaults, enriched via
// the With* builders, and finalized into a sorted, deduplicated list.
type DeadCode struct {
	Declaration      graph.Declaration `json:"declaration"`
	Issue            Issue             `json:"issue"`
	Severity         Severity          `json:"severity"`
	Confidence       Confidence        `json:"confidence"`
	Message          string            `json:"message"`
	RuntimeConfirmed bool              `json:"runtime_confirmed"`
	ContextHash      string            `json:"context_hash"`
}

// New creates a finding with the issue's default severity and message and
// Medium confidence (the static-only default).
func New(decl graph.Declaration, issue Issue) DeadCode {
	return DeadCode{
		Declaration: decl,
		Issue:       issue,
		Severity:    issue.DefaultSeverity(),
		Confidence:  ConfidenceMedium,
		Message:     issue.DefaultMessage(&decl),
		ContextHash: contextHash(&decl, issue),
	}
}

// WithMessage replaces the message.
func (dc DeadCode) WithMessage(msg string) DeadCode {
	dc.Message = msg
	return dc
}

// WithSeverity replaces the severity.
func (dc DeadCode) WithSeverity(sev Severity) DeadCode {
	dc.Severity = sev
	return dc
}

// WithConfidence replaces the confidence level.
func (dc DeadCode) WithConfidence(conf Confidence) DeadCode {
	dc.Confidence = conf
	return dc
}

// WithRuntimeConfirmed records coverage evidence. A confirmed finding is
// forced to the Confirmed level unconditionally.
func (dc DeadCode) WithRuntimeConfirmed(confirmed bool) DeadCode {
	dc.RuntimeConfirmed = confirmed
	if confirmed {
		dc.Confidence = ConfidenceConfirmed
	}
	return dc
}

// contextHash is a stable digest of the finding's identity, used by external
// baseline and suppression tooling to recognize a finding across runs.
func contextHash(decl *graph.Declaration, issue Issue) string {
	data := decl.Name + ":" + decl.Location.File + ":" +
		strconv.FormatUint(uint64(decl.Location.Line), 10) + ":" + string(issue)
	sum := blake3.Sum256([]byte(data))
	return fmt.Sprintf("%x", sum[:8])
}

// Finalize sorts findings by (file, line, column, id) and drops duplicate
// declaration ids, keeping the first occurrence. Every analyzer output and
// every merge passes through here, so thread scheduling in parallel phases
// is never observable in the result.
func Finalize(findings []DeadCode) []DeadCode {
	sort.SliceStable(findings, func(i, j int) bool {
		a, b := &findings[i].Declaration.Location, &findings[j].Declaration.Location
		if a.File != b.File {
			return a.File < b.File
		}
		if a.Line != b.Line {
			return a.Line < b.Line
		}
		if a.Column != b.Column {
			return a.Column < b.Column
		}
		return findings[i].Declaration.ID < findings[j].Declaration.ID
	})

	seen := make(map[graph.DeclarationID]struct{}, len(findings))
	out := findings[:0]
	for _, dc := range findings {
		if _, dup := seen[dc.Declaration.ID]; dup {
			continue
		}
		seen[dc.Declaration.ID] = struct{}{}
		out = append(out, dc)
	}
	return out
}

// FilterByConfidence keeps findings at or above the minimum score.
func FilterByConfidence(findings []DeadCode, minScore float64) []DeadCode {
	out := make([]DeadCode, 0, len(findings))
	for _, dc := range findings {
		if dc.Confidence.Score() >= minScore {
			out = append(out, dc)
		}
	}
	return out
}
