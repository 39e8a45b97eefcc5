package models

// Summary provides aggregate statistics over a finalized finding list.
type Summary struct {
	TotalFindings      int            `json:"total_findings"`
	TotalDeclarations  int            `json:"total_declarations"`
	ReachableCount     int            `json:"reachable_count"`
	RuntimeConfirmed   int            `json:"runtime_confirmed"`
	ByIssue            map[Issue]int  `json:"by_issue"`
	ByFile             map[string]int `json:"by_file"`
	DeadCodePercentage float64        `json:"dead_code_percentage"`
}

// NewSummary creates an initialized summary.
func NewSummary() Summary {
	return Summary{
		ByIssue: make(map[Issue]int),
		ByFile:  make(map[string]int),
	}
}

// Summarize aggregates findings against graph and reachability totals.
func Summarize(findings []DeadCode, totalDeclarations, reachableCount int) Summary {
	s := NewSummary()
	s.TotalDeclarations = totalDeclarations
	s.ReachableCount = reachableCount
	for _, dc := range findings {
		s.TotalFindings++
		s.ByIssue[dc.Issue]++
		s.ByFile[dc.Declaration.Location.File]++
		if dc.RuntimeConfirmed {
			s.RuntimeConfirmed++
		}
	}
	if totalDeclarations > 0 {
		s.DeadCodePercentage = float64(s.TotalFindings) / float64(totalDeclarations) * 100
	}
	return s
}
