// Package report renders analysis results for the CLI.
package report

import (
	"fmt"
	"io"

	"github.com/KevinDoremy/SearchDeadCode/internal/output"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/cycles"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
)

// DeadCodeReport is the renderable result of one analysis run.
type DeadCodeReport struct {
	Findings []models.DeadCode `json:"findings"`
	Cycles   []cycles.Cycle    `json:"cycles,omitempty"`
	Runtime  []models.DeadCode `json:"runtime_dead,omitempty"`
	Summary  models.Summary    `json:"summary"`
}

var _ output.Renderable = (*DeadCodeReport)(nil)

// New builds a report from analysis outputs.
func New(findings []models.DeadCode, deadCycles []cycles.Cycle, runtime []models.DeadCode, summary models.Summary) *DeadCodeReport {
	return &DeadCodeReport{
		Findings: findings,
		Cycles:   deadCycles,
		Runtime:  runtime,
		Summary:  summary,
	}
}

// RenderData implements output.Renderable.
func (r *DeadCodeReport) RenderData() any {
	return r
}

// RenderText implements output.Renderable.
func (r *DeadCodeReport) RenderText(w io.Writer, colored bool) error {
	if err := r.findingsTable(colored).RenderText(w, colored); err != nil {
		return err
	}
	if len(r.Cycles) > 0 {
		if err := r.cyclesTable().RenderText(w, colored); err != nil {
			return err
		}
	}
	if len(r.Runtime) > 0 {
		if err := r.runtimeTable(colored).RenderText(w, colored); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "%d findings across %d declarations (%.1f%% dead)\n",
		r.Summary.TotalFindings, r.Summary.TotalDeclarations, r.Summary.DeadCodePercentage)
	return nil
}

// RenderMarkdown implements output.Renderable.
func (r *DeadCodeReport) RenderMarkdown(w io.Writer) error {
	if err := r.findingsTable(false).RenderMarkdown(w); err != nil {
		return err
	}
	if len(r.Cycles) > 0 {
		if err := r.cyclesTable().RenderMarkdown(w); err != nil {
			return err
		}
	}
	if len(r.Runtime) > 0 {
		if err := r.runtimeTable(false).RenderMarkdown(w); err != nil {
			return err
		}
	}
	fmt.Fprintf(w, "%d findings across %d declarations (%.1f%% dead)\n",
		r.Summary.TotalFindings, r.Summary.TotalDeclarations, r.Summary.DeadCodePercentage)
	return nil
}

func (r *DeadCodeReport) findingsTable(colored bool) *output.Table {
	rows := make([][]string, 0, len(r.Findings))
	for _, dc := range r.Findings {
		conf := dc.Confidence.String()
		if colored {
			conf = output.ConfidenceColor(dc.Confidence.String(), conf)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", dc.Declaration.Location.File, dc.Declaration.Location.Line),
			dc.Declaration.Name,
			dc.Declaration.Kind.DisplayName(),
			dc.Issue.Code(),
			conf,
			dc.Message,
		})
	}
	return output.NewTable(
		"Dead Code",
		[]string{"Location", "Name", "Kind", "Issue", "Confidence", "Message"},
		rows,
		nil,
		r.Findings,
	)
}

func (r *DeadCodeReport) cyclesTable() *output.Table {
	rows := make([][]string, 0, len(r.Cycles))
	for _, c := range r.Cycles {
		kind := "cycle"
		if c.ZombiePair {
			kind = "zombie pair"
		}
		rows = append(rows, []string{
			fmt.Sprintf("%d", c.Size),
			kind,
			joinNames(c.Names),
		})
	}
	return output.NewTable(
		"Dead Cycles",
		[]string{"Size", "Kind", "Members"},
		rows,
		nil,
		r.Cycles,
	)
}

func (r *DeadCodeReport) runtimeTable(colored bool) *output.Table {
	rows := make([][]string, 0, len(r.Runtime))
	for _, dc := range r.Runtime {
		conf := dc.Confidence.String()
		if colored {
			conf = output.ConfidenceColor(dc.Confidence.String(), conf)
		}
		rows = append(rows, []string{
			fmt.Sprintf("%s:%d", dc.Declaration.Location.File, dc.Declaration.Location.Line),
			dc.Declaration.Name,
			dc.Declaration.Kind.DisplayName(),
			conf,
		})
	}
	return output.NewTable(
		"Reachable But Never Executed",
		[]string{"Location", "Name", "Kind", "Confidence"},
		rows,
		nil,
		r.Runtime,
	)
}

func joinNames(names []string) string {
	out := ""
	for i, n := range names {
		if i > 0 {
			out += " <-> "
		}
		out += n
	}
	return out
}
