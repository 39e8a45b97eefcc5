package main

import (
	"bufio"
	"fmt"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/KevinDoremy/SearchDeadCode/internal/output"
	"github.com/KevinDoremy/SearchDeadCode/internal/progress"
	"github.com/KevinDoremy/SearchDeadCode/internal/report"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/cycles"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/deep"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/hybrid"
	"github.com/KevinDoremy/SearchDeadCode/pkg/analyzer/reachability"
	"github.com/KevinDoremy/SearchDeadCode/pkg/config"
	"github.com/KevinDoremy/SearchDeadCode/pkg/coverage"
	"github.com/KevinDoremy/SearchDeadCode/pkg/graph"
	"github.com/KevinDoremy/SearchDeadCode/pkg/models"
	"github.com/KevinDoremy/SearchDeadCode/pkg/proguard"
)

var analyzeCmd = &cobra.Command{
	Use:   "analyze <graph.json>",
	Short: "Analyze a declaration graph for dead code",
	Args:  cobra.ExactArgs(1),
	RunE:  runAnalyze,
}

func init() {
	analyzeCmd.Flags().String("entry-points", "", "File listing entry point declaration ids, one per line")
	analyzeCmd.Flags().StringSlice("retain", nil, "Declaration name patterns kept alive (substring match)")
	analyzeCmd.Flags().Bool("baseline", false, "Use the coarse whole-type-retaining analysis instead of deep")
	analyzeCmd.Flags().Bool("no-unused-members", false, "Disable unused-member detection inside reachable classes")
	analyzeCmd.Flags().Bool("no-cycles", false, "Disable dead cycle detection")
	analyzeCmd.Flags().Bool("no-parallel", false, "Run per-declaration phases on a single goroutine")
	analyzeCmd.Flags().Int("workers", 0, "Worker cap for parallel phases (0 = GOMAXPROCS)")
	analyzeCmd.Flags().Float64("confidence", 0, "Minimum confidence score (0.0-1.0)")
	analyzeCmd.Flags().String("proguard-usage", "", "R8/ProGuard removed-symbol listing for corroboration")
	analyzeCmd.Flags().StringSlice("coverage", nil, "Coverage facts files (JSON), merged by summing counts")
	analyzeCmd.Flags().Bool("runtime-dead", false, "Also report reachable declarations never executed (needs --coverage)")

	rootCmd.AddCommand(analyzeCmd)
}

func runAnalyze(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}
	applyFlags(cmd, cfg)

	doc, err := graph.LoadDocument(args[0])
	if err != nil {
		return err
	}
	g, entryPoints := doc.Build()

	epFile, _ := cmd.Flags().GetString("entry-points")
	if epFile != "" {
		ids, err := readEntryPointFile(epFile)
		if err != nil {
			return err
		}
		for _, id := range ids {
			entryPoints.Add(id)
		}
	}
	addRetained(g, entryPoints, cfg.EntryPoints.Retain)

	if len(entryPoints) == 0 {
		color.Yellow("No entry points resolved; every declaration will be reported")
	}

	spinner := progress.NewSpinner("Analyzing declaration graph...")
	result, err := runAnalysis(cfg, g, entryPoints)
	if err != nil {
		spinner.FinishError(err)
		return fmt.Errorf("analysis failed: %w", err)
	}
	spinner.FinishSuccess()

	findings := result.Findings

	var deadCycles []cycles.Cycle
	if cfg.Analysis.Cycles {
		deadCycles = cycles.New().Detect(g, result.Reachable)
	}

	merger, haveFacts, err := buildMerger(cmd)
	if err != nil {
		return err
	}
	if haveFacts {
		findings = merger.Merge(findings)
	}
	var runtimeDead []models.DeadCode
	if wantRuntime, _ := cmd.Flags().GetBool("runtime-dead"); wantRuntime {
		runtimeDead = merger.FindRuntimeDeadCode(g, result.Reachable)
	}

	findings = excludeConfigured(cfg, findings)
	findings = models.FilterByConfidence(findings, cfg.Analysis.MinConfidence)

	summary := models.Summarize(findings, g.Len(), result.Reachable.Len())

	formatter, err := output.NewFormatter(output.ParseFormat(cfg.Output.Format), outputFile, cfg.Output.Color)
	if err != nil {
		return err
	}
	defer formatter.Close()

	if verbose {
		formatter.Info("%d declarations, %d reachable, %d entry points",
			g.Len(), result.Reachable.Len(), len(entryPoints))
	}

	return formatter.Output(report.New(findings, deadCycles, runtimeDead, summary))
}

func applyFlags(cmd *cobra.Command, cfg *config.Config) {
	if baseline, _ := cmd.Flags().GetBool("baseline"); baseline {
		cfg.Analysis.Deep = false
	}
	if noMembers, _ := cmd.Flags().GetBool("no-unused-members"); noMembers {
		cfg.Analysis.UnusedMembers = false
	}
	if noCycles, _ := cmd.Flags().GetBool("no-cycles"); noCycles {
		cfg.Analysis.Cycles = false
	}
	if noParallel, _ := cmd.Flags().GetBool("no-parallel"); noParallel {
		cfg.Analysis.Parallel = false
	}
	if cmd.Flags().Changed("workers") {
		cfg.Analysis.Workers, _ = cmd.Flags().GetInt("workers")
	}
	if cmd.Flags().Changed("confidence") {
		cfg.Analysis.MinConfidence, _ = cmd.Flags().GetFloat64("confidence")
	}
	if retain, _ := cmd.Flags().GetStringSlice("retain"); len(retain) > 0 {
		cfg.EntryPoints.Retain = append(cfg.EntryPoints.Retain, retain...)
	}
	if formatFlag != "" {
		cfg.Output.Format = formatFlag
	}
}

func runAnalysis(cfg *config.Config, g *graph.Graph, entryPoints graph.IDSet) (*analyzer.Result, error) {
	if !cfg.Analysis.Deep {
		return reachability.New().Analyze(g, entryPoints)
	}
	a := deep.New(
		deep.WithUnusedMembers(cfg.Analysis.UnusedMembers),
		deep.WithParallel(cfg.Analysis.Parallel),
		deep.WithWorkers(cfg.Analysis.Workers),
	)
	return a.Analyze(g, entryPoints)
}

func buildMerger(cmd *cobra.Command) (*hybrid.Merger, bool, error) {
	var opts []hybrid.Option
	haveFacts := false

	if usagePath, _ := cmd.Flags().GetString("proguard-usage"); usagePath != "" {
		usage, err := proguard.Load(usagePath)
		if err != nil {
			return nil, false, err
		}
		opts = append(opts, hybrid.WithUsageFacts(usage))
		haveFacts = true
	}

	covPaths, _ := cmd.Flags().GetStringSlice("coverage")
	if len(covPaths) > 0 {
		merged := coverage.New()
		for _, path := range covPaths {
			data, err := coverage.Load(path)
			if err != nil {
				return nil, false, err
			}
			merged.Merge(data)
		}
		opts = append(opts, hybrid.WithCoverage(merged))
		haveFacts = true
	}

	return hybrid.New(opts...), haveFacts, nil
}

// readEntryPointFile reads declaration ids, one per line; blank lines
// and #-comments are skipped. Unknown ids are ignored downstream.
func readEntryPointFile(path string) ([]graph.DeclarationID, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening entry points %s: %w", path, err)
	}
	defer f.Close()

	var ids []graph.DeclarationID
	scanner := bufio.NewScanner(f)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		ids = append(ids, graph.DeclarationID(line))
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("reading entry points %s: %w", path, err)
	}
	return ids, nil
}

// addRetained marks declarations matching a retain pattern as entry
// points, by substring over the qualified name.
func addRetained(g *graph.Graph, entryPoints graph.IDSet, patterns []string) {
	if len(patterns) == 0 {
		return
	}
	for i := 0; i < g.Len(); i++ {
		decl := g.At(uint32(i))
		name := decl.QualifiedName()
		for _, pattern := range patterns {
			if strings.Contains(name, pattern) {
				entryPoints.Add(decl.ID)
				break
			}
		}
	}
}

func excludeConfigured(cfg *config.Config, findings []models.DeadCode) []models.DeadCode {
	out := findings[:0]
	for _, dc := range findings {
		if cfg.ShouldExclude(dc.Declaration.Location.File) {
			continue
		}
		out = append(out, dc)
	}
	return out
}
