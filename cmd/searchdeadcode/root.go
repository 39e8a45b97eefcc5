package main

import (
	"github.com/spf13/cobra"

	"github.com/KevinDoremy/SearchDeadCode/pkg/config"
)

var (
	cfgFile    string
	formatFlag string
	outputFile string
	verbose    bool
)

var rootCmd = &cobra.Command{
	Use:     "searchdeadcode",
	Short:   "Dead code detection over declaration graphs",
	Version: version,
	Long: `Searchdeadcode analyzes a declaration graph extracted from Kotlin and
Java sources, computes reachability from entry points, and reports
unreferenced declarations, write-only properties, dead cycles, and
declarations contradicted or confirmed by shrinker and coverage facts.`,
}

func init() {
	rootCmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "Path to config file (TOML, YAML, or JSON)")
	rootCmd.PersistentFlags().StringVarP(&formatFlag, "format", "f", "", "Output format: text, json, markdown")
	rootCmd.PersistentFlags().StringVarP(&outputFile, "output", "o", "", "Write output to file")
	rootCmd.PersistentFlags().BoolVar(&verbose, "verbose", false, "Enable verbose output")
}

// loadConfig resolves the effective config: the --config file if given,
// otherwise standard locations, otherwise defaults. Flags set on the
// command line override the file.
func loadConfig() (*config.Config, error) {
	if cfgFile != "" {
		return config.Load(cfgFile)
	}
	return config.LoadOrDefault(), nil
}
