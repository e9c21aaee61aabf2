package dbmapper

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/dbmapper/dbmapper/internal/config"
	"github.com/dbmapper/dbmapper/internal/engine"
	"github.com/dbmapper/dbmapper/internal/report"
	"github.com/dbmapper/dbmapper/internal/update"
)

var (
	flagOutput            string
	flagFormats           []string
	flagInclude           []string
	flagExclude           []string
	flagLanguages         []string
	flagPlugins           []string
	flagMinConfidence     float64
	flagStableIDs         bool
	flagKeepLowConfidence bool
	flagDefaultExcludes   bool
	flagNoTable           bool
)

func init() {
	cmd := &cobra.Command{
		Use:   "scan [path]",
		Short: "Scan a repository for database artifacts",
		Args:  cobra.MaximumNArgs(1),
		RunE:  runScan,
	}
	rootCmd.AddCommand(cmd)

	cmd.Flags().StringVarP(&flagOutput, "output", "o", "dbmap-report", "base path for report files (extension per format)")
	cmd.Flags().StringSliceVar(&flagFormats, "formats", []string{"json"}, "report formats: json|csv|html|graph|sarif")
	cmd.Flags().StringSliceVar(&flagInclude, "include", nil, "include globs")
	cmd.Flags().StringSliceVar(&flagExclude, "exclude", nil, "exclude globs, added on top of defaults")
	cmd.Flags().StringSliceVar(&flagLanguages, "languages", nil, "restrict scanning to these languages")
	cmd.Flags().StringSliceVar(&flagPlugins, "plugins", nil, "enable plugin detectors (java, ruby)")
	cmd.Flags().Float64Var(&flagMinConfidence, "min-confidence", 0.5, "drop findings with confidence below this value (0-1)")
	cmd.Flags().BoolVar(&flagStableIDs, "stable-ids", false, "assign IDs in sorted file/line order for reproducible output")
	cmd.Flags().BoolVar(&flagKeepLowConfidence, "keep-low-confidence", false, "flag low-confidence findings instead of dropping them")
	cmd.Flags().BoolVar(&flagDefaultExcludes, "default-excludes", true, "apply built-in exclude list (node_modules, dist, images, etc.)")
	cmd.Flags().BoolVar(&flagNoTable, "no-table", false, "suppress the terminal summary table")
}

func runScan(cmd *cobra.Command, args []string) error {
	path := "."
	if len(args) == 1 {
		path = args[0]
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return err
	}

	fileCfg := config.Resolve(abs)
	cfg := resolveScanConfig(cmd, abs, fileCfg)

	if !flagNoUpdateCheck {
		if latest, newer, _ := update.Check(version, false); newer && latest != "" {
			fmt.Fprintf(os.Stderr, "(new version available: v%s)  run 'dbmapper update' to upgrade\n", latest)
		}
	}

	res, err := engine.ScanWithStats(cmd.Context(), cfg)
	if err != nil {
		return err
	}

	formats := flagFormats
	if !cmd.Flags().Changed("formats") && fileCfg.Formats != nil {
		formats = fileCfg.Formats
	}
	if err := report.WriteFormats(flagOutput, formats, res); err != nil {
		return err
	}

	if !flagNoTable {
		report.PrintTable(os.Stdout, res, report.PrintOptions{NoColor: flagNoColor})
	}
	for _, f := range formats {
		fmt.Fprintf(os.Stderr, "wrote %s report to %s\n", f, flagOutput)
	}
	return nil
}

// resolveScanConfig merges CLI flags over the repo-local and global file
// configuration: CLI wins when set, then local, then global, then the
// built-in defaults.
func resolveScanConfig(cmd *cobra.Command, root string, fileCfg config.FileConfig) engine.Config {
	cfg := engine.Config{
		Root:              root,
		IncludeGlobs:      flagInclude,
		ExcludeGlobs:      flagExclude,
		Languages:         flagLanguages,
		Plugins:           flagPlugins,
		MinConfidence:     flagMinConfidence,
		Threads:           flagThreads,
		StableIDs:         flagStableIDs,
		KeepLowConfidence: flagKeepLowConfidence,
		DefaultExcludes:   flagDefaultExcludes,
	}

	if cfg.IncludeGlobs == nil {
		cfg.IncludeGlobs = fileCfg.Include
	}
	if cfg.ExcludeGlobs == nil {
		cfg.ExcludeGlobs = fileCfg.Exclude
	}
	if cfg.Languages == nil {
		cfg.Languages = fileCfg.Languages
	}
	if cfg.Plugins == nil {
		cfg.Plugins = fileCfg.Plugins
	}
	if !cmd.Flags().Changed("min-confidence") && fileCfg.MinConfidence != nil {
		cfg.MinConfidence = *fileCfg.MinConfidence
	}
	if !cmd.Flags().Changed("threads") && fileCfg.Threads != nil {
		cfg.Threads = *fileCfg.Threads
	}
	if !cmd.Flags().Changed("stable-ids") && fileCfg.StableIDs != nil {
		cfg.StableIDs = *fileCfg.StableIDs
	}
	if !cmd.Flags().Changed("keep-low-confidence") && fileCfg.KeepLowConfidence != nil {
		cfg.KeepLowConfidence = *fileCfg.KeepLowConfidence
	}
	if !cmd.Flags().Changed("default-excludes") && fileCfg.DefaultExcludes != nil {
		cfg.DefaultExcludes = *fileCfg.DefaultExcludes
	}
	if !cmd.Flags().Changed("output") && fileCfg.Output != nil {
		flagOutput = *fileCfg.Output
	}
	return cfg
}
