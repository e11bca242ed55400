package main

import (
	"fmt"
	"os"
	"path"
	"slices"

	"github.com/fatih/color"
	"github.com/limaJavier/goalcnf/pkg/convert"
	"github.com/samber/lo"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var logger *zap.Logger = zap.NewNop()

func main() {
	if err := newRootCommand().Execute(); err != nil {
		color.New(color.FgRed, color.Bold).Fprint(os.Stderr, "error: ")
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	var verbose bool

	rootCmd := &cobra.Command{
		Use:   "goalcnf",
		Short: "Convert solver goals into DIMACS-CNF",
		Long: `goalcnf transcribes a CNF goal printed as an S-expression (as produced by Z3's
"simplify, bit-blast, tseitin-cnf" tactic chain) into the DIMACS-CNF format
consumed by SAT solvers.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			config := zap.NewProductionConfig()
			if verbose {
				config.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
			}
			var err error
			logger, err = config.Build()
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}
			return nil
		},
		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			_ = logger.Sync()
		},
	}
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Log every conversion stage")

	rootCmd.AddCommand(newConvertCommand(), newValidateCommand())
	return rootCmd
}

// loadOptions reads the given config file or, when none is given, the config.json placed next to the
// executable. Without either the default options are used
func loadOptions(configPath string) (convert.Options, error) {
	if configPath != "" {
		return convert.LoadOptions(configPath)
	}

	execPath, err := os.Executable()
	if err != nil {
		return convert.DefaultOptions(), nil
	}
	execPath = path.Dir(execPath)

	files, err := os.ReadDir(execPath)
	if err != nil {
		return convert.Options{}, fmt.Errorf("cannot read executable's directory: %w", err)
	}
	fileNames := lo.Map(files, func(file os.DirEntry, _ int) string { return file.Name() })
	if !slices.Contains(fileNames, "config.json") {
		return convert.DefaultOptions(), nil
	}

	configPath = path.Join(execPath, "config.json")
	logger.Debug("using configuration next to the executable", zap.String("path", configPath))
	return convert.LoadOptions(configPath)
}
