package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/limaJavier/goalcnf/pkg/convert"
	"github.com/limaJavier/goalcnf/pkg/sat"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

type convertFlags struct {
	atoms    string
	out      string
	symbols  string
	config   string
	noVerify bool
}

func newConvertCommand() *cobra.Command {
	var flags convertFlags

	cmd := &cobra.Command{
		Use:   "convert <goal-file>",
		Short: "Convert a goal file into DIMACS-CNF",
		Long: `Converts a goal file into DIMACS-CNF. Atoms listed in --atoms (one per line) are
renamed into the solver's atom numbering, in list order, before conversion.

Nothing is written when the conversion fails.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runConvert(cmd, args[0], flags)
		},
	}
	cmd.Flags().StringVar(&flags.atoms, "atoms", "", "Path to the newline-separated list of named atoms")
	cmd.Flags().StringVarP(&flags.out, "out", "o", "", "Path to the DIMACS output; if empty, it'll be written into the Standard Output")
	cmd.Flags().StringVar(&flags.symbols, "map", "", "Path to a JSON file relating variables and named atoms to goal atoms")
	cmd.Flags().StringVar(&flags.config, "config", "", "Path to a JSON or YAML syntax configuration")
	cmd.Flags().BoolVar(&flags.noVerify, "no-verify", false, "Skip re-validating the emitted DIMACS")
	return cmd
}

func runConvert(cmd *cobra.Command, inputPath string, flags convertFlags) error {
	options, err := loadOptions(flags.config)
	if err != nil {
		return err
	}

	input, err := os.ReadFile(inputPath)
	if err != nil {
		return fmt.Errorf("cannot read goal file: %w", err)
	}

	named := []string{}
	if flags.atoms != "" {
		file, err := os.Open(flags.atoms)
		if err != nil {
			return fmt.Errorf("cannot open atom list: %w", err)
		}
		defer file.Close()
		if named, err = convert.ReadAtomList(file); err != nil {
			return err
		}
	}

	converter, err := convert.NewConverter(options, logger.With(zap.String("input", inputPath)))
	if err != nil {
		return err
	}
	result, err := converter.Convert(string(input), named)
	if err != nil {
		return fmt.Errorf("cannot convert %v: %w", inputPath, err)
	}

	var dimacs bytes.Buffer
	if err := result.SAT.WriteDIMACS(&dimacs); err != nil {
		return err
	}
	if !flags.noVerify {
		if err := sat.ValidateDIMACS(bytes.NewReader(dimacs.Bytes())); err != nil {
			return fmt.Errorf("emitted instance is inconsistent: %w", err)
		}
	}

	// Every file is staged before any of them is committed
	var staged []*stagedFile
	defer func() {
		for _, file := range staged {
			file.Discard()
		}
	}()
	if flags.out != "" {
		file, err := stageFile(flags.out, writeBytes(dimacs.Bytes()))
		if err != nil {
			return err
		}
		staged = append(staged, file)
	}
	if flags.symbols != "" {
		symbols, err := json.MarshalIndent(result.SymbolMap(), "", "  ")
		if err != nil {
			return fmt.Errorf("an error occurred while building the symbol map: %w", err)
		}
		file, err := stageFile(flags.symbols, writeBytes(append(symbols, '\n')))
		if err != nil {
			return err
		}
		staged = append(staged, file)
	}

	if flags.out == "" {
		if _, err := cmd.OutOrStdout().Write(dimacs.Bytes()); err != nil {
			return err
		}
	}
	if err := commitAll(staged); err != nil {
		return err
	}

	logger.Info("goal converted",
		zap.String("input", inputPath),
		zap.Uint64("variables", result.SAT.Variables),
		zap.Int("clauses", len(result.SAT.Clauses)),
	)
	return nil
}
