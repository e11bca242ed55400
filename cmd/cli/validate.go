package main

import (
	"fmt"
	"io"
	"os"

	"github.com/fatih/color"
	"github.com/limaJavier/goalcnf/pkg/sat"
	"github.com/spf13/cobra"
)

func newValidateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate <cnf-file>",
		Short: "Check that a DIMACS-CNF file is consistent with its header",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(cmd, args[0])
		},
	}
}

func runValidate(cmd *cobra.Command, cnfPath string) error {
	file, err := os.Open(cnfPath)
	if err != nil {
		return fmt.Errorf("cannot open %v: %w", cnfPath, err)
	}
	defer file.Close()

	if err := sat.ValidateDIMACS(file); err != nil {
		return fmt.Errorf("%v: %w", cnfPath, err)
	}
	if _, err := file.Seek(0, io.SeekStart); err != nil {
		return err
	}
	header, err := sat.ReadHeader(file)
	if err != nil {
		return fmt.Errorf("%v: %w", cnfPath, err)
	}

	ok := color.New(color.FgGreen).Sprint("ok")
	fmt.Fprintf(cmd.OutOrStdout(), "%v %v: %d variables, %d clauses\n", ok, cnfPath, header.Variables, header.Clauses)
	return nil
}
