package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/roach88/streamcheck/internal/harness"
)

// ValidationResult holds validation results for one scenario file.
type ValidationResult struct {
	File  string `json:"file"`
	Valid bool   `json:"valid"`
	Error string `json:"error,omitempty"`
}

// NewValidateCommand creates the validate command.
func NewValidateCommand(rootOpts *RootOptions) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <scenario-file>...",
		Short: "Validate scenario files without running them",
		Long: `Validate scenario YAML files without executing them.

Checks syntax, rejects unknown fields (typos), and verifies each step
carries exactly one event kind and the failure clause names a known code.`,
		Args:          cobra.MinimumNArgs(1),
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return runValidate(rootOpts, args, cmd)
		},
	}

	return cmd
}

func runValidate(opts *RootOptions, files []string, cmd *cobra.Command) error {
	formatter := &OutputFormatter{
		Format:    opts.Format,
		Writer:    cmd.OutOrStdout(),
		ErrWriter: cmd.ErrOrStderr(),
		Verbose:   opts.Verbose,
	}

	results := make([]ValidationResult, 0, len(files))
	invalid := 0
	for _, file := range files {
		res := ValidationResult{File: file, Valid: true}
		if _, err := harness.LoadScenario(file); err != nil {
			res.Valid = false
			res.Error = err.Error()
			invalid++
		}
		formatter.VerboseLog("validated %s: valid=%t", file, res.Valid)
		results = append(results, res)
	}

	if opts.Format == "json" {
		if invalid > 0 {
			if err := formatter.Error("E001", "scenario validation failed", results); err != nil {
				return err
			}
			return NewExitError(ExitFailure, "one or more scenario files are invalid")
		}
		return formatter.Success(results)
	}

	w := cmd.OutOrStdout()
	for _, res := range results {
		if res.Valid {
			fmt.Fprintf(w, "✓ %s\n", res.File)
		} else {
			fmt.Fprintf(w, "✗ %s\n  %s\n", res.File, res.Error)
		}
	}
	if invalid > 0 {
		return NewExitError(ExitFailure, "one or more scenario files are invalid")
	}
	return nil
}
