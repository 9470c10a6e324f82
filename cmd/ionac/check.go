package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BurntChromium/IonaLang/internal/diagfmt"
	"github.com/BurntChromium/IonaLang/internal/driver"
)

var checkCmd = &cobra.Command{
	Use:   "check [flags] [path]",
	Short: "Compile without writing output",
	Long:  `Check runs the full pipeline and reports diagnostics, writing nothing to disk.`,
	Args:  cobra.MaximumNArgs(1),
	RunE:  runCheck,
}

func init() {
	checkCmd.Flags().Int("jobs", 0, "parallel compile jobs (0 = number of CPUs)")
	checkCmd.Flags().Bool("json", false, "emit diagnostics as JSON on stdout")
	checkCmd.Flags().Uint("max-errors", 0, "stop reporting errors per file after this many (0 = unlimited)")
}

func runCheck(cmd *cobra.Command, args []string) error {
	files, _, _, err := buildInputs(cmd, args)
	if err != nil {
		return err
	}

	jobs, _ := cmd.Flags().GetInt("jobs")
	asJSON, _ := cmd.Flags().GetBool("json")
	maxErrors, _ := cmd.Flags().GetUint("max-errors")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	session := driver.NewSession(driver.Options{
		MaxDiagnostics: maxDiagnostics,
		MaxErrors:      maxErrors,
		Jobs:           jobs,
	})
	results, err := session.CompileAll(ctx, files)
	if err != nil {
		return err
	}

	if asJSON {
		merged := driver.MergeBags(results)
		if err := diagfmt.JSON(cmd.OutOrStdout(), merged, session.FileSet, diagfmt.JSONOpts{
			IncludePositions: true,
			IncludeNotes:     true,
		}); err != nil {
			return err
		}
	} else {
		printDiagnostics(cmd, session, results)
	}

	if driver.HasErrors(results) {
		return fmt.Errorf("check failed")
	}

	if unresolved := session.Tables.Modules.Unresolved(); len(unresolved) > 0 && !asJSON {
		for _, ref := range unresolved {
			fmt.Fprintf(os.Stderr, "warning: %q imported from module %q but never exported there\n",
				ref.Name, ref.Module)
		}
	}
	if !quiet && !asJSON {
		fmt.Fprintf(cmd.OutOrStdout(), "checked %d file(s), no errors\n", len(results))
	}
	return nil
}
