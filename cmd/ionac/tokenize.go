package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/BurntChromium/IonaLang/internal/diagfmt"
	"github.com/BurntChromium/IonaLang/internal/driver"
)

var tokenizeCmd = &cobra.Command{
	Use:   "tokenize [flags] file.iona",
	Short: "Tokenize an Iona source file",
	Long:  `Tokenize breaks an Iona source file into its constituent tokens.`,
	Args:  cobra.ExactArgs(1),
	RunE:  runTokenize,
}

func init() {
	tokenizeCmd.Flags().String("format", "pretty", "output format (pretty|json)")
}

func runTokenize(cmd *cobra.Command, args []string) error {
	format, _ := cmd.Flags().GetString("format")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")

	session := driver.NewSession(driver.Options{MaxDiagnostics: maxDiagnostics})
	toks, bag, err := session.TokenizeFile(args[0])
	if err != nil {
		return fmt.Errorf("tokenization failed: %w", err)
	}

	if bag.HasErrors() || bag.HasWarnings() {
		diagfmt.Pretty(os.Stderr, bag, session.FileSet, diagfmt.PrettyOpts{
			Color:   useColor(cmd, os.Stderr),
			Context: true,
		})
	}

	switch format {
	case "pretty":
		return diagfmt.FormatTokensPretty(cmd.OutOrStdout(), toks, session.FileSet)
	case "json":
		return diagfmt.FormatTokensJSON(cmd.OutOrStdout(), toks)
	default:
		return fmt.Errorf("unknown format: %s", format)
	}
}
