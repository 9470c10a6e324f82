package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/BurntChromium/IonaLang/internal/diagfmt"
	"github.com/BurntChromium/IonaLang/internal/driver"
	"github.com/BurntChromium/IonaLang/internal/project"
)

var buildCmd = &cobra.Command{
	Use:   "build [flags] [path]",
	Short: "Compile Iona sources to C",
	Long: `Build compiles a file, a directory, or the current project to C.

With no argument, build looks for iona.toml upward from the working
directory and compiles the project it describes.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runBuild,
}

func init() {
	buildCmd.Flags().StringP("out", "o", "", "output directory for generated C (default: project out_dir or ./build)")
	buildCmd.Flags().String("ui", "auto", "progress display (auto|on|off)")
	buildCmd.Flags().Int("jobs", 0, "parallel compile jobs (0 = number of CPUs)")
	buildCmd.Flags().Bool("no-cache", false, "skip the emission cache")
	buildCmd.Flags().Uint("max-errors", 0, "stop reporting errors per file after this many (0 = unlimited)")
}

// buildInputs resolves the command argument into the file list, the output
// directory, and a display title.
func buildInputs(cmd *cobra.Command, args []string) (files []string, outDir, title string, err error) {
	outFlag, _ := cmd.Flags().GetString("out")

	var target string
	if len(args) == 1 {
		target = args[0]
	}

	if target == "" {
		manifest, ok, mErr := project.Load(".")
		if mErr != nil {
			return nil, "", "", mErr
		}
		if !ok {
			return nil, "", "", fmt.Errorf("no %s found; pass a file or directory to build", project.ManifestName)
		}
		if main := manifest.MainPath(); main != "" {
			files = []string{main}
		} else {
			files, err = driver.ListSourceFiles(manifest.Root)
			if err != nil {
				return nil, "", "", err
			}
		}
		outDir = manifest.OutDir()
		title = manifest.Config.Package.Name
	} else {
		info, sErr := os.Stat(target)
		if sErr != nil {
			return nil, "", "", sErr
		}
		if info.IsDir() {
			files, err = driver.ListSourceFiles(target)
			if err != nil {
				return nil, "", "", err
			}
			title = filepath.Base(target)
		} else {
			files = []string{target}
			title = filepath.Base(target)
		}
		outDir = "build"
	}

	if outFlag != "" {
		outDir = outFlag
	}
	if len(files) == 0 {
		return nil, "", "", fmt.Errorf("no %s files to build", driver.SourceExt)
	}
	return files, outDir, title, nil
}

func runBuild(cmd *cobra.Command, args []string) error {
	files, outDir, title, err := buildInputs(cmd, args)
	if err != nil {
		return err
	}

	uiFlag, _ := cmd.Flags().GetString("ui")
	mode, err := readUIMode(uiFlag)
	if err != nil {
		return err
	}
	jobs, _ := cmd.Flags().GetInt("jobs")
	noCache, _ := cmd.Flags().GetBool("no-cache")
	maxErrors, _ := cmd.Flags().GetUint("max-errors")
	maxDiagnostics, _ := cmd.Root().PersistentFlags().GetInt("max-diagnostics")
	quiet, _ := cmd.Root().PersistentFlags().GetBool("quiet")

	opts := driver.Options{
		MaxDiagnostics: maxDiagnostics,
		MaxErrors:      maxErrors,
		Jobs:           jobs,
	}
	if !noCache {
		if cache, cErr := driver.OpenEmitCache("ionac"); cErr == nil {
			opts.Cache = cache
		}
		// A broken cache dir just means cold builds.
	}

	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	var session *driver.Session
	var results []driver.FileResult
	if shouldUseTUI(mode) {
		session, results, err = runCompileWithUI(ctx, "building "+title, files, opts)
	} else {
		session = driver.NewSession(opts)
		results, err = session.CompileAll(ctx, files)
	}
	if err != nil {
		return err
	}

	printDiagnostics(cmd, session, results)
	if driver.HasErrors(results) {
		return fmt.Errorf("build failed")
	}

	written, err := writeOutputs(outDir, session, results)
	if err != nil {
		return err
	}
	if !quiet {
		fmt.Fprintf(cmd.OutOrStdout(), "wrote %d file(s) to %s\n", written, outDir)
	}
	return nil
}

// writeOutputs flushes module headers and instantiation units to outDir.
// Instantiation units go first so module headers can include them.
func writeOutputs(outDir string, session *driver.Session, results []driver.FileResult) (int, error) {
	if err := os.MkdirAll(outDir, 0o750); err != nil {
		return 0, err
	}

	written := 0
	for _, entry := range session.Table.Entries() {
		path := filepath.Join(outDir, entry.Header())
		if err := os.WriteFile(path, []byte(entry.Code), 0o600); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	for _, res := range results {
		if res.Output == "" {
			continue
		}
		path := filepath.Join(outDir, driver.ModuleName(res.Path)+".h")
		if err := os.WriteFile(path, []byte(res.Output), 0o600); err != nil {
			return written, fmt.Errorf("write %s: %w", path, err)
		}
		written++
	}
	return written, nil
}

// printDiagnostics renders every per-file bag to stderr in file order.
func printDiagnostics(cmd *cobra.Command, session *driver.Session, results []driver.FileResult) {
	opts := diagfmt.PrettyOpts{
		Color:     useColor(cmd, os.Stderr),
		Context:   true,
		ShowNotes: true,
	}
	for _, res := range results {
		if res.Bag.Len() == 0 {
			continue
		}
		diagfmt.Pretty(os.Stderr, res.Bag, session.FileSet, opts)
	}
}
