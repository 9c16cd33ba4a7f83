package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sevigo/patchpack/internal/config"
	"github.com/sevigo/patchpack/internal/core"
	"github.com/sevigo/patchpack/internal/gitutil"
	"github.com/sevigo/patchpack/internal/logger"
	"github.com/sevigo/patchpack/internal/patch"
)

var (
	fromRef  string
	toRef    string
	repoPath string
	verbose  bool
)

// Color definitions
var (
	titleColor   = color.New(color.FgCyan, color.Bold)
	successColor = color.New(color.FgGreen)
	warnColor    = color.New(color.FgYellow)
	dimColor     = color.New(color.FgHiBlack)
)

var rootCmd = &cobra.Command{
	Use:   "patchpack",
	Short: "patchpack packages committed Git changes into a ZIP for partial deploys.",
	Long: `patchpack builds a ZIP archive containing only the files that changed
between two Git references, for lightweight partial deployments.

Without flags it diffs the most recent tag against HEAD. Only committed
changes are considered; working-tree and staged edits are ignored. File bytes
are read from the working tree, not from Git's object store, so the to-ref
should match the currently checked-out commit or the archived contents may
diverge from that ref.

Examples:
  patchpack                           # latest tag -> HEAD
  patchpack --from v0.9 --to v1.0
  patchpack -C ~/src/app -o dist`,
	Args:          cobra.NoArgs,
	RunE:          runBuild,
	SilenceUsage:  true,
	SilenceErrors: true,
}

func init() { //nolint:gochecknoinits // Cobra's init function for command registration
	rootCmd.Flags().StringVarP(&fromRef, "from", "f", "", "base ref (defaults to the latest tag reachable from --to)")
	rootCmd.Flags().StringVarP(&toRef, "to", "t", "HEAD", "target ref")
	rootCmd.Flags().StringVarP(&repoPath, "repo", "C", ".", "path inside the Git repository")
	rootCmd.Flags().StringP("output", "o", ".", "output directory for the archive")
	rootCmd.Flags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")

	if err := viper.BindPFlag("OUTPUT_DIR", rootCmd.Flags().Lookup("output")); err != nil {
		slog.Error("Error binding flag", "error", err)
		os.Exit(1)
	}
}

func runBuild(_ *cobra.Command, _ []string) error {
	ctx := context.Background()

	cfg := config.Load()
	level := cfg.LogLevel
	if verbose {
		level = slog.LevelDebug
	}
	log := logger.New(level, cfg.LogFormat, os.Stderr)
	slog.SetDefault(log)

	git := gitutil.NewClient(log, cfg.GitPath)
	builder := patch.NewBuilder(git, log)

	start := time.Now()
	summary, err := builder.Run(ctx, patch.Options{
		RepoPath:  repoPath,
		FromRef:   fromRef,
		ToRef:     toRef,
		OutputDir: cfg.OutputDir,
	})
	if err != nil {
		return err
	}

	printSummary(summary, time.Since(start))
	return nil
}

func printSummary(s *core.Summary, elapsed time.Duration) {
	titleColor.Printf("Patch package ready (%s..%s)\n", s.Refs.From, s.Refs.To)
	successColor.Printf("  %s\n", s.OutputPath)
	fmt.Printf("  included: %d  skipped: %d  size: %.1f KB\n",
		s.FilesIncluded, s.FilesSkipped, float64(s.ArchiveSize)/1024)

	for _, p := range s.MissingPaths {
		warnColor.Printf("  missing on disk, skipped: %s\n", p)
	}
	if verbose {
		dimColor.Printf("  took %s\n", elapsed.Round(time.Millisecond))
	}
}
