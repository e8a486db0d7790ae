package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/dlvinn/rtlfix"
	"github.com/dlvinn/rtlfix/batch"
	"github.com/dlvinn/rtlfix/format"
	"github.com/dlvinn/rtlfix/internal/config"
	"github.com/dlvinn/rtlfix/internal/logging"
)

var (
	fixDryRun        bool
	fixNoRecursive   bool
	fixNoEncodingFix bool
	fixNoHeadingFix  bool
	fixWorkers       int
	fixSuffix        string
)

var fixCmd = &cobra.Command{
	Use:   "fix <path>",
	Short: "Fix a document file or every document in a folder",
	Long: `Fix one document, or a whole folder of documents.

Examples:
  # Single file; output lands next to it with the _fixed suffix
  rtlfix fix report.docx

  # Whole folder, recursively, eight documents at a time
  rtlfix fix ./reports --workers 8

  # See what would change without writing anything
  rtlfix fix ./reports --dry-run
`,
	Args: cobra.ExactArgs(1),
	RunE: runFix,
}

func init() {
	fixCmd.Flags().BoolVar(&fixDryRun, "dry-run", false, "Report changes without writing output")
	fixCmd.Flags().BoolVar(&fixNoRecursive, "no-recursive", false, "Do not descend into subfolders")
	fixCmd.Flags().BoolVar(&fixNoEncodingFix, "no-encoding-fix", false, "Skip the mojibake repair pass")
	fixCmd.Flags().BoolVar(&fixNoHeadingFix, "no-heading-fix", false, "Skip the numbered-heading pass")
	fixCmd.Flags().IntVar(&fixWorkers, "workers", 0, "Concurrent documents in folder mode (default from config)")
	fixCmd.Flags().StringVar(&fixSuffix, "suffix", "", "Output file suffix (default from config)")
}

func runFix(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	log, err := logging.New(cfg.LogStyle, cfg.LogLevel)
	if err != nil {
		return err
	}
	defer log.Sync()

	if fixWorkers > 0 {
		cfg.Workers = fixWorkers
	}
	if fixSuffix != "" {
		cfg.Suffix = fixSuffix
	}

	var opts []rtlfix.Option
	opts = append(opts, rtlfix.WithRTLThreshold(cfg.RTLThreshold))
	if fixNoEncodingFix {
		opts = append(opts, rtlfix.WithoutEncodingRepair())
	}
	if fixNoHeadingFix {
		opts = append(opts, rtlfix.WithoutHeadingReorder())
	}

	path := args[0]
	info, err := os.Stat(path)
	if err != nil {
		return err
	}

	ctx := context.Background()
	if info.IsDir() {
		return fixFolder(ctx, path, cfg, opts, log)
	}
	return fixOne(ctx, path, cfg.Suffix, opts, log)
}

func fixOne(ctx context.Context, path, suffix string, opts []rtlfix.Option, log *zap.Logger) error {
	ext := filepath.Ext(path)
	outPath := strings.TrimSuffix(path, ext) + suffix + ext

	if fixDryRun {
		data, err := os.ReadFile(path)
		if err != nil {
			return err
		}
		_, stats, err := rtlfix.Fix(data, format.Detect(path), opts...)
		if err != nil {
			return err
		}
		fmt.Printf("%s: %s (dry run)\n", path, stats.String())
		return nil
	}

	stats, err := rtlfix.FixFile(ctx, path, outPath, opts...)
	if err != nil {
		return err
	}
	log.Info("document fixed",
		zap.String("input", path),
		zap.String("output", outPath))
	fmt.Printf("%s -> %s: %s\n", path, outPath, stats.String())
	return nil
}

func fixFolder(ctx context.Context, dir string, cfg *config.Config, opts []rtlfix.Option, log *zap.Logger) error {
	p := batch.New(batch.Config{
		BaseDir:   dir,
		Recursive: !fixNoRecursive,
		Workers:   cfg.Workers,
		Suffix:    cfg.Suffix,
		DryRun:    fixDryRun,
		Options:   opts,
		Logger:    log,
	})

	summary, err := p.Run(ctx)
	if err != nil {
		return err
	}

	fmt.Printf("processed %d documents: %d fixed, %d failed\n",
		summary.Processed, summary.Succeeded, summary.Failed)
	fmt.Println(summary.Stats.String())
	if summary.Failed > 0 {
		return fmt.Errorf("%d documents failed", summary.Failed)
	}
	return nil
}
