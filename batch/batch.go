// Package batch processes folders of documents concurrently. One
// document's failure is recorded and logged but never stops the rest
// of the batch.
package batch

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/bmatcuk/doublestar/v4"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/dlvinn/rtlfix"
	"github.com/dlvinn/rtlfix/format"
	"github.com/dlvinn/rtlfix/model"
)

// DefaultSuffix is appended to output file names.
const DefaultSuffix = "_fixed"

// Config controls a batch run.
type Config struct {
	// BaseDir is the folder to walk.
	BaseDir string

	// Include and Exclude are doublestar patterns matched against
	// paths relative to BaseDir. Empty Include selects every
	// supported document; Recursive only applies to the defaults.
	Include []string
	Exclude []string

	// Recursive selects documents in subfolders too.
	Recursive bool

	// Workers caps concurrent documents. Zero means 1.
	Workers int

	// Suffix names outputs: report.docx becomes report_fixed.docx.
	Suffix string

	// DryRun fixes documents in memory and reports counters without
	// writing any output.
	DryRun bool

	// Options are passed through to the fix pipeline.
	Options []rtlfix.Option

	Logger *zap.Logger
}

// Summary aggregates one batch run.
type Summary struct {
	Processed int
	Succeeded int
	Failed    int
	Stats     model.FixStats
}

// Processor runs batches over a folder.
type Processor struct {
	cfg Config
	log *zap.Logger
}

// New returns a Processor with defaults filled in.
func New(cfg Config) *Processor {
	if cfg.Workers < 1 {
		cfg.Workers = 1
	}
	if cfg.Suffix == "" {
		cfg.Suffix = DefaultSuffix
	}
	if len(cfg.Include) == 0 {
		if cfg.Recursive {
			cfg.Include = []string{"**/*.docx", "**/*.odt", "**/*.fodt"}
		} else {
			cfg.Include = []string{"*.docx", "*.odt", "*.fodt"}
		}
	}
	log := cfg.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Processor{cfg: cfg, log: log}
}

// Run walks the base folder and fixes every selected document. It
// returns an error only when the walk itself fails or the context is
// cancelled; per-document failures land in the summary.
func (p *Processor) Run(ctx context.Context) (Summary, error) {
	files, err := p.collect()
	if err != nil {
		return Summary{}, err
	}

	var (
		mu      sync.Mutex
		summary Summary
	)

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.cfg.Workers)

	for _, rel := range files {
		rel := rel
		g.Go(func() error {
			if err := ctx.Err(); err != nil {
				return err
			}

			stats, err := p.processOne(ctx, rel)

			mu.Lock()
			defer mu.Unlock()
			summary.Processed++
			if err != nil {
				summary.Failed++
				p.log.Warn("document failed",
					zap.String("path", rel),
					zap.Error(err))
				return nil
			}
			summary.Succeeded++
			summary.Stats.Add(stats)
			p.log.Info("document fixed",
				zap.String("path", rel),
				zap.Int("changes", stats.Total()))
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return summary, err
	}
	return summary, nil
}

// collect walks BaseDir and returns the relative paths selected by
// the include and exclude patterns, with lock files and prior outputs
// skipped.
func (p *Processor) collect() ([]string, error) {
	var files []string

	err := filepath.WalkDir(p.cfg.BaseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		rel, err := filepath.Rel(p.cfg.BaseDir, path)
		if err != nil {
			return err
		}
		rel = filepath.ToSlash(rel)

		if p.skip(rel) {
			return nil
		}
		files = append(files, rel)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walking %s: %w", p.cfg.BaseDir, err)
	}
	return files, nil
}

// skip filters out non-matching, locked, and already-fixed files.
func (p *Processor) skip(rel string) bool {
	base := filepath.Base(rel)

	// Office lock files left by open editors.
	if strings.HasPrefix(base, "~$") || strings.HasPrefix(base, ".~") {
		return true
	}

	// Outputs of a previous run.
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if strings.HasSuffix(stem, p.cfg.Suffix) {
		return true
	}

	included := false
	for _, pat := range p.cfg.Include {
		if ok, _ := doublestar.Match(pat, rel); ok {
			included = true
			break
		}
	}
	if !included {
		return true
	}

	for _, pat := range p.cfg.Exclude {
		if ok, _ := doublestar.Match(pat, rel); ok {
			return true
		}
	}
	return false
}

// processOne fixes a single document, writing the output next to the
// input unless the run is dry.
func (p *Processor) processOne(ctx context.Context, rel string) (model.FixStats, error) {
	inPath := filepath.Join(p.cfg.BaseDir, rel)

	if p.cfg.DryRun {
		return p.dryRunOne(inPath)
	}

	ext := filepath.Ext(rel)
	outPath := strings.TrimSuffix(inPath, ext) + p.cfg.Suffix + ext
	return rtlfix.FixFile(ctx, inPath, outPath, p.cfg.Options...)
}

// dryRunOne runs the full pipeline in memory and discards the output.
func (p *Processor) dryRunOne(inPath string) (model.FixStats, error) {
	data, err := os.ReadFile(inPath)
	if err != nil {
		return model.FixStats{}, err
	}
	_, stats, err := rtlfix.Fix(data, format.Detect(inPath), p.cfg.Options...)
	return stats, err
}
