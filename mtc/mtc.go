// Package mtc orchestrates the pipeline: extract fenced blocks from a
// document, classify each one, and either write full file listings or
// parse and apply unified diffs, strictly in document order.
package mtc

import (
	"fmt"
	"runtime/debug"

	"github.com/sokinpui/mtc/cli"
	"github.com/sokinpui/mtc/internal/classify"
	"github.com/sokinpui/mtc/internal/diff"
	"github.com/sokinpui/mtc/internal/extract"
	"github.com/sokinpui/mtc/internal/fs"
	"github.com/sokinpui/mtc/internal/model"
	"github.com/sokinpui/mtc/internal/patch"
	"github.com/sokinpui/mtc/internal/source"
	"github.com/sokinpui/mtc/internal/ui"
	"github.com/sokinpui/mtc/internal/writer"
)

// LineReader supplies pre-image file content to the patch pipeline. The
// project root implements it; tests may substitute an in-memory one.
type LineReader interface {
	ReadLines(rel string) ([]string, bool, error)
}

// App orchestrates the entire application logic.
type App struct {
	cfg        *cli.Config
	root       *fs.Root
	classifier *classify.Classifier
	writer     *writer.Writer
	source     *source.Provider
	reader     LineReader
}

// DetailedError enhances a standard error with a stack trace.
type DetailedError struct {
	Err   error
	Stack []byte
}

func (e *DetailedError) Error() string {
	return e.Err.Error()
}

// New creates a new App instance.
func New(cfg *cli.Config) (*App, error) {
	rules := classify.DefaultRules()
	if cfg.Rules != "" {
		loaded, err := classify.LoadRules(cfg.Rules)
		if err != nil {
			return nil, err
		}
		rules = loaded
	}

	root, err := fs.NewRoot(cfg.Root)
	if err != nil {
		return nil, err
	}

	return &App{
		cfg:        cfg,
		root:       root,
		classifier: classify.New(rules),
		writer:     writer.New(root),
		source:     source.New(cfg.File),
		reader:     root,
	}, nil
}

// Content retrieves the document from the configured source.
func (a *App) Content() (string, error) {
	return a.source.Content()
}

// Execute reads the source document and processes it.
func (a *App) Execute() (model.Summary, error) {
	content, err := a.Content()
	if err != nil {
		return model.Summary{}, err
	}
	return a.Process(content)
}

// Process runs the pipeline over content. Blocks are handled one at a
// time so that a later block observes the writes of an earlier one; two
// blocks may target the same file.
func (a *App) Process(content string) (summary model.Summary, err error) {
	// Centralized panic recovery to provide stack traces for unexpected errors.
	defer func() {
		if r := recover(); r != nil {
			err = &DetailedError{
				Err:   fmt.Errorf("internal panic: %v", r),
				Stack: debug.Stack(),
			}
		}
	}()
	if content == "" {
		summary.Message = "Source is empty. Nothing to process."
		return summary, nil
	}

	scanner := extract.NewScanner(content)
	for {
		block, ok := scanner.Next()
		if !ok {
			break
		}
		if err := a.processBlock(block, &summary); err != nil {
			if !a.cfg.KeepGoing {
				return summary, fmt.Errorf("block %d: %w", block.Index+1, err)
			}
			a.warn("Block %d failed: %v", block.Index+1, err)
			summary.Failed = append(summary.Failed, fmt.Sprintf("block %d: %v", block.Index+1, err))
		}
	}

	for _, w := range scanner.Warnings() {
		a.warn("Skipping block: %s", w)
		summary.Skipped = append(summary.Skipped, w.String())
	}
	return summary, nil
}

func (a *App) processBlock(block model.RawBlock, summary *model.Summary) error {
	result, err := a.classifier.Classify(block)
	if err != nil {
		return err
	}

	switch result.Kind {
	case classify.DiffCandidate:
		return a.applyDiffBlock(block, summary)
	case classify.FileCandidate:
		return a.applyListing(result.Listing, summary)
	default:
		a.warn("Skipping block %d: %s", block.Index+1, result.Reason)
		summary.Skipped = append(summary.Skipped,
			fmt.Sprintf("block %d: %s", block.Index+1, result.Reason))
		return nil
	}
}

// applyListing writes a complete file, creating or overwriting it.
func (a *App) applyListing(listing model.FileListing, summary *model.Summary) error {
	existed := a.root.Exists(listing.Path)
	if err := a.writer.WriteListing(listing); err != nil {
		return err
	}
	if existed {
		summary.Modified = append(summary.Modified, listing.Path)
	} else {
		summary.Created = append(summary.Created, listing.Path)
	}
	a.info("Wrote file: %s", listing.Path)
	return nil
}

// applyDiffBlock parses a diff block and applies each file patch in order.
func (a *App) applyDiffBlock(block model.RawBlock, summary *model.Summary) error {
	patches, err := diff.Parse(block.Lines)
	if err != nil {
		return err
	}
	for _, fp := range patches {
		if err := a.applyFilePatch(fp, summary); err != nil {
			return err
		}
	}
	return nil
}

func (a *App) applyFilePatch(fp diff.FilePatch, summary *model.Summary) error {
	var pre []string
	if !fp.IsCreate() {
		lines, exists, err := a.reader.ReadLines(fp.OldPath)
		if err != nil {
			return err
		}
		if !exists {
			return fmt.Errorf("file to patch does not exist: %s", fp.OldPath)
		}
		pre = lines
	}

	post, err := patch.Apply(fp, pre)
	if err != nil {
		return err
	}

	switch {
	case fp.IsDelete():
		if err := a.writer.Remove(fp.OldPath); err != nil {
			return err
		}
		summary.Deleted = append(summary.Deleted, fp.OldPath)
		a.info("Deleted file: %s", fp.OldPath)
	case fp.IsCreate():
		if err := a.writer.WriteListing(model.FileListing{Path: fp.NewPath, Lines: post}); err != nil {
			return err
		}
		summary.Created = append(summary.Created, fp.NewPath)
		a.info("Created file from diff: %s", fp.NewPath)
	case fp.IsRename():
		if err := a.writer.Rename(fp.OldPath, fp.NewPath, post); err != nil {
			return err
		}
		summary.Renamed = append(summary.Renamed, fmt.Sprintf("%s -> %s", fp.OldPath, fp.NewPath))
		a.info("Renamed file: %s -> %s", fp.OldPath, fp.NewPath)
	default:
		if err := a.writer.WriteLines(fp.NewPath, post); err != nil {
			return err
		}
		summary.Modified = append(summary.Modified, fp.NewPath)
		a.info("Applied diff to: %s", fp.NewPath)
	}
	return nil
}

func (a *App) info(format string, args ...interface{}) {
	if !a.cfg.Quiet {
		ui.Info(format, args...)
	}
}

func (a *App) warn(format string, args ...interface{}) {
	if !a.cfg.Quiet {
		ui.Warning(format, args...)
	}
}
