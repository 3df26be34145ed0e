// Package patch applies the rule sequence to source files on disk.
//
// Each file is handled independently: a read or write failure on one
// file is recorded in its Result and never aborts the batch. Files are
// rewritten atomically (temp file + rename) preserving the original
// mode, and only when a rule actually changed the content.
package patch

import (
	"io/fs"
	"log/slog"
	"os"

	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/rules"
	"github.com/thoreinstein/tsfix/pkg/fileutil"
)

// Result records the outcome of patching a single file.
type Result struct {
	// File is the path as it appeared in the diagnostic output.
	File string `json:"file"`

	// Fixes is the number of sites rewritten across all rules.
	Fixes int `json:"fixes"`

	// Changed reports whether the file content was (or, in dry-run
	// mode, would be) modified.
	Changed bool `json:"changed"`

	// Skipped is set when the file no longer exists on disk.
	Skipped bool `json:"skipped,omitempty"`

	// Diff holds a unified diff of the pending change in dry-run mode.
	Diff string `json:"diff,omitempty"`

	// Err is the failure that stopped this file, nil on success.
	Err error `json:"-"`

	// Error mirrors Err as text for JSON output.
	Error string `json:"error,omitempty"`
}

// Failed reports whether the file hit a read or write failure.
// A skipped (missing) file is not a failure.
func (r Result) Failed() bool { return r.Err != nil }

// writeFunc writes file content. Swappable in tests to simulate write
// failures without touching the filesystem.
type writeFunc func(path string, data []byte, perm os.FileMode) error

// Patcher rewrites files through a rule registry.
type Patcher struct {
	registry *rules.Registry
	log      *slog.Logger
	dryRun   bool
	backup   bool
	manifest *Manifest
	write    writeFunc
}

// Option configures a Patcher.
type Option func(*Patcher)

// WithDryRun makes Apply compute diffs instead of writing files.
func WithDryRun() Option {
	return func(p *Patcher) { p.dryRun = true }
}

// WithBackup makes Apply copy each file to <file>.bak before rewriting.
func WithBackup() Option {
	return func(p *Patcher) {
		p.backup = true
		p.manifest = newManifest()
	}
}

func withWriteFunc(fn writeFunc) Option {
	return func(p *Patcher) { p.write = fn }
}

// New creates a Patcher over the given rule registry.
func New(registry *rules.Registry, log *slog.Logger, opts ...Option) *Patcher {
	if log == nil {
		log = slog.Default()
	}
	p := &Patcher{
		registry: registry,
		log:      log,
		write:    fileutil.AtomicWriteFile,
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Apply runs the rule sequence over one file and writes the result back
// if anything changed.
func (p *Patcher) Apply(path string) Result {
	res := Result{File: path}

	data, err := fileutil.ReadFileWithLimit(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			p.log.Debug("file missing, skipping", "file", path)
			res.Skipped = true
			return res
		}
		return res.fail(errors.Wrapf(err, "reading %s", path))
	}

	original := string(data)
	patched, fixes := p.registry.Apply(original)
	res.Fixes = fixes

	if fixes == 0 || patched == original {
		return res
	}
	res.Changed = true

	if p.dryRun {
		diff, err := unifiedDiff(path, original, patched)
		if err != nil {
			return res.fail(errors.Wrapf(err, "diffing %s", path))
		}
		res.Diff = diff
		return res
	}

	mode := fs.FileMode(0o644)
	if info, err := os.Stat(path); err == nil {
		mode = info.Mode().Perm()
	}

	if p.backup {
		if err := writeBackup(path, data, mode); err != nil {
			return res.fail(errors.Wrapf(err, "backing up %s", path))
		}
		p.manifest.add(path, path+BackupSuffix)
	}

	if err := p.write(path, []byte(patched), mode); err != nil {
		return res.fail(errors.Wrapf(err, "writing %s", path))
	}

	p.log.Info("patched file", "file", path, "fixes", fixes)
	return res
}

// ApplyAll patches each file in order. Per-file failures are recorded
// in the corresponding Result and do not stop the batch.
func (p *Patcher) ApplyAll(paths []string) []Result {
	results := make([]Result, 0, len(paths))
	for _, path := range paths {
		results = append(results, p.Apply(path))
	}
	return results
}

// BackupManifest returns the record of .bak copies made so far, or nil
// when backups are disabled.
func (p *Patcher) BackupManifest() *Manifest { return p.manifest }

func (r Result) fail(err error) Result {
	r.Err = err
	r.Error = err.Error()
	r.Changed = false
	return r
}
