// Package git provides thin wrappers over the git CLI for scoping a
// patch run to files the working tree actually touches.
package git

import (
	"bytes"
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
)

// InRepository reports whether dir is inside a git repository by
// walking up looking for a .git entry.
func InRepository(dir string) bool {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return false
	}
	for {
		if _, err := os.Stat(filepath.Join(dir, ".git")); err == nil {
			return true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return false
		}
		dir = parent
	}
}

// StagedFiles returns the paths of files staged for commit, relative to
// the repository root.
func StagedFiles(ctx context.Context, dir string) ([]string, error) {
	return diffNames(ctx, dir, "--cached")
}

// ChangedFiles returns the paths of files modified relative to HEAD,
// staged or not.
func ChangedFiles(ctx context.Context, dir string) ([]string, error) {
	return diffNames(ctx, dir, "HEAD")
}

func diffNames(ctx context.Context, dir string, extra ...string) ([]string, error) {
	args := append([]string{"diff", "--name-only"}, extra...)
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = err.Error()
		}
		return nil, errors.Newf("git diff failed: %s", msg)
	}

	var files []string
	for _, line := range strings.Split(stdout.String(), "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			files = append(files, line)
		}
	}
	return files, nil
}
