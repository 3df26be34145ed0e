package git

import (
	"context"
	"os"
	"os/exec"
	"path/filepath"
	"testing"
)

// initRepo creates a throwaway git repository with one committed file.
func initRepo(t *testing.T) string {
	t.Helper()
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}

	dir := t.TempDir()
	run := func(args ...string) {
		t.Helper()
		cmd := exec.Command("git", args...)
		cmd.Dir = dir
		cmd.Env = append(os.Environ(),
			"GIT_AUTHOR_NAME=test", "GIT_AUTHOR_EMAIL=test@example.com",
			"GIT_COMMITTER_NAME=test", "GIT_COMMITTER_EMAIL=test@example.com",
		)
		if out, err := cmd.CombinedOutput(); err != nil {
			t.Fatalf("git %v: %v\n%s", args, err, out)
		}
	}

	run("init")
	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export {};\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	run("add", "a.ts")
	run("commit", "-m", "init")
	return dir
}

func TestInRepository(t *testing.T) {
	dir := initRepo(t)
	if !InRepository(dir) {
		t.Error("InRepository() = false for a repo root")
	}

	sub := filepath.Join(dir, "src")
	if err := os.Mkdir(sub, 0o755); err != nil {
		t.Fatal(err)
	}
	if !InRepository(sub) {
		t.Error("InRepository() = false for a repo subdirectory")
	}

	if InRepository(t.TempDir()) {
		t.Error("InRepository() = true outside a repo")
	}
}

func TestStagedFiles(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	files, err := StagedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("StagedFiles() error = %v", err)
	}
	if len(files) != 0 {
		t.Errorf("StagedFiles() = %v, want empty after clean commit", files)
	}

	if err := os.WriteFile(filepath.Join(dir, "b.ts"), []byte("export {};\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	cmd := exec.Command("git", "add", "b.ts")
	cmd.Dir = dir
	if out, err := cmd.CombinedOutput(); err != nil {
		t.Fatalf("git add: %v\n%s", err, out)
	}

	files, err = StagedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("StagedFiles() error = %v", err)
	}
	if len(files) != 1 || files[0] != "b.ts" {
		t.Errorf("StagedFiles() = %v, want [b.ts]", files)
	}
}

func TestChangedFiles(t *testing.T) {
	dir := initRepo(t)
	ctx := context.Background()

	if err := os.WriteFile(filepath.Join(dir, "a.ts"), []byte("export const x = 1;\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	files, err := ChangedFiles(ctx, dir)
	if err != nil {
		t.Fatalf("ChangedFiles() error = %v", err)
	}
	if len(files) != 1 || files[0] != "a.ts" {
		t.Errorf("ChangedFiles() = %v, want [a.ts]", files)
	}
}

func TestDiffNames_NotARepo(t *testing.T) {
	if _, err := exec.LookPath("git"); err != nil {
		t.Skip("git not installed")
	}
	_, err := ChangedFiles(context.Background(), t.TempDir())
	if err == nil {
		t.Error("ChangedFiles() error = nil outside a repository")
	}
}
