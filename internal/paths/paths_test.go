package paths

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/thoreinstein/tsfix/internal/errors"
)

func TestResolveHome(t *testing.T) {
	got, err := ResolveHome()
	want, _ := os.UserHomeDir()

	if err != nil {
		// This might happen in some restricted environments,
		// but normally should succeed.
		if !errors.Is(err, ErrHomeDirNotFound) {
			t.Errorf("unexpected error type: %v", err)
		}
	} else if got != want {
		t.Errorf("ResolveHome() = %q, want %q", got, want)
	}
}

func TestConfigHome(t *testing.T) {
	got := ConfigHome()
	if got == "" {
		t.Error("ConfigHome() returned empty string")
	}
	if !filepath.IsAbs(got) {
		t.Errorf("ConfigHome() = %q, want absolute path", got)
	}
}

func TestConfigDir(t *testing.T) {
	got := ConfigDir()
	if !strings.HasSuffix(got, filepath.Join("tsfix")) {
		t.Errorf("ConfigDir() = %q, want path ending in tsfix", got)
	}
	if !strings.HasPrefix(got, ConfigHome()) {
		t.Errorf("ConfigDir() = %q, want path under %q", got, ConfigHome())
	}
}

func TestBackupDir(t *testing.T) {
	got := BackupDir()
	if !strings.HasSuffix(got, filepath.Join("tsfix", "backups")) {
		t.Errorf("BackupDir() = %q, want path ending in tsfix/backups", got)
	}
}

func TestEnsureDir(t *testing.T) {
	tests := []struct {
		name string
		perm os.FileMode
		want os.FileMode
	}{
		{"default permission", 0, DefaultDirPerm},
		{"explicit permission", 0o755, 0o755},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			dir := filepath.Join(t.TempDir(), "nested", "dir")
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Fatalf("EnsureDir() error = %v", err)
			}

			info, err := os.Stat(dir)
			if err != nil {
				t.Fatalf("Stat() error = %v", err)
			}
			if !info.IsDir() {
				t.Error("EnsureDir() did not create a directory")
			}
			if info.Mode().Perm() != tt.want {
				t.Errorf("permission = %04o, want %04o", info.Mode().Perm(), tt.want)
			}

			// Idempotent: second call succeeds
			if err := EnsureDir(dir, tt.perm); err != nil {
				t.Errorf("EnsureDir() second call error = %v", err)
			}
		})
	}
}

func TestFindManifest(t *testing.T) {
	root := t.TempDir()
	nested := filepath.Join(root, "src", "components")
	if err := os.MkdirAll(nested, 0o755); err != nil {
		t.Fatal(err)
	}

	t.Run("not found", func(t *testing.T) {
		if got := FindManifest(nested); got != "" {
			t.Errorf("FindManifest() = %q, want empty", got)
		}
	})

	t.Run("found in ancestor", func(t *testing.T) {
		manifest := filepath.Join(root, ManifestName)
		if err := os.WriteFile(manifest, []byte("top = 10\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if got := FindManifest(nested); got != manifest {
			t.Errorf("FindManifest() = %q, want %q", got, manifest)
		}
	})

	t.Run("nearest wins", func(t *testing.T) {
		near := filepath.Join(nested, ManifestName)
		if err := os.WriteFile(near, []byte("top = 5\n"), 0o644); err != nil {
			t.Fatal(err)
		}
		if got := FindManifest(nested); got != near {
			t.Errorf("FindManifest() = %q, want %q", got, near)
		}
	})
}
