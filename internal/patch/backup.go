package patch

import (
	"io/fs"
	"time"

	"github.com/thoreinstein/tsfix/pkg/fileutil"
)

// BackupSuffix is appended to a file's path for its pre-patch copy.
const BackupSuffix = ".bak"

// Manifest records the .bak copies made during one run so a user can
// locate and restore them after the fact.
type Manifest struct {
	CreatedAt time.Time `yaml:"created_at"`
	Entries   []Entry   `yaml:"entries"`
}

// Entry maps a patched file to its backup copy.
type Entry struct {
	File   string `yaml:"file"`
	Backup string `yaml:"backup"`
}

// Empty reports whether any backups were recorded.
func (m *Manifest) Empty() bool { return m == nil || len(m.Entries) == 0 }

// Write persists the manifest as YAML at path.
func (m *Manifest) Write(path string) error {
	return fileutil.AtomicWriteYAML(path, m)
}

func newManifest() *Manifest {
	return &Manifest{CreatedAt: time.Now()}
}

func (m *Manifest) add(file, backup string) {
	m.Entries = append(m.Entries, Entry{File: file, Backup: backup})
}

// writeBackup copies the original content next to the file with the
// same mode before it gets rewritten.
func writeBackup(path string, data []byte, mode fs.FileMode) error {
	return fileutil.AtomicWriteFile(path+BackupSuffix, data, mode)
}
