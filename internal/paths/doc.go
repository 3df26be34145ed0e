// Package paths provides cross-platform path resolution for tsfix
// configuration, data, and backup directories.
//
// # XDG Base Directory Compliance
//
// The package wraps github.com/adrg/xdg for cross-platform XDG Base Directory
// Specification compliance. On Linux and macOS, paths follow XDG conventions
// (~/.config, ~/.local/share).
//
//	paths.ConfigDir() // <ConfigHome>/tsfix/
//	paths.BackupDir() // <DataHome>/tsfix/backups/
//
// # Project Manifest Discovery
//
// [FindManifest] walks up from a starting directory looking for a
// tsfix.toml project manifest, mirroring how the TypeScript toolchain
// discovers tsconfig.json.
package paths
