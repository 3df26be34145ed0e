package doctor

import (
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/thoreinstein/tsfix/internal/config"
	"github.com/thoreinstein/tsfix/internal/git"
	"github.com/thoreinstein/tsfix/internal/paths"
)

// CheckerBinaryCheck verifies the configured type-checker command can
// be found on PATH.
type CheckerBinaryCheck struct {
	Command string
}

// Name implements Check.
func (c *CheckerBinaryCheck) Name() string { return "checker-binary" }

// Category implements Check.
func (c *CheckerBinaryCheck) Category() string { return "checker" }

// Run implements Check.
func (c *CheckerBinaryCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	cmd := c.Command
	if strings.TrimSpace(cmd) == "" {
		result.Status = SeverityError
		result.Message = "no checker command configured"
		result.FixHint = "Set checker.command in tsfix.toml or the global config"
		return result
	}

	path, err := exec.LookPath(cmd)
	if err != nil {
		result.Status = SeverityError
		result.Message = cmd + " not found on PATH"
		result.FixHint = "Install it or point checker.command at an existing binary"
		return result
	}

	result.Status = SeverityPass
	result.Message = cmd + " found"
	result.Details = map[string]any{"path": path}
	return result
}

// TSConfigCheck looks for a tsconfig.json at or above the working
// directory. tsc --noEmit without one usually means the wrong cwd.
type TSConfigCheck struct {
	Dir string
}

// Name implements Check.
func (c *TSConfigCheck) Name() string { return "tsconfig" }

// Category implements Check.
func (c *TSConfigCheck) Category() string { return "checker" }

// Run implements Check.
func (c *TSConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	dir := c.Dir
	for {
		candidate := filepath.Join(dir, "tsconfig.json")
		if info, err := os.Stat(candidate); err == nil && !info.IsDir() {
			result.Status = SeverityPass
			result.Message = "tsconfig.json found"
			result.Details = map[string]any{"path": candidate}
			return result
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	result.Status = SeverityWarning
	result.Message = "no tsconfig.json found above the working directory"
	result.FixHint = "Run tsfix from inside the TypeScript project"
	return result
}

// ConfigCheck validates the resolved configuration.
type ConfigCheck struct {
	Config *config.Config
	Err    error
}

// Name implements Check.
func (c *ConfigCheck) Name() string { return "global-config" }

// Category implements Check.
func (c *ConfigCheck) Category() string { return "config" }

// Run implements Check.
func (c *ConfigCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if c.Err != nil {
		result.Status = SeverityError
		result.Message = "configuration failed to load: " + c.Err.Error()
		return result
	}

	if errs := config.Validate(c.Config); len(errs) > 0 {
		result.Status = SeverityError
		result.Message = "configuration is invalid"
		details := make([]string, len(errs))
		for i, e := range errs {
			details[i] = e.Error()
		}
		result.Details = map[string]any{"errors": details}
		return result
	}

	result.Status = SeverityPass
	result.Message = "configuration is valid"
	return result
}

// ManifestCheck reports whether a project manifest is in effect.
type ManifestCheck struct {
	Dir string
}

// Name implements Check.
func (c *ManifestCheck) Name() string { return "project-manifest" }

// Category implements Check.
func (c *ManifestCheck) Category() string { return "config" }

// Run implements Check.
func (c *ManifestCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	path := paths.FindManifest(c.Dir)
	if path == "" {
		result.Status = SeverityInfo
		result.Message = "no tsfix.toml, using global defaults"
		return result
	}

	proj, err := config.LoadProject(path)
	if err != nil {
		result.Status = SeverityError
		result.Message = "tsfix.toml failed to parse: " + err.Error()
		result.Details = map[string]any{"path": path}
		return result
	}
	if errs := config.ValidateProject(proj); len(errs) > 0 {
		result.Status = SeverityError
		result.Message = "tsfix.toml is invalid: " + errs[0].Error()
		result.Details = map[string]any{"path": path}
		return result
	}

	result.Status = SeverityPass
	result.Message = "tsfix.toml loaded"
	result.Details = map[string]any{"path": path}
	return result
}

// GitCheck reports whether git scoping flags will work here.
type GitCheck struct {
	Dir string
}

// Name implements Check.
func (c *GitCheck) Name() string { return "git-repository" }

// Category implements Check.
func (c *GitCheck) Category() string { return "git" }

// Run implements Check.
func (c *GitCheck) Run() *CheckResult {
	result := &CheckResult{
		Name:     c.Name(),
		Category: c.Category(),
	}

	if git.InRepository(c.Dir) {
		result.Status = SeverityPass
		result.Message = "inside a git repository"
		return result
	}

	result.Status = SeverityInfo
	result.Message = "not a git repository; --staged-only and --changed-only are unavailable"
	return result
}
