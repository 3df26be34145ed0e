package config

import (
	"os"

	"github.com/pelletier/go-toml/v2"

	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/paths"
)

// Project is the per-repository manifest, tsfix.toml, discovered by
// walking up from the working directory the same way tsc finds its
// tsconfig.json.
//
//	[checker]
//	command = "yarn"
//	args = ["tsc", "--noEmit", "-p", "tsconfig.strict.json"]
//
//	[rules]
//	entrypoint = "db"
//	mutation_methods = ["insert", "update", "upsert", "merge"]
//	disabled = ["error-narrowing"]
type Project struct {
	Checker CheckerConfig `toml:"checker"`
	Rules   RulesConfig   `toml:"rules"`
}

// LoadProject parses the manifest at path.
func LoadProject(path string) (*Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "reading %s", path)
	}

	var p Project
	if err := toml.Unmarshal(data, &p); err != nil {
		return nil, errors.Wrapf(errors.ErrInvalidConfig, "parsing %s: %v", path, err)
	}
	return &p, nil
}

// FindProject discovers and parses the nearest manifest at or above
// dir. Returns (nil, nil) when no manifest exists: projects without one
// just use the global config.
func FindProject(dir string) (*Project, error) {
	path := paths.FindManifest(dir)
	if path == "" {
		return nil, nil
	}
	return LoadProject(path)
}
