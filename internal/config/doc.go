// Package config provides configuration management for the tsfix CLI.
//
// Configuration comes from two layers. The global file holds personal
// defaults; the project manifest pins per-repository settings and wins
// on conflict.
//
// # Global Configuration
//
// The default location is ~/.config/tsfix/config.yaml, in YAML:
//
//	version: 1
//	top: 15
//	checker:
//	  command: npx
//	  args: [tsc, --noEmit]
//	rules:
//	  entrypoint: supabase
//
// Values can also come from TSFIX_* environment variables.
//
// # Project Manifest
//
// A tsfix.toml at (or above) the working directory configures one
// repository, discovered the same way tsc discovers tsconfig.json:
//
//	[checker]
//	command = "yarn"
//	args = ["tsc", "--noEmit"]
//
//	[rules]
//	entrypoint = "db"
//	disabled = ["error-narrowing"]
//
// # Loading
//
//	config.Init()
//	cfg, err := config.Load("")
//	if err != nil {
//	    return err
//	}
//	proj, err := config.FindProject(cwd)
//	if err != nil {
//	    return err
//	}
//	cfg.Merge(proj)
//
// # Validation
//
// Use [Validate] and [ValidateProject] to check loaded values:
//
//	for _, e := range config.Validate(cfg) {
//	    fmt.Println(e)
//	}
package config
