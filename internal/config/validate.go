package config

import (
	"regexp"
	"strings"

	"github.com/thoreinstein/tsfix/internal/errors"
	"github.com/thoreinstein/tsfix/internal/rules"
)

// ErrUnknownRule indicates a disabled-rule name that is not registered.
var ErrUnknownRule = errors.ErrUnknownRule

// Validation errors for configuration fields.
var (
	// ErrVersionTooLow indicates the version field is below the minimum.
	ErrVersionTooLow = errors.New("version must be >= 1")

	// ErrInvalidIdentifier indicates an entrypoint or method name that is
	// not a valid JavaScript identifier.
	ErrInvalidIdentifier = errors.New("invalid identifier")

	// ErrEmptyCheckerCommand indicates checker args without a command.
	ErrEmptyCheckerCommand = errors.New("checker command is empty")
)

// knownRules are the rule names a manifest may reference.
var knownRules = func() map[string]bool {
	known := make(map[string]bool)
	for _, name := range rules.DefaultRegistry(rules.Options{}).Names() {
		known[name] = true
	}
	return known
}()

var jsIdentRe = regexp.MustCompile(`^[A-Za-z_$][A-Za-z0-9_$]*$`)

// Validate checks a Config for validity.
// Returns nil if valid, or a slice of validation errors.
func Validate(cfg *Config) []error {
	if cfg == nil {
		return []error{errors.New("config is nil")}
	}

	var errs []error

	if cfg.Version < 1 {
		errs = append(errs, ErrVersionTooLow)
	}

	if strings.TrimSpace(cfg.Checker.Command) == "" && len(cfg.Checker.Args) > 0 {
		errs = append(errs, ErrEmptyCheckerCommand)
	}

	errs = append(errs, validateRules(&cfg.Rules)...)
	return errs
}

// ValidateProject checks a project manifest for validity.
func ValidateProject(p *Project) []error {
	if p == nil {
		return nil
	}

	var errs []error
	if strings.TrimSpace(p.Checker.Command) == "" && len(p.Checker.Args) > 0 {
		errs = append(errs, ErrEmptyCheckerCommand)
	}
	errs = append(errs, validateRules(&p.Rules)...)
	return errs
}

func validateRules(rc *RulesConfig) []error {
	var errs []error

	for _, name := range rc.Disabled {
		if !knownRules[name] {
			errs = append(errs, &RuleError{Rule: name, Err: ErrUnknownRule})
		}
	}

	if rc.Entrypoint != "" && !jsIdentRe.MatchString(rc.Entrypoint) {
		errs = append(errs, &FieldError{Field: "entrypoint", Value: rc.Entrypoint, Err: ErrInvalidIdentifier})
	}
	for _, m := range rc.MutationMethods {
		if !jsIdentRe.MatchString(m) {
			errs = append(errs, &FieldError{Field: "mutation_methods", Value: m, Err: ErrInvalidIdentifier})
		}
	}

	return errs
}

// RuleError represents an error for a specific rule name.
type RuleError struct {
	Rule string
	Err  error
}

func (e *RuleError) Error() string {
	return e.Err.Error() + ": " + e.Rule
}

func (e *RuleError) Unwrap() error {
	return e.Err
}

// FieldError represents an error for a specific config field.
type FieldError struct {
	Field string
	Value string
	Err   error
}

func (e *FieldError) Error() string {
	return e.Field + ": " + e.Err.Error() + ": " + e.Value
}

func (e *FieldError) Unwrap() error {
	return e.Err
}
