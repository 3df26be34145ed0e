package commands

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/tsfix/internal/rules"
)

var rulesJSON bool

func init() {
	rulesCmd.Flags().BoolVar(&rulesJSON, "json", false,
		"output the rule list as JSON")
	rootCmd.AddCommand(rulesCmd)
}

var rulesCmd = &cobra.Command{
	Use:   "rules",
	Short: "List the pattern rules and their enabled state",
	Long: `List every registered pattern rule in application order, with the
enabled state the current configuration resolves to. Rules are disabled
per project in tsfix.toml:

  [rules]
  disabled = ["error-narrowing"]`,
	RunE: runRules,
}

type ruleInfo struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Enabled     bool   `json:"enabled"`
}

func runRules(cobraCmd *cobra.Command, _ []string) error {
	cfg, err := loadSettings()
	if err != nil {
		return err
	}

	disabled := make(map[string]bool, len(cfg.Rules.Disabled))
	for _, name := range cfg.Rules.Disabled {
		disabled[name] = true
	}

	all := rules.DefaultRegistry(rules.Options{
		Entrypoint:      cfg.Rules.Entrypoint,
		MutationMethods: cfg.Rules.MutationMethods,
	})

	var infos []ruleInfo
	for _, r := range all.Rules() {
		infos = append(infos, ruleInfo{
			Name:        r.Name(),
			Description: r.Description(),
			Enabled:     !disabled[r.Name()],
		})
	}

	out := cobraCmd.OutOrStdout()
	if rulesJSON {
		encoder := json.NewEncoder(out)
		encoder.SetIndent("", "  ")
		return encoder.Encode(infos)
	}

	for _, info := range infos {
		state := color.GreenString("enabled")
		if !info.Enabled {
			state = color.New(color.FgHiBlack).Sprint("disabled")
		}
		fmt.Fprintf(out, "%-18s %-9s %s\n", info.Name, state, info.Description)
	}
	return nil
}
