package cli

import (
	"encoding/json"
	"fmt"
	"path/filepath"

	"github.com/spf13/cobra"

	configAdapter "github.com/layerguard/layerguard/internal/adapters/outbound/config"
	"github.com/layerguard/layerguard/internal/adapters/outbound/tui"
	"github.com/layerguard/layerguard/internal/domain"
)

func newRulesCmd() *cobra.Command {
	var jsonOutput bool

	cmd := &cobra.Command{
		Use:   "rules [path]",
		Short: "Show the effective layer rules",
		Long:  "Print the rule table a check run would use, after applying any .layerguard.yaml overlay.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			path := "."
			if len(args) > 0 {
				path = args[0]
			}

			absPath, err := filepath.Abs(path)
			if err != nil {
				return fmt.Errorf("resolving path: %w", err)
			}

			cfg, err := configAdapter.New().Load(absPath)
			if err != nil {
				return fmt.Errorf("loading config: %w", err)
			}

			registry := domain.BuildRegistry(cfg)

			if jsonOutput {
				enc := json.NewEncoder(cmd.OutOrStdout())
				enc.SetIndent("", "  ")
				return enc.Encode(registry.Snapshot())
			}

			fmt.Fprint(cmd.OutOrStdout(), tui.RenderRules(registry))
			return nil
		},
	}

	cmd.Flags().BoolVar(&jsonOutput, "json", false, "Output the rule table as JSON")

	return cmd
}
