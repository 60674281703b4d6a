package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/greenloop/biolca/config"
	"github.com/greenloop/biolca/core/lca"
)

var sensitivityCmd = &cobra.Command{
	Use:   "sensitivity",
	Short: "Show how sensitive the total is to each emission factor",
	RunE:  runSensitivity,
}

func init() {
	rootCmd.AddCommand(sensitivityCmd)
}

func runSensitivity(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	sens, err := lca.Sensitivity(cfg.Inventory, cfg.Factors)
	if err != nil {
		return err
	}
	cmd.Println("Relative sensitivity of the total to each factor:")
	for _, s := range sens {
		cmd.Printf("%-22s %6.3f\n", s.Factor, s.Sensitivity)
	}
	return nil
}
