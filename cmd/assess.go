package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/greenloop/biolca/app"
	"github.com/greenloop/biolca/config"
	"github.com/greenloop/biolca/core/report"
)

var (
	inventoryPath string
	csvPath       string
)

var assessCmd = &cobra.Command{
	Use:   "assess",
	Short: "Run one assessment and print the stage emissions",
	RunE:  runAssess,
}

func init() {
	assessCmd.Flags().StringVarP(&inventoryPath, "input", "i", "", "inventory JSON file (defaults to the configured inventory)")
	assessCmd.Flags().StringVarP(&csvPath, "csv", "o", "", "write the CSV report to this file")
	rootCmd.AddCommand(assessCmd)
}

func runAssess(cmd *cobra.Command, args []string) error {
	cfg, err := config.Load(cfgPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	inv := cfg.Inventory
	if inventoryPath != "" {
		data, err := os.ReadFile(inventoryPath)
		if err != nil {
			return fmt.Errorf("read inventory: %w", err)
		}
		if err := json.Unmarshal(data, &inv); err != nil {
			return fmt.Errorf("parse inventory: %w", err)
		}
	}

	svc, err := app.New(cfg)
	if err != nil {
		return err
	}
	defer func() { _ = svc.Close() }()

	res, err := svc.Assess(context.Background(), inv, "cli")
	if err != nil {
		return err
	}

	rows := report.Build(res.Emissions)
	cmd.Println(report.Table(rows))
	cmd.Printf("Diesel baseline: %.4f kg CO2/MJ, ratio %.2f\n",
		res.Diesel.DieselKgCO2, res.Diesel.Ratio)
	for _, s := range res.Contributions {
		cmd.Printf("%-28s %5.1f%%\n", s.Stage, s.Percent)
	}

	if csvPath != "" {
		f, err := os.Create(csvPath)
		if err != nil {
			return fmt.Errorf("create report: %w", err)
		}
		defer func() { _ = f.Close() }()
		if err := report.WriteCSV(f, rows); err != nil {
			return fmt.Errorf("write report: %w", err)
		}
		cmd.Printf("report written to %s\n", csvPath)
	}
	return nil
}
