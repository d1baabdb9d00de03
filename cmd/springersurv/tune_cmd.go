package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teazrq/springer-surv/grid"
	gridyaml "github.com/teazrq/springer-surv/grid/yaml"
	"github.com/teazrq/springer-surv/survforest"
)

type tuneCmdConfig struct {
	inputConfig
	gridInput string
}

func tuneCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &tuneCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "tune",
		Short: "Sweep a hyperparameter grid and select the best configuration",
		Long:  `Fit a survival forest at every point of a Cartesian hyperparameter grid, record each fit's out-of-bag accuracy and report the best configuration`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			config.Logf("Reading grid specification at %s...", config.gridInput)
			sweep, err := gridyaml.ReadSweepFromFilePath(config.gridInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			obs, err := config.observations(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Sweeping %d grid points over %d subjects with %d trees per fit...", len(sweep.Points), obs.Len(), sweep.Trees)
			err = grid.Sweep(ctx, survforest.New(nil), obs, sweep.Points, sweep.Trees, sweep.Workers, sweep.Seed)
			if err != nil {
				fmt.Fprintf(os.Stderr, "sweeping grid: %v\n", err)
				os.Exit(4)
			}
			for _, p := range sweep.Points {
				fmt.Printf("%v oob=%.4f\n", p, p.OOBScore)
			}
			best, err := grid.Best(sweep.Points)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
			fmt.Printf("best: %v oob=%.4f\n", sweep.Points[best], sweep.Points[best].OOBScore)
		},
	}
	declareInputFlags(cmd, &config.inputConfig)
	cmd.PersistentFlags().StringVarP(&(config.gridInput), "grid", "G", "", "path to a YAML file with the tuning-grid specification (required)")
	return cmd
}

func (tcc *tuneCmdConfig) Validate() error {
	if tcc.gridInput == "" {
		return fmt.Errorf("required grid flag was not set")
	}
	return nil
}
