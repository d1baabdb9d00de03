package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"github.com/teazrq/springer-surv/dataset"
	"github.com/teazrq/springer-surv/feature"
	"github.com/teazrq/springer-surv/screen"
)

type screenCmdConfig struct {
	inputConfig
	geneListInput string
	topK          int
	output        string
}

func screenCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &screenCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "screen",
		Short: "Screen features by univariate association with the outcome",
		Long:  `Score every feature with a univariate Cox score test, keep the top-ranked ones together with a reference gene list and write the reduced observation set`,
		Run: func(cmd *cobra.Command, args []string) {
			err := config.Validate()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			ctx := context.Background()
			obs, err := config.observations(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Reading reference gene list at %s...", config.geneListInput)
			reference, err := dataset.ReadGeneListFromFilePath(config.geneListInput)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Scoring %d features over %d subjects...", len(obs.FeatureNames()), obs.Len())
			scores, err := screen.Rank(ctx, obs)
			if err != nil {
				fmt.Fprintf(os.Stderr, "screening features: %v\n", err)
				os.Exit(4)
			}
			selected := screen.Union(screen.TopK(scores, config.topK), reference)
			config.Logf("Selected %d features (top %d plus %d reference genes)", len(selected), config.topK, len(reference))
			reduced, err := obs.Select(selected)
			if err != nil {
				fmt.Fprintf(os.Stderr, "projecting observations: %v\n", err)
				os.Exit(5)
			}
			err = outputObservations(config.output, reduced, config.outcome())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(6)
			}
		},
	}
	declareInputFlags(cmd, &config.inputConfig)
	cmd.PersistentFlags().StringVarP(&(config.geneListInput), "genes", "g", "", "path to a plain-text reference gene list, one identifier per row with a header (required)")
	cmd.PersistentFlags().IntVarP(&(config.topK), "top", "k", 50, "number of top-ranked features to keep")
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the reduced observation set will be written as CSV (defaults to STDOUT)")
	return cmd
}

func (scc *screenCmdConfig) Validate() error {
	if scc.geneListInput == "" {
		return fmt.Errorf("required genes flag was not set")
	}
	if scc.topK < 1 {
		return fmt.Errorf("top flag must be at least 1")
	}
	return nil
}

func outputObservations(outputPath string, obs *dataset.Observations, out feature.Outcome) error {
	var f *os.File
	var err error
	if outputPath == "" {
		f = os.Stdout
	} else {
		f, err = os.Create(outputPath)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	return dataset.WriteCSV(f, obs, out)
}
