package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/teazrq/springer-surv/report"
	"github.com/teazrq/springer-surv/survforest"
)

type reportCmdConfig struct {
	inputConfig
	sampleWidth    int
	minLeaf        int
	splitPolicy    string
	splitCount     int
	trees          int
	workers        int
	seed           int64
	stratumFeature string
	rankingFeature string
	topK           int
	outDir         string
}

func reportCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &reportCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "report",
		Short: "Render survival curves and importance plots for a fitted forest",
		Long:  `Fit a survival forest at the given configuration and render stratified survival curves, the top importance ranking and predicted survival comparisons for extremal subjects`,
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
			strata, err := obs.Column(config.stratumFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			ranking, err := obs.Column(config.rankingFeature)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(3)
			}
			config.Logf("Fitting forest of %d trees over %d subjects...", config.trees, obs.Len())
			fit, err := survforest.New(nil).Fit(ctx, obs, survforest.Config{
				SampleWidth: config.sampleWidth,
				MinLeaf:     config.minLeaf,
				SplitPolicy: config.splitPolicy,
				SplitCount:  config.splitCount,
				Trees:       config.trees,
				Workers:     config.workers,
				Importance:  true,
				Seed:        config.seed,
			})
			if err != nil {
				fmt.Fprintf(os.Stderr, "fitting forest: %v\n", err)
				os.Exit(4)
			}
			config.Logf("Done, oob accuracy %.4f", fit.OOBScore())
			err = config.render(obs.Times(), obs.Events(), strata, ranking, fit)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	declareInputFlags(cmd, &config.inputConfig)
	declareFitFlags(cmd, &config.sampleWidth, &config.minLeaf, &config.splitPolicy, &config.splitCount, &config.trees, &config.workers, &config.seed)
	cmd.PersistentFlags().StringVarP(&(config.stratumFeature), "stratum", "s", "", "name of the binary feature to stratify survival curves by (required)")
	cmd.PersistentFlags().StringVarP(&(config.rankingFeature), "ranking", "r", "", "name of the feature whose extremes select the subjects to compare (required)")
	cmd.PersistentFlags().IntVarP(&(config.topK), "top", "k", 20, "number of features on the importance chart")
	cmd.PersistentFlags().StringVarP(&(config.outDir), "outdir", "d", ".", "directory where the rendered plots and curves are written")
	return cmd
}

func (rcc *reportCmdConfig) Validate() error {
	if rcc.stratumFeature == "" {
		return fmt.Errorf("required stratum flag was not set")
	}
	if rcc.rankingFeature == "" {
		return fmt.Errorf("required ranking flag was not set")
	}
	if rcc.topK < 1 {
		return fmt.Errorf("top flag must be at least 1")
	}
	return nil
}

func (rcc *reportCmdConfig) render(times []float64, events []int, strata, ranking []float64, fit survforest.Fit) error {
	curve0, curve1 := report.StratifiedKaplanMeier(times, events, strata)
	path := filepath.Join(rcc.outDir, "stratified_survival.png")
	rcc.Logf("Rendering stratified survival curves to %s...", path)
	err := report.RenderStratifiedSurvival(path,
		fmt.Sprintf("%s = 0", rcc.stratumFeature),
		fmt.Sprintf("%s = 1", rcc.stratumFeature),
		curve0, curve1)
	if err != nil {
		return err
	}

	path = filepath.Join(rcc.outDir, "importance.png")
	rcc.Logf("Rendering importance chart to %s...", path)
	err = report.RenderImportance(path, fit.Importance(), rcc.topK)
	if err != nil {
		return err
	}

	var subjects []int
	var labels []string
	for _, level := range []float64{0, 1} {
		min, max, err := report.Extremes(ranking, strata, events, level, 1)
		if err != nil {
			return fmt.Errorf("selecting extremal subjects for %s = %v: %v", rcc.stratumFeature, level, err)
		}
		subjects = append(subjects, min, max)
		labels = append(labels,
			fmt.Sprintf("%s = %v, lowest %s", rcc.stratumFeature, level, rcc.rankingFeature),
			fmt.Sprintf("%s = %v, highest %s", rcc.stratumFeature, level, rcc.rankingFeature))
	}
	survival := report.SurvivalFromHazard(fit.OOBHazard())
	path = filepath.Join(rcc.outDir, "subject_curves.png")
	rcc.Logf("Rendering predicted survival comparison to %s...", path)
	err = report.RenderSubjectCurves(path, fit.TimePoints(), survival, subjects, labels)
	if err != nil {
		return err
	}

	path = filepath.Join(rcc.outDir, "curves.csv")
	rcc.Logf("Writing predicted survival curves to %s...", path)
	return writeCurves(path, report.Long(subjects, fit.TimePoints(), survival))
}

func writeCurves(path string, points []report.CurvePoint) error {
	f, err := os.Create(path)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"subject", "time", "probability"}); err != nil {
		return err
	}
	for _, cp := range points {
		record := []string{
			strconv.Itoa(cp.Subject),
			strconv.FormatFloat(cp.Time, 'g', -1, 64),
			strconv.FormatFloat(cp.Probability, 'g', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
