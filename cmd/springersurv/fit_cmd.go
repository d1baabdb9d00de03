package main

import (
	"context"
	"encoding/csv"
	"fmt"
	"net/url"
	"os"
	"sort"
	"strconv"
	"strings"

	"github.com/spf13/cobra"
	"github.com/teazrq/springer-surv/survforest"
	survjson "github.com/teazrq/springer-surv/survforest/json"
	"github.com/teazrq/springer-surv/survforest/redisstore"
	redis "gopkg.in/redis.v5"
)

type fitCmdConfig struct {
	inputConfig
	sampleWidth      int
	minLeaf          int
	splitPolicy      string
	splitCount       int
	trees            int
	workers          int
	seed             int64
	output           string
	importanceOutput string
}

func fitCmd(rootConfig *rootCmdConfig) *cobra.Command {
	config := &fitCmdConfig{inputConfig: inputConfig{rootCmdConfig: rootConfig}}
	cmd := &cobra.Command{
		Use:   "fit",
		Short: "Fit the final survival forest at a configuration",
		Long:  `Fit a survival forest at the given configuration, persist its trees and write the per-feature importance ranking`,
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()
			store, persisted, err := config.treeStore()
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(1)
			}
			defer store.Close(ctx)
			obs, err := config.observations(ctx)
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(2)
			}
			config.Logf("Fitting forest of %d trees over %d subjects and %d features...", config.trees, obs.Len(), len(obs.FeatureNames()))
			fit, err := survforest.New(store).Fit(ctx, obs, survforest.Config{
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
				os.Exit(3)
			}
			config.Logf("Done")
			fmt.Printf("oob accuracy: %.4f\n", fit.OOBScore())
			if !persisted {
				err = config.outputForest(ctx, store)
				if err != nil {
					fmt.Fprintln(os.Stderr, err)
					os.Exit(4)
				}
			}
			err = config.outputImportance(fit.Importance())
			if err != nil {
				fmt.Fprintln(os.Stderr, err)
				os.Exit(5)
			}
		},
	}
	declareInputFlags(cmd, &config.inputConfig)
	declareFitFlags(cmd, &config.sampleWidth, &config.minLeaf, &config.splitPolicy, &config.splitCount, &config.trees, &config.workers, &config.seed)
	cmd.PersistentFlags().StringVarP(&(config.output), "output", "o", "", "path to a file to which the fitted forest will be written in JSON format, or a redis URL to store its trees on (defaults to STDOUT, as JSON)")
	cmd.PersistentFlags().StringVar(&(config.importanceOutput), "importance-output", "importance.csv", "path to a CSV file to which the importance ranking will be written")
	return cmd
}

func declareFitFlags(cmd *cobra.Command, sampleWidth, minLeaf *int, splitPolicy *string, splitCount, trees, workers *int, seed *int64) {
	cmd.PersistentFlags().IntVarP(sampleWidth, "sample-width", "w", 10, "number of candidate features sampled at each split")
	cmd.PersistentFlags().IntVarP(minLeaf, "min-leaf", "l", 15, "minimum number of subjects per terminal node")
	cmd.PersistentFlags().StringVarP(splitPolicy, "split-policy", "p", survforest.SplitPolicyBest, "split-generation policy, one of: best, random")
	cmd.PersistentFlags().IntVar(splitCount, "split-count", 10, "random cut points drawn per feature under the random policy")
	cmd.PersistentFlags().IntVarP(trees, "trees", "t", 500, "number of trees in the forest")
	cmd.PersistentFlags().IntVar(workers, "workers", 1, "number of goroutines growing trees")
	cmd.PersistentFlags().Int64Var(seed, "seed", 0, "random seed for the fit (defaults to 0: time-derived)")
}

// treeStore returns the store the fit will write its trees to and
// whether the store itself persists them (a redis backend), in which
// case no JSON output is produced.
func (fcc *fitCmdConfig) treeStore() (survforest.TreeStore, bool, error) {
	if !strings.HasPrefix(fcc.output, "redis://") {
		return survforest.NewMemoryTreeStore(), false, nil
	}
	fcc.Logf("Connecting to redis at %s to store trees...", fcc.output)
	u, err := url.Parse(fcc.output)
	if err != nil {
		return nil, false, fmt.Errorf("parsing redis URL %s: %v", fcc.output, err)
	}
	opts := &redis.Options{Addr: u.Host}
	if u.User != nil {
		opts.Password, _ = u.User.Password()
	}
	if db := strings.TrimPrefix(u.Path, "/"); db != "" {
		opts.DB, err = strconv.Atoi(db)
		if err != nil {
			return nil, false, fmt.Errorf("parsing redis URL %s: invalid DB number %s", fcc.output, db)
		}
	}
	return redisstore.New(redis.NewClient(opts), "springersurv", survjson.TreeCodec{}), true, nil
}

func (fcc *fitCmdConfig) outputForest(ctx context.Context, store survforest.TreeStore) error {
	var f *os.File
	var err error
	if fcc.output == "" {
		f = os.Stdout
	} else {
		fcc.Logf("Writing fitted forest to %s...", fcc.output)
		f, err = os.Create(fcc.output)
		if err != nil {
			return err
		}
	}
	defer f.Close()
	return survjson.WriteJSONForest(ctx, store, f)
}

func (fcc *fitCmdConfig) outputImportance(importance map[string]float64) error {
	names := make([]string, 0, len(importance))
	for name := range importance {
		names = append(names, name)
	}
	sort.SliceStable(names, func(i, j int) bool {
		if importance[names[i]] != importance[names[j]] {
			return importance[names[i]] > importance[names[j]]
		}
		return names[i] < names[j]
	})
	fcc.Logf("Writing importance ranking to %s...", fcc.importanceOutput)
	f, err := os.Create(fcc.importanceOutput)
	if err != nil {
		return err
	}
	defer f.Close()
	w := csv.NewWriter(f)
	if err := w.Write([]string{"feature", "importance"}); err != nil {
		return err
	}
	for _, name := range names {
		if err := w.Write([]string{name, strconv.FormatFloat(importance[name], 'g', -1, 64)}); err != nil {
			return err
		}
	}
	w.Flush()
	return w.Error()
}
