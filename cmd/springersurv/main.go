package main

import (
	"os"

	"github.com/spf13/cobra"
)

type rootCmdConfig struct {
	verbose bool
}

func main() {
	if err := cliParser().Execute(); err != nil {
		os.Exit(1)
	}
}

func cliParser() *cobra.Command {
	rootCmd := &cobra.Command{
		Use:   "springersurv",
		Short: "springersurv is a tool to analyze survival data with random survival forests",
		Long:  `A tool to screen gene-expression features, tune and fit random survival forest models on survival data, and report survival curves and variable importance`,
	}
	config := &rootCmdConfig{}
	rootCmd.PersistentFlags().BoolVarP(&(config.verbose), "verbose", "v", false, "")
	rootCmd.AddCommand(versionCmd(), screenCmd(config), tuneCmd(config), fitCmd(config), reportCmd(config))
	return rootCmd
}
