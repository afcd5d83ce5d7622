package main

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"github.com/oliverisaac/goli"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	envFile string
)

var rootCmd = &cobra.Command{
	Use:   "notebook",
	Short: "A small multi-user notebook served over HTTP",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level := logrus.InfoLevel
		if verbose {
			level = logrus.DebugLevel
		}
		goli.InitLogrus(level)

		if err := godotenv.Load(envFile); err != nil {
			logrus.Debugf("not loading %s: %v", envFile, err)
		}
	},
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

// Execute runs the root command. Without a subcommand it serves.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Enable debug logging")
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Environment file to load before reading config")
}
