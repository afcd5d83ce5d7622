package main

import (
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the notebook web server",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		return serve()
	},
}

func serve() error {
	cfg, err := types.ConfigFromEnv()
	if err != nil {
		return errors.Wrap(err, "loading config")
	}
	if !verbose {
		logrus.SetLevel(cfg.LogLevel)
	}

	db, err := openDB(cfg)
	if err != nil {
		return err
	}
	if err := migrate(db); err != nil {
		return err
	}

	e := newServer(cfg, db)
	logrus.Infof("Listening on %s", cfg.ListenAddr)
	return e.Start(cfg.ListenAddr)
}

func init() {
	rootCmd.AddCommand(serveCmd)
}
