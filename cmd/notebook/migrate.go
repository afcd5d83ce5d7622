package main

import (
	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database schema and exit",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := types.ConfigFromEnv()
		if err != nil {
			return errors.Wrap(err, "loading config")
		}
		db, err := openDB(cfg)
		if err != nil {
			return err
		}
		if err := migrate(db); err != nil {
			return err
		}
		logrus.Infof("Migrated %s database", cfg.DBDriver)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
