package main

import (
	"time"

	"github.com/oliverisaac/notebook/types"
	"github.com/pkg/errors"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

func openDB(cfg types.Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cfg.DBDriver {
	case types.DBDriverPostgres:
		dialector = postgres.Open(cfg.DBDSN)
	default:
		dialector = sqlite.Open(cfg.DBPath)
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		NowFunc: func() time.Time { return time.Now().UTC() },
	})
	if err != nil {
		return nil, errors.Wrapf(err, "failed to connect %s database", cfg.DBDriver)
	}
	return db, nil
}

func migrate(db *gorm.DB) error {
	gormTables := []any{
		&types.User{},
		&types.Profile{},
		&types.Note{},
	}
	for _, t := range gormTables {
		if err := db.AutoMigrate(t); err != nil {
			return errors.Wrap(err, "Failed to migrate")
		}
	}
	return nil
}
