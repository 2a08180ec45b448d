package config

import (
	"fmt"

	"github.com/sirupsen/logrus"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// GetDb opens the configured database.
func GetDb(cnf *Config) (*gorm.DB, error) {
	var dialector gorm.Dialector
	switch cnf.DB.Driver {
	case "postgres":
		dialector = postgres.Open(cnf.DB.ConnectionString())
	case "sqlite":
		dialector = sqlite.Open("file:" + cnf.DB.Path + "?_foreign_keys=on&_busy_timeout=5000")
	default:
		return nil, fmt.Errorf("unsupported database driver: %s", cnf.DB.Driver)
	}

	level := logger.Warn
	if cnf.DB.Debug {
		level = logger.Info
	}

	db, err := gorm.Open(dialector, &gorm.Config{
		Logger: logger.Default.LogMode(level),
	})
	if err != nil {
		return nil, err
	}

	logrus.Infof("connected to %s database", cnf.DB.Driver)

	return db, nil
}
