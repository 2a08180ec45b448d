package tester

import (
	"context"
	"os"
	"path/filepath"

	"github.com/vrk-kpa/ptv-releases-sub014/internal/cache"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/migrations"
	"github.com/vrk-kpa/ptv-releases-sub014/internal/queue"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var (
	db      *gorm.DB
	testDir string
)

// Setup opens a fresh sqlite database with foreign keys enforced and applies
// the schema and every migration to it.
func Setup() {
	RemoveDBFile()

	_ = os.Setenv("ENV", "test")

	var err error
	testDir, err = os.MkdirTemp("", "ptv-test-")
	if err != nil {
		panic(err)
	}

	dsn := "file:" + filepath.Join(testDir, "catalog.db") + "?_foreign_keys=on&_busy_timeout=5000"
	db, err = gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(err)
	}

	err = migrations.Setup(context.Background(), db)
	if err != nil {
		panic(err)
	}
}

// SetupSchema opens a fresh database with the gorm schema only, without the
// sql migrations applied.
func SetupSchema() *gorm.DB {
	Setup()

	m, err := migrations.New(db, false)
	if err != nil {
		panic(err)
	}
	if _, err := m.Reset(context.Background()); err != nil {
		panic(err)
	}

	return db
}

func TestDB() *gorm.DB {
	return db
}

func RemoveDBFile() {
	if db != nil {
		if sqlDB, err := db.DB(); err == nil {
			_ = sqlDB.Close()
		}
		db = nil
	}
	if testDir == "" {
		return
	}
	err := os.RemoveAll(testDir)
	if err != nil {
		panic(err)
	}
	testDir = ""
}

func Cache() *cache.Memory {
	return cache.NewMemory()
}

func Queue() *queue.Memory {
	return queue.NewMemory()
}
