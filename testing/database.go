// Package testing provides test utilities and database setup for testing the planner
package testing

import (
	"fmt"

	"github.com/bpnlt/tv-planner/models"
	"github.com/glebarez/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// TestDB represents a test database instance
type TestDB struct {
	DB *gorm.DB
}

// SetupTestDB opens a fresh in-memory database and migrates the full schema.
// Every call gets its own isolated instance.
func SetupTestDB() (*TestDB, error) {
	db, err := gorm.Open(sqlite.Open("file::memory:?cache=private"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open test database: %w", err)
	}

	if err := db.AutoMigrate(models.AllModels()...); err != nil {
		return nil, fmt.Errorf("failed to migrate test schema: %w", err)
	}

	return &TestDB{DB: db}, nil
}

// TeardownTestDB closes the underlying connection
func (tdb *TestDB) TeardownTestDB() error {
	if tdb.DB == nil {
		return nil
	}
	sqlDB, err := tdb.DB.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
