// api/db/db.go
package db

import (
	"context"
	"fmt"
	"time"

	"go.uber.org/zap"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
	gormlogger "gorm.io/gorm/logger"

	"github.com/talentforge/hcm/api/config"
	logger "github.com/talentforge/hcm/api/logging"
	"github.com/talentforge/hcm/api/model"
)

var DB *gorm.DB

func InitDatabase() error {
	dsn := config.GetString("database.dsn")
	logger.Info("Connecting to database")

	var err error
	DB, err = gorm.Open(mysql.Open(dsn), &gorm.Config{
		// TranslateError maps driver duplicate-key errors to
		// gorm.ErrDuplicatedKey, which the employee number allocator
		// relies on for its retry loop.
		TranslateError: true,
		Logger:         gormlogger.Default.LogMode(gormlogger.Warn),
	})
	if err != nil {
		return fmt.Errorf("failed to open database: %w", err)
	}

	sqlDB, err := DB.DB()
	if err != nil {
		return fmt.Errorf("failed to access underlying connection pool: %w", err)
	}
	sqlDB.SetMaxOpenConns(50)
	sqlDB.SetConnMaxLifetime(30 * time.Minute)

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}

	logger.Info("Successfully connected to database")
	return nil
}

func CloseDatabase() {
	if DB == nil {
		return
	}
	sqlDB, err := DB.DB()
	if err != nil {
		logger.Error("Error accessing connection pool on close", zap.Error(err))
		return
	}
	if err := sqlDB.Close(); err != nil {
		logger.Error("Error closing database connection", zap.Error(err))
	} else {
		logger.Info("Database connection closed successfully")
	}
}

// Migrate creates or updates the schema for all persisted entities.
func Migrate(db *gorm.DB) error {
	return db.AutoMigrate(
		&model.Department{},
		&model.Employee{},
		&model.SalaryHistory{},
		&model.DepartmentGrowth{},
	)
}
