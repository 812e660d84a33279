package db

import (
	"fmt"
	"time"

	"github.com/glebarez/sqlite"
	"github.com/monocle-dev/taskboard/internal/models"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

var DB *gorm.DB

// Models lists every table in dependency order.
var Models = []interface{}{
	&models.User{},
	&models.Project{},
	&models.ProjectMember{},
	&models.Task{},
	&models.TaskAssignment{},
	&models.ActivityLog{},
}

func Open(driver, dsn string, logLevel logger.LogLevel) (*gorm.DB, error) {
	var dialector gorm.Dialector

	switch driver {
	case "postgres":
		dialector = postgres.Open(dsn)
	case "sqlite":
		dialector = sqlite.Open(dsn)
	default:
		return nil, fmt.Errorf("unsupported database driver %q", driver)
	}

	return gorm.Open(dialector, &gorm.Config{
		Logger:         logger.Default.LogMode(logLevel),
		TranslateError: true,
		NowFunc: func() time.Time {
			return time.Now().UTC()
		},
	})
}

func ConnectDatabase(driver, dsn string) error {
	var err error

	DB, err = Open(driver, dsn, logger.Warn)

	if err != nil {
		return err
	}

	return nil
}

func MigrateDatabase() error {
	return Migrate(DB)
}

func Migrate(conn *gorm.DB) error {
	if err := conn.AutoMigrate(Models...); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}
	return nil
}

func Close() error {
	if DB != nil {
		sqlDB, err := DB.DB()
		if err != nil {
			return err
		}
		return sqlDB.Close()
	}
	return nil
}
