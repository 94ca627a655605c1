package config

import (
	"BabyTracker/models"
	"BabyTracker/repositories/impl"
	"context"
	"fmt"
	"log/slog"
	"strings"

	"gorm.io/driver/mysql"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// Dialector picks the gorm driver for cfg.DBDriver.
func Dialector(cfg Config) (gorm.Dialector, error) {
	switch cfg.DBDriver {
	case "postgres", "":
		sslmode := cfg.DBSSLMode
		if sslmode == "" {
			if strings.Contains(cfg.DBHost, "render.com") {
				sslmode = "require"
			} else {
				sslmode = "disable"
			}
		}
		dsn := fmt.Sprintf("host=%s user=%s password=%s dbname=%s port=%s sslmode=%s TimeZone=UTC",
			cfg.DBHost, cfg.DBUser, cfg.DBPassword, cfg.DBName, cfg.DBPort, sslmode)
		return postgres.Open(dsn), nil
	case "mysql":
		dsn := fmt.Sprintf("%s:%s@tcp(%s:%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			cfg.DBUser, cfg.DBPassword, cfg.DBHost, cfg.DBPort, cfg.DBName)
		return mysql.Open(dsn), nil
	case "sqlite":
		return sqlite.Open(cfg.DBPath), nil
	default:
		return nil, fmt.Errorf("unsupported DB_DRIVER %q", cfg.DBDriver)
	}
}

// InitDatabase connects, migrates every model and seeds the milestone
// reference rows.
func InitDatabase(cfg Config) (*gorm.DB, error) {
	dialector, err := Dialector(cfg)
	if err != nil {
		return nil, err
	}

	level := logger.Warn
	if !cfg.IsProduction() {
		level = logger.Info
	}
	slog.Info("connecting to database", "driver", cfg.DBDriver, "host", cfg.DBHost, "name", cfg.DBName)
	db, err := gorm.Open(dialector, &gorm.Config{Logger: logger.Default.LogMode(level)})
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	if err := Migrate(context.Background(), db); err != nil {
		return nil, err
	}
	slog.Info("database ready")
	return db, nil
}

func Migrate(ctx context.Context, db *gorm.DB) error {
	if err := db.WithContext(ctx).AutoMigrate(models.All()...); err != nil {
		return fmt.Errorf("migrate: %w", err)
	}
	if err := impl.NewMilestoneRepository(db).Seed(ctx, models.DefaultMilestones); err != nil {
		return fmt.Errorf("seed milestones: %w", err)
	}
	return nil
}
