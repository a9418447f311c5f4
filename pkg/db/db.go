package db

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"github.com/example/lang-portal/pkg/config"
	"github.com/example/lang-portal/pkg/logger"
	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// Open connects to the configured database and runs migrations. The
// returned handle is injected into every component that needs storage;
// callers own its lifecycle and must Close it on shutdown.
func Open(cfg config.DatabaseConfig, logCfg config.LoggingConfig) (*gorm.DB, error) {
	dialector, err := buildDialector(cfg)
	if err != nil {
		return nil, err
	}

	gormLogger, gormErr := newGormLogger(logCfg.GormLevel)
	if gormErr != nil {
		logger.Error("invalid gorm log level", "value", logCfg.GormLevel, "error", gormErr)
	}

	gdb, err := gorm.Open(dialector, &gorm.Config{
		Logger:         gormLogger,
		TranslateError: true,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	if err := Migrate(gdb); err != nil {
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}
	return gdb, nil
}

func buildDialector(cfg config.DatabaseConfig) (gorm.Dialector, error) {
	switch cfg.Driver {
	case "", "sqlite":
		path := cfg.Path
		if path == "" {
			path = "data/words.db"
		}
		if dir := filepath.Dir(path); dir != "." {
			if err := os.MkdirAll(dir, 0o755); err != nil {
				return nil, fmt.Errorf("failed to create database directory: %w", err)
			}
		}
		return sqlite.Open(path + "?_foreign_keys=on"), nil
	case "postgres":
		dsn := "host=" + cfg.Host +
			" user=" + cfg.User +
			" password=" + cfg.Password +
			" dbname=" + cfg.DBName +
			" port=" + strconv.Itoa(cfg.Port) +
			" sslmode=" + cfg.SSLMode
		return postgres.Open(dsn), nil
	default:
		return nil, fmt.Errorf("unsupported database driver %q", cfg.Driver)
	}
}

// Migrate brings the schema up to date. The legacy join-table rename
// must run before AutoMigrate so existing membership rows survive.
func Migrate(gdb *gorm.DB) error {
	if err := migrateLegacyJoinTable(gdb); err != nil {
		return err
	}
	return gdb.AutoMigrate(
		&Group{},
		&Word{},
		&StudyActivity{},
		&StudySession{},
		&WordReviewItem{},
	)
}

// Some early deployments created the group/word join table as
// word_groups. group_words is canonical; rename instead of recreating
// so membership data is preserved.
func migrateLegacyJoinTable(gdb *gorm.DB) error {
	if gdb == nil {
		return nil
	}
	migrator := gdb.Migrator()
	if migrator.HasTable("word_groups") && !migrator.HasTable("group_words") {
		logger.Info("renaming legacy join table", "from", "word_groups", "to", "group_words")
		return migrator.RenameTable("word_groups", "group_words")
	}
	return nil
}

// Close releases the underlying connection pool.
func Close(gdb *gorm.DB) error {
	sqlDB, err := gdb.DB()
	if err != nil {
		return err
	}
	return sqlDB.Close()
}
