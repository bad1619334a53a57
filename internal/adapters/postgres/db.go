package postgres

import (
	"context"
	"embed"
	"fmt"
	"log/slog"
	"sort"
	"strings"
	"time"

	"github.com/glebarez/sqlite"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
)

//go:embed migrations/*.sql
var migrationFS embed.FS

const sqliteScheme = "sqlite://"

// IsSQLite reports whether the database URL selects the embedded SQLite driver.
func IsSQLite(databaseURL string) bool {
	return strings.HasPrefix(databaseURL, sqliteScheme) || strings.HasPrefix(databaseURL, "file:")
}

// Connect opens and validates a GORM connection pool. Postgres URLs use the
// pgx-backed driver; sqlite:// and file: URLs use the pure-Go SQLite driver
// for local runs.
func Connect(ctx context.Context, databaseURL string, maxConns int32) (*gorm.DB, error) {
	slog.Default().InfoContext(ctx, "database connect started",
		"module", "postgres",
		"layer", "adapter",
		"operation", "connect",
		"outcome", "start",
		"driver", driverName(databaseURL),
	)

	cfg := &gorm.Config{
		PrepareStmt:    true,
		TranslateError: true,
	}
	var dialector gorm.Dialector
	if IsSQLite(databaseURL) {
		dialector = sqlite.Open(strings.TrimPrefix(databaseURL, sqliteScheme))
	} else {
		dialector = postgres.Open(databaseURL)
	}
	db, err := gorm.Open(dialector, cfg)
	if err != nil {
		return nil, fmt.Errorf("connect %s: %w", driverName(databaseURL), err)
	}

	sqlDB, err := db.DB()
	if err != nil {
		return nil, fmt.Errorf("gorm sql db: %w", err)
	}
	if IsSQLite(databaseURL) {
		sqlDB.SetMaxOpenConns(1)
	} else if maxConns > 0 {
		sqlDB.SetMaxOpenConns(int(maxConns))
		sqlDB.SetMaxIdleConns(int(maxConns) / 2)
	}
	sqlDB.SetConnMaxIdleTime(15 * time.Minute)
	sqlDB.SetConnMaxLifetime(time.Hour)

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := sqlDB.PingContext(pingCtx); err != nil {
		_ = sqlDB.Close()
		return nil, fmt.Errorf("ping %s: %w", driverName(databaseURL), err)
	}
	slog.Default().InfoContext(ctx, "database connect completed",
		"module", "postgres",
		"layer", "adapter",
		"operation", "connect",
		"outcome", "success",
		"driver", driverName(databaseURL),
	)
	return db, nil
}

// Migrate brings the schema up to date. Postgres runs the embedded SQL files;
// SQLite, which cannot run them, is auto-migrated from the models.
func Migrate(ctx context.Context, db *gorm.DB) error {
	if db.Dialector.Name() == "sqlite" {
		return db.WithContext(ctx).AutoMigrate(&rateSnapshotModel{}, &outboxModel{})
	}
	return RunMigrations(ctx, db)
}

// RunMigrations applies embedded SQL migrations in lexical order.
func RunMigrations(ctx context.Context, db *gorm.DB) error {
	entries, err := migrationFS.ReadDir("migrations")
	if err != nil {
		return fmt.Errorf("read migrations dir: %w", err)
	}

	names := make([]string, 0, len(entries))
	for _, e := range entries {
		if e.IsDir() || !strings.HasSuffix(e.Name(), ".sql") {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	slog.Default().InfoContext(ctx, "postgres migrations started",
		"module", "postgres",
		"layer", "adapter",
		"operation", "run_migrations",
		"outcome", "start",
		"migration_count", len(names),
	)

	for _, name := range names {
		raw, err := migrationFS.ReadFile("migrations/" + name)
		if err != nil {
			return fmt.Errorf("read migration %s: %w", name, err)
		}
		if err := db.WithContext(ctx).Exec(string(raw)).Error; err != nil {
			return fmt.Errorf("exec migration %s: %w", name, err)
		}
		slog.Default().InfoContext(ctx, "migration applied",
			"module", "postgres",
			"layer", "adapter",
			"operation", "apply_migration",
			"outcome", "success",
			"migration", name,
		)
	}
	slog.Default().InfoContext(ctx, "postgres migrations completed",
		"module", "postgres",
		"layer", "adapter",
		"operation", "run_migrations",
		"outcome", "success",
		"migration_count", len(names),
	)
	return nil
}

func driverName(databaseURL string) string {
	if IsSQLite(databaseURL) {
		return "sqlite"
	}
	return "postgres"
}
