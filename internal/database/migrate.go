package database

import (
	"context"
	"embed"
	"errors"
	"fmt"
	"io/fs"
	"path"
	"sort"
	"strings"

	"mcq-platform/internal/config"
	"mcq-platform/internal/logger"

	"github.com/golang-migrate/migrate/v4"
	migratepgx "github.com/golang-migrate/migrate/v4/database/pgx/v5"
	migratesqlite "github.com/golang-migrate/migrate/v4/database/sqlite"
	"github.com/golang-migrate/migrate/v4/source/iofs"
	"github.com/jmoiron/sqlx"
	"go.uber.org/zap"
)

//go:embed migrations
var migrationsFS embed.FS

const (
	DirectionUp   = "up"
	DirectionDown = "down"
)

// RunMigrations applies (or rolls back) the embedded schema for the given driver.
func RunMigrations(ctx context.Context, db *sqlx.DB, driver, direction string) error {
	if direction != DirectionUp && direction != DirectionDown {
		return fmt.Errorf("unknown migration direction %q", direction)
	}

	switch driver {
	case config.DriverPostgres, config.DriverSQLite:
		return runVersionedMigrations(db, driver, direction)
	case config.DriverOracle:
		return runStatementMigrations(ctx, db, direction)
	default:
		return fmt.Errorf("unsupported database driver %q", driver)
	}
}

func runVersionedMigrations(db *sqlx.DB, driver, direction string) error {
	src, err := iofs.New(migrationsFS, path.Join("migrations", driver))
	if err != nil {
		return fmt.Errorf("could not load %s migrations: %w", driver, err)
	}
	defer src.Close()

	var m *migrate.Migrate
	switch driver {
	case config.DriverPostgres:
		target, err := migratepgx.WithInstance(db.DB, &migratepgx.Config{})
		if err != nil {
			return fmt.Errorf("could not create migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "pgx5", target)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	default:
		target, err := migratesqlite.WithInstance(db.DB, &migratesqlite.Config{})
		if err != nil {
			return fmt.Errorf("could not create migration driver: %w", err)
		}
		m, err = migrate.NewWithInstance("iofs", src, "sqlite", target)
		if err != nil {
			return fmt.Errorf("could not create migrator: %w", err)
		}
	}
	// m.Close would also close db, which the caller owns.

	if direction == DirectionDown {
		err = m.Down()
	} else {
		err = m.Up()
	}
	if err != nil && !errors.Is(err, migrate.ErrNoChange) {
		return fmt.Errorf("migration %s failed: %w", direction, err)
	}

	version, dirty, verr := m.Version()
	if verr != nil && !errors.Is(verr, migrate.ErrNilVersion) {
		return fmt.Errorf("could not read migration version: %w", verr)
	}
	logger.Get().Info("Migrations completed",
		zap.String("driver", driver),
		zap.String("direction", direction),
		zap.Uint("version", version),
		zap.Bool("dirty", dirty),
	)
	return nil
}

const oracleVersionTable = "schema_migrations"

// runStatementMigrations executes the oracle scripts one statement at a time,
// since go-ora does not accept multiple statements per Exec.
func runStatementMigrations(ctx context.Context, db *sqlx.DB, direction string) error {
	if err := ensureOracleVersionTable(ctx, db); err != nil {
		return err
	}

	files, err := migrationFiles("migrations/oracle", direction)
	if err != nil {
		return err
	}

	for _, name := range files {
		version := strings.SplitN(name, "_", 2)[0]

		var applied int
		query := db.Rebind("SELECT COUNT(*) FROM " + oracleVersionTable + " WHERE version = ?")
		if err := db.GetContext(ctx, &applied, query, version); err != nil {
			return fmt.Errorf("could not check migration %s: %w", name, err)
		}
		if (direction == DirectionUp && applied > 0) || (direction == DirectionDown && applied == 0) {
			continue
		}

		content, err := fs.ReadFile(migrationsFS, path.Join("migrations/oracle", name))
		if err != nil {
			return fmt.Errorf("could not read migration file %s: %w", name, err)
		}
		for _, stmt := range SplitStatements(string(content)) {
			if _, err := db.ExecContext(ctx, stmt); err != nil {
				return fmt.Errorf("could not execute migration %s: %w", name, err)
			}
		}

		if direction == DirectionUp {
			_, err = db.ExecContext(ctx, db.Rebind("INSERT INTO "+oracleVersionTable+" (version) VALUES (?)"), version)
		} else {
			_, err = db.ExecContext(ctx, db.Rebind("DELETE FROM "+oracleVersionTable+" WHERE version = ?"), version)
		}
		if err != nil {
			return fmt.Errorf("could not record migration %s: %w", name, err)
		}
		logger.Get().Info("Executed migration", zap.String("file", name))
	}

	logger.Get().Info("Migrations completed", zap.String("driver", config.DriverOracle), zap.String("direction", direction))
	return nil
}

func ensureOracleVersionTable(ctx context.Context, db *sqlx.DB) error {
	var exists int
	err := db.GetContext(ctx, &exists, "SELECT COUNT(*) FROM user_tables WHERE table_name = 'SCHEMA_MIGRATIONS'")
	if err != nil {
		return fmt.Errorf("could not inspect migration table: %w", err)
	}
	if exists > 0 {
		return nil
	}
	if _, err := db.ExecContext(ctx, "CREATE TABLE "+oracleVersionTable+" (version VARCHAR2(32) PRIMARY KEY)"); err != nil {
		return fmt.Errorf("could not create migration table: %w", err)
	}
	return nil
}

// migrationFiles lists the scripts for one direction, newest first when rolling back.
func migrationFiles(dir, direction string) ([]string, error) {
	entries, err := fs.ReadDir(migrationsFS, dir)
	if err != nil {
		return nil, fmt.Errorf("could not read migrations directory: %w", err)
	}

	suffix := "." + direction + ".sql"
	var files []string
	for _, e := range entries {
		if !e.IsDir() && strings.HasSuffix(e.Name(), suffix) {
			files = append(files, e.Name())
		}
	}
	sort.Strings(files)
	if direction == DirectionDown {
		sort.Sort(sort.Reverse(sort.StringSlice(files)))
	}
	return files, nil
}

// SplitStatements breaks a script on ";" and drops blank statements.
func SplitStatements(script string) []string {
	var out []string
	for _, part := range strings.Split(script, ";") {
		stmt := strings.TrimSpace(part)
		if stmt != "" {
			out = append(out, stmt)
		}
	}
	return out
}
