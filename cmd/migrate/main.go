package main

import (
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"go.uber.org/zap"

	"salesdash/internal/config"
	"salesdash/internal/db"
	"salesdash/internal/logger"
)

const (
	sectionUp   = "Up"
	sectionDown = "Down"
	marker      = "-- +migrate "
)

func main() {
	mode := flag.String("mode", "up", "migration mode: up, down or status")
	dir := flag.String("dir", "./migrations", "directory holding the *.sql migrations")
	flag.Parse()

	cfg := config.LoadConfig()
	logger.Init(cfg.AppEnv)
	defer logger.Sync()
	log := logger.L().With(zap.String("layer", "migrate"))

	database, err := db.NewDatabase(cfg)
	if err != nil {
		log.Fatal("failed to connect to cart store", zap.Error(err))
	}
	defer database.Close()

	m := &migrator{db: database, log: log}
	if err := m.run(*mode, *dir); err != nil {
		log.Fatal("migration failed", zap.Error(err))
	}
}

type migrator struct {
	db  *sql.DB
	log *zap.Logger
}

func (m *migrator) run(mode, dir string) error {
	_, err := m.db.Exec(`
		CREATE TABLE IF NOT EXISTS schema_migrations (
			version TEXT PRIMARY KEY,
			applied_at TIMESTAMPTZ NOT NULL DEFAULT NOW()
		);
	`)
	if err != nil {
		return fmt.Errorf("ensure schema_migrations: %w", err)
	}

	files, err := migrationFiles(dir)
	if err != nil {
		return err
	}

	switch mode {
	case "up":
		return m.up(files)
	case "down":
		return m.down(files)
	case "status":
		return m.status(files)
	default:
		return fmt.Errorf("unknown mode %q (use up, down or status)", mode)
	}
}

// migrationFiles lists *.sql in dir in lexical order, which is apply order.
func migrationFiles(dir string) ([]string, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.sql"))
	if err != nil {
		return nil, fmt.Errorf("list migrations: %w", err)
	}
	slices.Sort(files)
	return files, nil
}

func (m *migrator) applied(version string) (bool, error) {
	var exists bool
	err := m.db.QueryRow(`SELECT EXISTS(SELECT 1 FROM schema_migrations WHERE version = $1)`, version).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("check migration %s: %w", version, err)
	}
	return exists, nil
}

// up applies every pending migration, each in its own transaction together
// with its schema_migrations row.
func (m *migrator) up(files []string) error {
	count := 0
	for _, file := range files {
		version := filepath.Base(file)

		done, err := m.applied(version)
		if err != nil {
			return err
		}
		if done {
			m.log.Debug("skipping applied migration", zap.String("version", version))
			continue
		}

		body, err := readSection(file, sectionUp)
		if err != nil {
			return err
		}

		m.log.Info("applying migration", zap.String("version", version))
		err = m.inTx(func(tx *sql.Tx) error {
			if _, err := tx.Exec(body); err != nil {
				return fmt.Errorf("apply %s: %w", version, err)
			}
			if _, err := tx.Exec(`INSERT INTO schema_migrations (version) VALUES ($1)`, version); err != nil {
				return fmt.Errorf("record %s: %w", version, err)
			}
			return nil
		})
		if err != nil {
			return err
		}
		count++
	}
	m.log.Info("migrations up to date", zap.Int("applied", count))
	return nil
}

// down rolls back the most recently applied migration only.
func (m *migrator) down(files []string) error {
	var last string
	err := m.db.QueryRow(`SELECT version FROM schema_migrations ORDER BY applied_at DESC, version DESC LIMIT 1`).Scan(&last)
	if errors.Is(err, sql.ErrNoRows) {
		m.log.Info("nothing to roll back")
		return nil
	}
	if err != nil {
		return fmt.Errorf("find last migration: %w", err)
	}

	idx := slices.IndexFunc(files, func(f string) bool { return filepath.Base(f) == last })
	if idx < 0 {
		return fmt.Errorf("migration file not found for version %s", last)
	}

	body, err := readSection(files[idx], sectionDown)
	if err != nil {
		return err
	}

	m.log.Info("rolling back migration", zap.String("version", last))
	return m.inTx(func(tx *sql.Tx) error {
		if _, err := tx.Exec(body); err != nil {
			return fmt.Errorf("roll back %s: %w", last, err)
		}
		if _, err := tx.Exec(`DELETE FROM schema_migrations WHERE version = $1`, last); err != nil {
			return fmt.Errorf("unrecord %s: %w", last, err)
		}
		return nil
	})
}

func (m *migrator) status(files []string) error {
	for _, file := range files {
		version := filepath.Base(file)
		done, err := m.applied(version)
		if err != nil {
			return err
		}
		m.log.Info("migration", zap.String("version", version), zap.Bool("applied", done))
	}
	return nil
}

func (m *migrator) inTx(fn func(tx *sql.Tx) error) error {
	tx, err := m.db.Begin()
	if err != nil {
		return fmt.Errorf("begin: %w", err)
	}
	if err := fn(tx); err != nil {
		_ = tx.Rollback()
		return err
	}
	return tx.Commit()
}

func readSection(path, section string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("read %s: %w", path, err)
	}
	body := extractSection(string(raw), section)
	if strings.TrimSpace(body) == "" {
		return "", fmt.Errorf("%s has no %s section", filepath.Base(path), section)
	}
	return body, nil
}

// extractSection returns the lines between "-- +migrate <section>" and the
// next marker.
func extractSection(content, section string) string {
	var b strings.Builder
	inside := false
	for line := range strings.SplitSeq(content, "\n") {
		if strings.HasPrefix(strings.TrimSpace(line), marker) {
			if inside {
				break
			}
			inside = strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(line), marker)) == section
			continue
		}
		if inside {
			b.WriteString(line)
			b.WriteByte('\n')
		}
	}
	return b.String()
}
