package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"boshenLines/internal/domain"
	"boshenLines/internal/ports"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

// Repository implements the ports.LevelRepository interface using SQLite.
// It is a consumer of engine output; the engine itself never writes here.
type Repository struct {
	db     *sql.DB
	logger ports.Logger
}

// Config holds configuration for the SQLite repository.
type Config struct {
	DBPath string
	Logger ports.Logger
}

// NewRepository creates a new SQLite repository instance.
func NewRepository(cfg Config) (*Repository, error) {
	if cfg.Logger == nil {
		return nil, fmt.Errorf("%w: logger is required for SQLite repository", ports.ErrConfigurationError)
	}
	dbPath := cfg.DBPath
	if dbPath == "" {
		dbPath = "./data/prediction_levels.db"
	}

	if err := os.MkdirAll(filepath.Dir(dbPath), 0755); err != nil {
		err = fmt.Errorf("failed to create data directory '%s': %w", filepath.Dir(dbPath), err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000") // WAL mode for better concurrency
	if err != nil {
		err = fmt.Errorf("failed to open database at '%s': %w", dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	if err := db.Ping(); err != nil {
		db.Close()
		err = fmt.Errorf("%w: failed to ping database at '%s': %v", ports.ErrDBConnection, dbPath, err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}

	// SQLite handles concurrency internally; the Go driver benefits
	// from a single connection.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	repo := &Repository{db: db, logger: cfg.Logger}
	if err := repo.initializeSchema(context.Background()); err != nil {
		db.Close()
		err = fmt.Errorf("failed to initialize database schema: %w", err)
		cfg.Logger.Error(context.Background(), err, "SQLite repository initialization failed")
		return nil, err
	}
	cfg.Logger.Info(context.Background(), "SQLite level store ready", map[string]interface{}{"path": dbPath})

	return repo, nil
}

// initializeSchema creates tables if they don't exist.
func (r *Repository) initializeSchema(ctx context.Context) error {
	const schema = `
	CREATE TABLE IF NOT EXISTS level_sets (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		symbol TEXT NOT NULL,
		low REAL NOT NULL,
		high REAL NOT NULL,
		created_at TIMESTAMP NOT NULL DEFAULT CURRENT_TIMESTAMP
	);
	CREATE TABLE IF NOT EXISTS prediction_lines (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		set_id INTEGER NOT NULL REFERENCES level_sets(id) ON DELETE CASCADE,
		line_index INTEGER NOT NULL,
		name TEXT NOT NULL,
		ratio REAL NOT NULL,
		price REAL NOT NULL,
		is_key INTEGER NOT NULL,
		UNIQUE(set_id, line_index)
	);
	CREATE INDEX IF NOT EXISTS idx_level_sets_symbol ON level_sets(symbol, id);
	`
	if _, err := r.db.ExecContext(ctx, schema); err != nil {
		return fmt.Errorf("%w: %v", ports.ErrQueryFailed, err)
	}
	return nil
}

// SaveLevels persists one computed sequence for the given symbol in a
// single transaction.
func (r *Repository) SaveLevels(ctx context.Context, symbol string, iv domain.Interval, lines []domain.PredictionLine) (int64, error) {
	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("%w: begin transaction: %v", ports.ErrQueryFailed, err)
	}
	defer tx.Rollback() // No-op after a successful commit

	res, err := tx.ExecContext(ctx,
		`INSERT INTO level_sets (symbol, low, high) VALUES (?, ?, ?)`,
		symbol, iv.Low, iv.High)
	if err != nil {
		return 0, fmt.Errorf("%w: insert level set: %v", ports.ErrQueryFailed, err)
	}
	setID, err := res.LastInsertId()
	if err != nil {
		return 0, fmt.Errorf("%w: last insert id: %v", ports.ErrQueryFailed, err)
	}

	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO prediction_lines (set_id, line_index, name, ratio, price, is_key) VALUES (?, ?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("%w: prepare line insert: %v", ports.ErrQueryFailed, err)
	}
	defer stmt.Close()

	for _, line := range lines {
		if _, err := stmt.ExecContext(ctx, setID, line.Index, line.Name, line.Ratio, line.Price, line.IsKeyLine); err != nil {
			return 0, fmt.Errorf("%w: insert line %d: %v", ports.ErrQueryFailed, line.Index, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("%w: commit: %v", ports.ErrQueryFailed, err)
	}

	r.logger.Debug(ctx, "stored prediction levels",
		map[string]interface{}{"symbol": symbol, "setID": setID, "lines": len(lines)})
	return setID, nil
}

// GetRecentLevels returns the most recently stored sets for the symbol, newest first.
func (r *Repository) GetRecentLevels(ctx context.Context, symbol string, limit int) ([]*ports.StoredLevelSet, error) {
	if limit <= 0 {
		limit = 10
	}
	rows, err := r.db.QueryContext(ctx,
		`SELECT id, symbol, low, high FROM level_sets WHERE symbol = ? ORDER BY id DESC LIMIT ?`,
		symbol, limit)
	if err != nil {
		return nil, fmt.Errorf("%w: query level sets: %v", ports.ErrQueryFailed, err)
	}
	defer rows.Close()

	var sets []*ports.StoredLevelSet
	for rows.Next() {
		set := &ports.StoredLevelSet{}
		if err := rows.Scan(&set.ID, &set.Symbol, &set.Interval.Low, &set.Interval.High); err != nil {
			return nil, fmt.Errorf("%w: scan level set: %v", ports.ErrQueryFailed, err)
		}
		sets = append(sets, set)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate level sets: %v", ports.ErrQueryFailed, err)
	}

	for _, set := range sets {
		lines, err := r.getLines(ctx, set.ID)
		if err != nil {
			return nil, err
		}
		set.Lines = lines
	}
	return sets, nil
}

func (r *Repository) getLines(ctx context.Context, setID int64) ([]domain.PredictionLine, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT line_index, name, ratio, price, is_key FROM prediction_lines WHERE set_id = ? ORDER BY line_index`,
		setID)
	if err != nil {
		return nil, fmt.Errorf("%w: query lines for set %d: %v", ports.ErrQueryFailed, setID, err)
	}
	defer rows.Close()

	var lines []domain.PredictionLine
	for rows.Next() {
		var line domain.PredictionLine
		if err := rows.Scan(&line.Index, &line.Name, &line.Ratio, &line.Price, &line.IsKeyLine); err != nil {
			return nil, fmt.Errorf("%w: scan line for set %d: %v", ports.ErrQueryFailed, setID, err)
		}
		lines = append(lines, line)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterate lines for set %d: %v", ports.ErrQueryFailed, setID, err)
	}
	return lines, nil
}

// Close releases the underlying database handle.
func (r *Repository) Close() error {
	if r.db != nil {
		return r.db.Close()
	}
	return nil
}
