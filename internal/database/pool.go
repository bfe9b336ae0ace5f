// Package database provides the MySQL connection pool and bulk loader
// used by the load command to import generated CSVs.
package database

import (
	"context"
	"database/sql"
	"fmt"
	"strings"

	_ "github.com/go-sql-driver/mysql"
	"github.com/synthdata/bankgen/internal/config"
)

// ensureLocalInfile adds allowAllFiles=true to a MySQL DSN so LOAD DATA
// LOCAL INFILE can read the generated files.
func ensureLocalInfile(dsn string) string {
	if strings.Contains(dsn, "allowAllFiles") {
		return dsn
	}
	if strings.Contains(dsn, "?") {
		return dsn + "&allowAllFiles=true"
	}
	return dsn + "?allowAllFiles=true"
}

// Pool wraps a sql.DB configured for bulk loading.
type Pool struct {
	db     *sql.DB
	config config.DatabaseConfig
}

// NewPool opens a connection pool with the given configuration. The DSN
// is amended to permit LOCAL INFILE.
func NewPool(cfg config.DatabaseConfig) (*Pool, error) {
	if cfg.DSN == "" {
		return nil, fmt.Errorf("database DSN is required")
	}

	db, err := sql.Open("mysql", ensureLocalInfile(cfg.DSN))
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if cfg.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.MaxOpenConns)
	}
	if cfg.MaxIdleConns > 0 {
		db.SetMaxIdleConns(cfg.MaxIdleConns)
	}
	if cfg.ConnMaxLifetime > 0 {
		db.SetConnMaxLifetime(cfg.ConnMaxLifetime)
	}

	return &Pool{db: db, config: cfg}, nil
}

// Connect verifies the database connection is working.
func (p *Pool) Connect(ctx context.Context) error {
	if err := p.db.PingContext(ctx); err != nil {
		return fmt.Errorf("failed to ping database: %w", err)
	}
	return nil
}

// Close shuts down the connection pool.
func (p *Pool) Close() error {
	return p.db.Close()
}

// DB returns the underlying sql.DB for direct access when needed.
func (p *Pool) DB() *sql.DB {
	return p.db
}

// ExecContext executes a statement that doesn't return rows.
func (p *Pool) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	return p.db.ExecContext(ctx, query, args...)
}

// MaskDSN hides the password portion of a DSN for display.
func MaskDSN(dsn string) string {
	if colonIdx := strings.Index(dsn, ":"); colonIdx > 0 {
		rest := dsn[colonIdx:]
		if atIdx := strings.Index(rest, "@"); atIdx > 0 {
			return dsn[:colonIdx+1] + "***" + rest[atIdx:]
		}
	}
	return dsn
}
