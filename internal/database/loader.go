package database

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"strings"

	"github.com/go-sql-driver/mysql"
	"github.com/synthdata/bankgen/internal/rules"
)

// Loader bulk-imports generated CSVs with LOAD DATA LOCAL INFILE. The
// profile table schema is derived from the CSV header, since the rule
// workbook controls which columns exist; the transaction table is fixed.
type Loader struct {
	pool *Pool
}

// NewLoader creates a loader over an open pool.
func NewLoader(pool *Pool) *Loader {
	return &Loader{pool: pool}
}

// Column types for the profile columns the engine always understands.
// Anything the workbook adds beyond these loads as VARCHAR.
var profileColumnTypes = map[string]string{
	rules.FieldCustomerID:   "VARCHAR(32) NOT NULL",
	rules.FieldAccountID:    "VARCHAR(32) NOT NULL",
	rules.FieldAge:          "INT NULL",
	rules.FieldTenureMonths: "INT NULL",
	rules.FieldBalance:      "BIGINT NOT NULL",
	rules.FieldAvgBalance:   "BIGINT NOT NULL",
}

// notNullColumns never carry the missing marker, so they load directly
// instead of through a NULLIF variable.
var notNullColumns = map[string]bool{
	rules.FieldCustomerID: true,
	rules.FieldAccountID:  true,
	rules.FieldBalance:    true,
	rules.FieldAvgBalance: true,
}

// LoadProfiles imports a profile CSV (plain or .csv.xz) into the
// customer_profiles table, creating it from the file's header.
func (l *Loader) LoadProfiles(ctx context.Context, path string) (int64, error) {
	plainPath, cleanup, err := materialize(ctx, path)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	headers, err := readHeader(plainPath)
	if err != nil {
		return 0, err
	}

	if err := l.createProfileTable(ctx, headers); err != nil {
		return 0, err
	}
	return l.loadFile(ctx, plainPath, profileLoadSQL(headers))
}

// LoadTransactions imports a transaction CSV (plain or .csv.xz) into the
// customer_transactions table.
func (l *Loader) LoadTransactions(ctx context.Context, path string) (int64, error) {
	plainPath, cleanup, err := materialize(ctx, path)
	if err != nil {
		return 0, err
	}
	defer cleanup()

	if err := l.createTransactionTable(ctx); err != nil {
		return 0, err
	}
	return l.loadFile(ctx, plainPath, transactionLoadSQL)
}

func (l *Loader) createProfileTable(ctx context.Context, headers []string) error {
	var cols []string
	for _, h := range headers {
		colType, ok := profileColumnTypes[h]
		if !ok {
			colType = "VARCHAR(128) NULL"
		}
		cols = append(cols, fmt.Sprintf("`%s` %s", h, colType))
	}
	cols = append(cols,
		fmt.Sprintf("PRIMARY KEY (`%s`)", rules.FieldCustomerID),
		fmt.Sprintf("UNIQUE KEY uq_account (`%s`)", rules.FieldAccountID),
	)

	stmt := fmt.Sprintf("CREATE TABLE IF NOT EXISTS customer_profiles (\n  %s\n)", strings.Join(cols, ",\n  "))
	if _, err := l.pool.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create customer_profiles: %w", err)
	}
	return nil
}

func (l *Loader) createTransactionTable(ctx context.Context) error {
	const stmt = `CREATE TABLE IF NOT EXISTS customer_transactions (
  Customer_Acc VARCHAR(32) NOT NULL,
  Transaction_ID VARCHAR(32) NOT NULL,
  Timestamp DATETIME NOT NULL,
  Amount DECIMAL(12,2) NOT NULL,
  Type VARCHAR(8) NOT NULL,
  Channel VARCHAR(64) NOT NULL,
  Counterparty_Name VARCHAR(128) NOT NULL,
  Counterparty_Account VARCHAR(32) NOT NULL,
  PRIMARY KEY (Transaction_ID),
  KEY idx_account (Customer_Acc),
  KEY idx_timestamp (Timestamp)
)`
	if _, err := l.pool.ExecContext(ctx, stmt); err != nil {
		return fmt.Errorf("failed to create customer_transactions: %w", err)
	}
	return nil
}

// profileLoadSQL builds LOAD DATA SQL for the header's column set.
// Nullable columns come in through user variables and convert the empty
// missing marker to SQL NULL.
func profileLoadSQL(headers []string) string {
	var cols []string
	var sets []string
	for _, h := range headers {
		if notNullColumns[h] {
			cols = append(cols, fmt.Sprintf("`%s`", h))
			continue
		}
		cols = append(cols, "@v_"+sanitizeIdent(h))
		sets = append(sets, fmt.Sprintf("`%s` = NULLIF(@v_%s, '')", h, sanitizeIdent(h)))
	}

	sql := `LOAD DATA LOCAL INFILE '%s'
INTO TABLE customer_profiles
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(` + strings.Join(cols, ", ") + `)`
	if len(sets) > 0 {
		sql += "\nSET\n    " + strings.Join(sets, ",\n    ")
	}
	return sql
}

const transactionLoadSQL = `LOAD DATA LOCAL INFILE '%s'
INTO TABLE customer_transactions
FIELDS TERMINATED BY ','
ENCLOSED BY '"'
LINES TERMINATED BY '\n'
IGNORE 1 LINES
(Customer_Acc, Transaction_ID, @ts, Amount, Type, Channel, Counterparty_Name, Counterparty_Account)
SET
    Timestamp = STR_TO_DATE(@ts, '%%Y-%%m-%%dT%%H:%%i:%%sZ')`

// loadFile registers the file with the driver and runs the LOAD DATA
// statement, returning the imported row count.
func (l *Loader) loadFile(ctx context.Context, path, loadSQL string) (int64, error) {
	absPath, err := filepath.Abs(path)
	if err != nil {
		return 0, fmt.Errorf("failed to get absolute path: %w", err)
	}

	mysql.RegisterLocalFile(absPath)
	defer mysql.DeregisterLocalFile(absPath)

	res, err := l.pool.ExecContext(ctx, fmt.Sprintf(loadSQL, absPath))
	if err != nil {
		return 0, fmt.Errorf("LOAD DATA failed for %s: %w", filepath.Base(path), err)
	}
	rows, _ := res.RowsAffected()
	return rows, nil
}

// materialize returns a plain CSV path for the given file, decompressing
// .csv.xz input to a temp file first. The cleanup func removes any temp.
func materialize(ctx context.Context, path string) (string, func(), error) {
	if !strings.HasSuffix(path, ".xz") {
		return path, func() {}, nil
	}

	tmpFile, err := os.CreateTemp("", "bankgen_load_*.csv")
	if err != nil {
		return "", nil, fmt.Errorf("failed to create temp file: %w", err)
	}
	tmpPath := tmpFile.Name()
	cleanup := func() { os.Remove(tmpPath) }

	xzCmd := exec.CommandContext(ctx, "xz", "-d", "-c", path)
	xzCmd.Stdout = tmpFile
	xzCmd.Stderr = os.Stderr
	if err := xzCmd.Run(); err != nil {
		tmpFile.Close()
		cleanup()
		return "", nil, fmt.Errorf("xz decompression failed: %w", err)
	}
	tmpFile.Close()

	return tmpPath, cleanup, nil
}

// readHeader reads the first row of a CSV file.
func readHeader(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open %s: %w", path, err)
	}
	defer f.Close()

	headers, err := csv.NewReader(f).Read()
	if err != nil {
		return nil, fmt.Errorf("failed to read CSV header from %s: %w", path, err)
	}
	return headers, nil
}

// sanitizeIdent makes a column name safe to use as a user variable.
func sanitizeIdent(name string) string {
	var sb strings.Builder
	for _, r := range name {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '_':
			sb.WriteRune(r)
		default:
			sb.WriteRune('_')
		}
	}
	return sb.String()
}

// DisableChecks relaxes integrity checks for bulk loading.
func (l *Loader) DisableChecks(ctx context.Context) error {
	for _, q := range []string{"SET FOREIGN_KEY_CHECKS = 0", "SET UNIQUE_CHECKS = 0"} {
		if _, err := l.pool.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}

// EnableChecks restores integrity checks after loading.
func (l *Loader) EnableChecks(ctx context.Context) error {
	for _, q := range []string{"SET UNIQUE_CHECKS = 1", "SET FOREIGN_KEY_CHECKS = 1"} {
		if _, err := l.pool.ExecContext(ctx, q); err != nil {
			return err
		}
	}
	return nil
}
