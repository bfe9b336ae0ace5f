package generator

import (
	"bufio"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"sync"
	"time"
)

// CSVWriter streams rows to a CSV file with buffered I/O, optionally piped
// through xz. Rows are written immediately, so memory stays flat however
// large the output.
type CSVWriter struct {
	file       *os.File // uncompressed output
	xzWriter   *XZWriter
	buffer     *bufio.Writer
	writer     *csv.Writer
	mu         sync.Mutex
	rowCount   int64
	closed     bool
	compressed bool
}

// CSVWriterConfig holds settings for creating a CSV writer.
type CSVWriterConfig struct {
	OutputDir string
	// Filename without extension, e.g. "CUSTOMER_PROFILE_20250924"
	Filename string
	Headers  []string
	// Enable xz compression (creates .csv.xz)
	Compress bool
}

// NewCSVWriter creates the output file and writes the header row.
func NewCSVWriter(cfg CSVWriterConfig) (*CSVWriter, error) {
	if err := os.MkdirAll(cfg.OutputDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create output directory: %w", err)
	}

	var underlying io.Writer
	var file *os.File
	var xzWriter *XZWriter

	if cfg.Compress {
		var err error
		xzWriter, err = NewXZWriter(cfg.OutputDir, cfg.Filename)
		if err != nil {
			return nil, fmt.Errorf("failed to create xz writer: %w", err)
		}
		underlying = xzWriter
	} else {
		path := filepath.Join(cfg.OutputDir, cfg.Filename+".csv")
		var err error
		file, err = os.Create(path)
		if err != nil {
			return nil, fmt.Errorf("failed to create file %s: %w", path, err)
		}
		underlying = file
	}

	buffer := bufio.NewWriterSize(underlying, 64*1024)
	writer := csv.NewWriter(buffer)

	cw := &CSVWriter{
		file:       file,
		xzWriter:   xzWriter,
		buffer:     buffer,
		writer:     writer,
		compressed: cfg.Compress,
	}

	if len(cfg.Headers) > 0 {
		if err := writer.Write(cfg.Headers); err != nil {
			cw.closeUnderlying()
			return nil, fmt.Errorf("failed to write headers: %w", err)
		}
	}

	return cw, nil
}

// WriteRow appends a single data row. Thread-safe.
func (w *CSVWriter) WriteRow(row []string) error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return fmt.Errorf("writer is closed")
	}
	if err := w.writer.Write(row); err != nil {
		return fmt.Errorf("failed to write row: %w", err)
	}
	w.rowCount++
	return nil
}

// Close flushes remaining data and closes the file. Safe to call twice.
func (w *CSVWriter) Close() error {
	w.mu.Lock()
	defer w.mu.Unlock()

	if w.closed {
		return nil
	}
	w.closed = true

	w.writer.Flush()
	if err := w.writer.Error(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("csv flush error: %w", err)
	}
	if err := w.buffer.Flush(); err != nil {
		w.closeUnderlying()
		return fmt.Errorf("buffer flush error: %w", err)
	}
	return w.closeUnderlying()
}

func (w *CSVWriter) closeUnderlying() error {
	if w.compressed {
		return w.xzWriter.Close()
	}
	return w.file.Close()
}

// RowCount returns the number of data rows written (excludes header).
func (w *CSVWriter) RowCount() int64 {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.rowCount
}

// Path returns the full path of the output file (.csv or .csv.xz).
func (w *CSVWriter) Path() string {
	if w.compressed {
		return w.xzWriter.Path()
	}
	return w.file.Name()
}

// FormatInt formats an int for CSV.
func FormatInt(n int) string {
	return strconv.Itoa(n)
}

// FormatInt64 formats an int64 for CSV.
func FormatInt64(n int64) string {
	return strconv.FormatInt(n, 10)
}

// FormatTimestamp renders a UTC timestamp the way the downstream pipeline
// expects it: second resolution, Zulu suffix.
func FormatTimestamp(t time.Time) string {
	return t.UTC().Format("2006-01-02T15:04:05Z")
}
