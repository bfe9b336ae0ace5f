package generator

import (
	"fmt"
	"io"
	"os"
	"os/exec"
	"path/filepath"
)

// XZWriter pipes writes through an external xz process into a .csv.xz
// file. Compression happens concurrently with generation, so it does not
// slow the producing goroutines down.
type XZWriter struct {
	cmd    *exec.Cmd
	stdin  io.WriteCloser
	file   *os.File
	path   string
	waitCh chan error
	closed bool
}

// NewXZWriter starts an xz subprocess writing to <dir>/<filename>.csv.xz.
func NewXZWriter(dir, filename string) (*XZWriter, error) {
	path := filepath.Join(dir, filename+".csv.xz")

	file, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("failed to create file %s: %w", path, err)
	}

	// -6 matches the xz default; -T0 uses all cores.
	cmd := exec.Command("xz", "-6", "-T0", "-c")
	cmd.Stdout = file
	cmd.Stderr = os.Stderr

	stdin, err := cmd.StdinPipe()
	if err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to create stdin pipe: %w", err)
	}

	if err := cmd.Start(); err != nil {
		file.Close()
		os.Remove(path)
		return nil, fmt.Errorf("failed to start xz (is it installed?): %w", err)
	}

	w := &XZWriter{
		cmd:    cmd,
		stdin:  stdin,
		file:   file,
		path:   path,
		waitCh: make(chan error, 1),
	}

	go func() {
		w.waitCh <- cmd.Wait()
	}()

	return w, nil
}

// Write sends data to the compressor.
func (w *XZWriter) Write(p []byte) (int, error) {
	if w.closed {
		return 0, fmt.Errorf("writer is closed")
	}
	return w.stdin.Write(p)
}

// Close finishes the stream: closes the pipe, waits for xz to drain, then
// closes the output file. Safe to call twice.
func (w *XZWriter) Close() error {
	if w.closed {
		return nil
	}
	w.closed = true

	if err := w.stdin.Close(); err != nil {
		w.file.Close()
		return fmt.Errorf("failed to close xz stdin: %w", err)
	}

	waitErr := <-w.waitCh
	closeErr := w.file.Close()

	if waitErr != nil {
		return fmt.Errorf("xz process failed: %w", waitErr)
	}
	return closeErr
}

// Path returns the output file path.
func (w *XZWriter) Path() string {
	return w.path
}

// CheckXZAvailable reports whether the xz binary is on PATH. Callers should
// check before enabling compression so the failure is a clear message
// rather than a mid-run pipe error.
func CheckXZAvailable() error {
	if _, err := exec.LookPath("xz"); err != nil {
		return fmt.Errorf("xz binary not found in PATH (install xz-utils to enable compression)")
	}
	return nil
}
