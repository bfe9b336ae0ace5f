package generator

import (
	"fmt"
	"io"
	"os"
	"strings"
	"sync"
	"time"

	"golang.org/x/term"
)

// ProgressReporter tracks and displays progress for long-running phases.
// On a TTY it redraws in place with a bar and ETA; otherwise it prints
// plain rate lines.
type ProgressReporter struct {
	mu sync.Mutex

	output     io.Writer
	total      int64
	label      string
	updateFreq time.Duration
	isTTY      bool

	current   int64
	startTime time.Time
	lastPrint time.Time
	done      bool
}

// ProgressConfig holds settings for the progress reporter.
type ProgressConfig struct {
	// Total number of items to process (0 for indeterminate)
	Total int64
	// Label to display (e.g., "Generating profiles")
	Label string
	// Output writer (defaults to os.Stderr)
	Output io.Writer
	// Minimum time between updates (defaults to 100ms)
	UpdateFrequency time.Duration
}

// NewProgressReporter creates a new progress reporter.
func NewProgressReporter(cfg ProgressConfig) *ProgressReporter {
	output := cfg.Output
	if output == nil {
		output = os.Stderr
	}

	updateFreq := cfg.UpdateFrequency
	if updateFreq == 0 {
		updateFreq = 100 * time.Millisecond
	}

	isTTY := false
	if f, ok := output.(*os.File); ok {
		isTTY = term.IsTerminal(int(f.Fd()))
	}

	return &ProgressReporter{
		output:     output,
		total:      cfg.Total,
		label:      cfg.Label,
		updateFreq: updateFreq,
		isTTY:      isTTY,
		startTime:  time.Now(),
	}
}

// Add increments the progress by n items.
func (p *ProgressReporter) Add(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current += n
	p.maybeRender()
}

// Set sets the current progress to n items.
func (p *ProgressReporter) Set(n int64) {
	p.mu.Lock()
	defer p.mu.Unlock()

	p.current = n
	p.maybeRender()
}

// maybeRender renders progress if enough time has passed.
func (p *ProgressReporter) maybeRender() {
	now := time.Now()
	if now.Sub(p.lastPrint) < p.updateFreq {
		return
	}
	p.lastPrint = now
	p.render()
}

func (p *ProgressReporter) render() {
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	if elapsed.Seconds() < 0.01 {
		rate = 0
	}

	var sb strings.Builder
	if p.isTTY {
		sb.WriteString("\r")
	}
	if p.label != "" {
		sb.WriteString(p.label)
		sb.WriteString(": ")
	}

	if p.total > 0 {
		pct := float64(p.current) / float64(p.total) * 100
		sb.WriteString(fmt.Sprintf("%d/%d (%.1f%%)", p.current, p.total, pct))

		if p.isTTY {
			sb.WriteString(" ")
			barWidth := 20
			filled := int(float64(barWidth) * float64(p.current) / float64(p.total))
			if filled > barWidth {
				filled = barWidth
			}
			sb.WriteString("[")
			sb.WriteString(strings.Repeat("=", filled))
			if filled < barWidth {
				sb.WriteString(">")
				sb.WriteString(strings.Repeat(" ", barWidth-filled-1))
			}
			sb.WriteString("]")
		}

		if rate > 0 && p.current < p.total {
			remaining := float64(p.total-p.current) / rate
			eta := time.Duration(remaining * float64(time.Second))
			sb.WriteString(fmt.Sprintf(" ETA: %s", formatDuration(eta)))
		}
	} else {
		sb.WriteString(fmt.Sprintf("%d", p.current))
	}

	sb.WriteString(fmt.Sprintf(" (%.0f/s)", rate))

	if p.isTTY {
		sb.WriteString("\033[K")
	} else {
		sb.WriteString("\n")
	}

	fmt.Fprint(p.output, sb.String())
}

// Finish completes the progress and prints final stats.
func (p *ProgressReporter) Finish() {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.done {
		return
	}
	p.done = true

	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	if elapsed.Seconds() < 0.01 {
		rate = 0
	}

	var sb strings.Builder
	if p.isTTY {
		sb.WriteString("\r")
	}
	if p.label != "" {
		sb.WriteString(p.label)
		sb.WriteString(": ")
	}
	sb.WriteString(fmt.Sprintf("%d items in %s (%.0f/s)",
		p.current, formatDuration(elapsed), rate))
	if p.isTTY {
		sb.WriteString("\033[K")
	}
	sb.WriteString("\n")

	fmt.Fprint(p.output, sb.String())
}

// formatDuration formats a duration in a human-readable way.
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	if d < time.Hour {
		mins := int(d.Minutes())
		secs := int(d.Seconds()) % 60
		return fmt.Sprintf("%dm%ds", mins, secs)
	}
	hours := int(d.Hours())
	mins := int(d.Minutes()) % 60
	return fmt.Sprintf("%dh%dm", hours, mins)
}
