package importer

import (
	"fmt"
	"io"
	"strings"
	"time"
)

// Phase identifies where in the run a progress event was emitted.
type Phase string

const (
	PhaseScan      Phase = "scan"
	PhaseProcess   Phase = "process"
	PhaseWrite     Phase = "write"
	PhaseComplete  Phase = "complete"
	PhaseCancelled Phase = "cancelled"
	PhaseError     Phase = "error"
)

// Event is one progress notification. Events arrive in strict order: one
// scan, then a process (and for writes, a write) per item, then a single
// terminal complete, cancelled, or error.
type Event struct {
	Phase Phase
	UID   string
	Title string
	Done  int
	Total int
	Err   string
}

// Progress receives events from a running executor.
type Progress interface {
	OnEvent(Event)
}

// ProgressReporter draws a progress bar on a writer as events arrive.
type ProgressReporter struct {
	writer    io.Writer
	total     int
	current   int
	startTime time.Time
}

// NewProgressReporter creates a new progress reporter
func NewProgressReporter(w io.Writer, total int) *ProgressReporter {
	return &ProgressReporter{
		writer:    w,
		total:     total,
		startTime: time.Now(),
	}
}

// OnEvent updates the progress display.
func (p *ProgressReporter) OnEvent(ev Event) {
	switch ev.Phase {
	case PhaseScan:
		if ev.Total > 0 {
			p.total = ev.Total
		}
	case PhaseProcess:
		p.current++
		p.draw(ev.Title)
	case PhaseWrite:
		if ev.Err != "" {
			_, _ = fmt.Fprintf(p.writer, "\nWarning: %s: %s\n", ev.UID, ev.Err)
		}
	case PhaseComplete:
		elapsed := time.Since(p.startTime)
		_, _ = fmt.Fprintf(p.writer, "\nCompleted: processed %d conversations in %s\n",
			ev.Done, elapsed.Round(time.Millisecond))
	case PhaseCancelled:
		_, _ = fmt.Fprintf(p.writer, "\nCancelled after %d of %d conversations\n", ev.Done, ev.Total)
	case PhaseError:
		_, _ = fmt.Fprintf(p.writer, "\nError: %s\n", ev.Err)
	}
}

func (p *ProgressReporter) draw(title string) {
	if p.total == 0 {
		return
	}

	pct := float64(p.current) / float64(p.total) * 100

	// Draw progress bar (50 chars wide)
	barWidth := 50
	filled := int(float64(barWidth) * float64(p.current) / float64(p.total))
	if filled > barWidth {
		filled = barWidth
	}
	bar := strings.Repeat("█", filled) + strings.Repeat("░", barWidth-filled)

	displayText := title
	if len(displayText) > 60 {
		displayText = displayText[:57] + "..."
	}

	// Calculate ETA
	elapsed := time.Since(p.startTime)
	rate := float64(p.current) / elapsed.Seconds()
	remaining := float64(p.total-p.current) / rate
	eta := time.Duration(remaining) * time.Second

	_, _ = fmt.Fprintf(p.writer, "\r[%s] %3.0f%% (%d/%d) ETA: %s | %s",
		bar, pct, p.current, p.total, eta.Round(time.Second), displayText)
}
