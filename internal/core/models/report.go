package models

import "time"

// ReportItem is the outcome of one plan item.
type ReportItem struct {
	UID     string
	Action  Action
	Path    string
	Written bool
	Err     string
}

// Report summarizes one executor run.
type Report struct {
	RunID       string
	ArchivePath string
	Provider    string
	StartedAt   time.Time
	FinishedAt  time.Time
	Cancelled   bool
	Items       []ReportItem
}

// Counts tallies outcomes across the report.
func (r *Report) Counts() (written, skipped, failed int) {
	for _, item := range r.Items {
		switch {
		case item.Err != "":
			failed++
		case item.Written:
			written++
		default:
			skipped++
		}
	}
	return written, skipped, failed
}

// Failed returns the items that ended in an error.
func (r *Report) Failed() []ReportItem {
	var out []ReportItem
	for _, item := range r.Items {
		if item.Err != "" {
			out = append(out, item)
		}
	}
	return out
}
