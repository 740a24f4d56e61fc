package models

// Status is the display label for a conversation relative to vault state.
// It is an overlay for listings, not the plan action.
type Status string

const (
	StatusNew      Status = "new"
	StatusUpdated  Status = "updated"
	StatusImported Status = "imported"
	StatusIgnored  Status = "ignored"
)
