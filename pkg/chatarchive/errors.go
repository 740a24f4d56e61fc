package chatarchive

import "fmt"

// StructuralError means the archive is missing a required entry or nothing
// in it could be parsed as a conversations collection. It is fatal to the
// run; no writes are attempted after one.
type StructuralError struct {
	Path   string
	Reason string
}

func (e *StructuralError) Error() string {
	if e.Path != "" {
		return fmt.Sprintf("archive %s: %s", e.Path, e.Reason)
	}
	return e.Reason
}

// MismatchError means the archive content contradicts a provider the user
// forced. It is surfaced before any write.
type MismatchError struct {
	Forced   string
	Detected string
}

func (e *MismatchError) Error() string {
	if e.Detected != "" {
		return fmt.Sprintf("archive does not look like a %s export (detected %s)", e.Forced, e.Detected)
	}
	return fmt.Sprintf("archive does not look like a %s export", e.Forced)
}
