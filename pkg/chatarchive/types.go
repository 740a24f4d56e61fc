// Package chatarchive parses conversational-AI export archives into
// provider-agnostic conversation records. It is a pure transform layer:
// callers hand it the bytes of a conversations entry and get back ordered
// conversations with stable identifiers; nothing here touches disk.
package chatarchive

import "encoding/json"

// Conversation is a provider-agnostic view of one exported chat.
type Conversation struct {
	UID       string
	Provider  string
	Title     string
	Model     string
	CreatedAt int64 // epoch milliseconds
	UpdatedAt int64 // epoch milliseconds
	Messages  []Message
	Keywords  string // sampled text for keyword filtering
	SourceRef string // archive path or entry name this record came from
}

// Message is a single transcript entry.
type Message struct {
	Role string
	Text string
	Time int64 // epoch milliseconds, 0 when the export omits it
}

// Provider reads provider-specific fields out of a raw export record.
type Provider interface {
	Name() string
	// Detect reports whether the record looks like this provider's format.
	Detect(rec json.RawMessage) bool
	// ID returns the native conversation id, or "" when the export has none.
	ID(rec json.RawMessage) string
	Title(rec json.RawMessage) string
	// CreateTime and UpdateTime return epoch seconds, 0 when absent.
	CreateTime(rec json.RawMessage) int64
	UpdateTime(rec json.RawMessage) int64
	Messages(rec json.RawMessage) []Message
}

// ModelNamer is implemented by providers whose exports record which model
// the conversation ran against.
type ModelNamer interface {
	Model(rec json.RawMessage) string
}
