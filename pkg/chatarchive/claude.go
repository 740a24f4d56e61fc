package chatarchive

import (
	"encoding/json"
	"strings"
	"time"
)

// Claude reads Anthropic chat export records: a flat object with a uuid,
// RFC3339 timestamps, and a chat_messages array.
type Claude struct{}

func (Claude) Name() string { return "claude" }

type claudeRecord struct {
	UUID         string          `json:"uuid"`
	Name         string          `json:"name"`
	Summary      string          `json:"summary"`
	CreatedAt    string          `json:"created_at"`
	UpdatedAt    string          `json:"updated_at"`
	ChatMessages []claudeMessage `json:"chat_messages"`
}

type claudeMessage struct {
	UUID      string `json:"uuid"`
	Sender    string `json:"sender"`
	Text      string `json:"text"`
	CreatedAt string `json:"created_at"`
}

func (Claude) Detect(rec json.RawMessage) bool {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return false
	}
	return r.UUID != "" && r.ChatMessages != nil
}

func (Claude) ID(rec json.RawMessage) string {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return ""
	}
	return r.UUID
}

func (Claude) Title(rec json.RawMessage) string {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return ""
	}
	if r.Name != "" {
		return r.Name
	}
	return r.Summary
}

func (Claude) CreateTime(rec json.RawMessage) int64 {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return 0
	}
	return claudeEpoch(r.CreatedAt)
}

func (Claude) UpdateTime(rec json.RawMessage) int64 {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return 0
	}
	return claudeEpoch(r.UpdatedAt)
}

func (Claude) Messages(rec json.RawMessage) []Message {
	var r claudeRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return nil
	}
	msgs := make([]Message, 0, len(r.ChatMessages))
	for _, m := range r.ChatMessages {
		text := strings.TrimSpace(m.Text)
		if text == "" {
			continue
		}
		role := m.Sender
		if role == "human" {
			role = "user"
		}
		msgs = append(msgs, Message{
			Role: role,
			Text: text,
			Time: claudeEpoch(m.CreatedAt) * 1000,
		})
	}
	return msgs
}

// claudeEpoch parses an RFC3339 timestamp into epoch seconds, 0 on failure.
func claudeEpoch(s string) int64 {
	if s == "" {
		return 0
	}
	t, err := time.Parse(time.RFC3339, s)
	if err != nil {
		return 0
	}
	return t.Unix()
}
