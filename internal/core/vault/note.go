package vault

import (
	"bytes"
	"fmt"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// NoteMeta is the frontmatter embedded in every generated note. The chat_*
// fields are the identity marker read back during the vault-scan fallback.
type NoteMeta struct {
	Nexus           string `yaml:"nexus"`
	Provider        string `yaml:"provider"`
	Title           string `yaml:"title"`
	Model           string `yaml:"model,omitempty"`
	ChatUID         string `yaml:"chat_uid"`
	ChatCreatedAt   string `yaml:"chat_created_at"`
	ChatUpdatedAt   int64  `yaml:"chat_updated_at"`
	ChatContentHash string `yaml:"chat_content_hash"`
	MessageCount    int    `yaml:"message_count"`
}

const noteMarker = "nexus-ai-chat-importer"

// RenderNote produces the full markdown document for a conversation.
func RenderNote(c chatarchive.Conversation) ([]byte, error) {
	meta := NoteMeta{
		Nexus:           noteMarker,
		Provider:        c.Provider,
		Title:           c.Title,
		Model:           c.Model,
		ChatUID:         c.UID,
		ChatCreatedAt:   epochRFC3339(c.CreatedAt),
		ChatUpdatedAt:   c.UpdatedAt,
		ChatContentHash: CanonicalHash(c.Messages),
		MessageCount:    len(c.Messages),
	}

	front, err := yaml.Marshal(&meta)
	if err != nil {
		return nil, fmt.Errorf("failed to marshal frontmatter: %w", err)
	}

	var b bytes.Buffer
	b.WriteString("---\n")
	b.Write(front)
	b.WriteString("---\n\n")
	b.WriteString("# ")
	b.WriteString(c.Title)
	b.WriteString("\n")

	for _, m := range c.Messages {
		b.WriteString("\n#### ")
		b.WriteString(roleHeading(m.Role))
		if m.Time > 0 {
			b.WriteString(" (")
			b.WriteString(time.UnixMilli(m.Time).UTC().Format("2006-01-02 15:04"))
			b.WriteString(")")
		}
		b.WriteString("\n\n")
		b.WriteString(m.Text)
		b.WriteString("\n")
	}

	return b.Bytes(), nil
}

// ParseNoteMeta extracts the frontmatter from a note, reporting ok=false
// when the document has none or it is not one of ours.
func ParseNoteMeta(content []byte) (NoteMeta, bool) {
	var meta NoteMeta

	if !bytes.HasPrefix(content, []byte("---\n")) {
		return meta, false
	}
	rest := content[4:]
	end := bytes.Index(rest, []byte("\n---"))
	if end < 0 {
		return meta, false
	}
	if err := yaml.Unmarshal(rest[:end+1], &meta); err != nil {
		return meta, false
	}
	if meta.ChatUID == "" {
		return meta, false
	}
	return meta, true
}

func roleHeading(role string) string {
	switch role {
	case "user":
		return "User"
	case "assistant":
		return "Assistant"
	}
	if role == "" {
		return "Message"
	}
	return strings.ToUpper(role[:1]) + role[1:]
}

func epochRFC3339(ms int64) string {
	if ms == 0 {
		return ""
	}
	return time.UnixMilli(ms).UTC().Format(time.RFC3339)
}
