package vault

import (
	"fmt"
	"strings"
	"time"

	"github.com/cbroglie/mustache"

	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// DefaultFilenameTemplate names notes by update date, title, and a short
// uid so two conversations with the same title never collide.
const DefaultFilenameTemplate = "{{date}} - {{title}} ({{uid_short}}).md"

const maxSlugRunes = 60

// Slugify reduces a title to a filesystem-safe slug, length-limited.
func Slugify(title string) string {
	var b strings.Builder
	for _, r := range title {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9':
			b.WriteRune(r)
		case r == ' ', r == '-', r == '_', r == '.':
			b.WriteRune(r)
		default:
			b.WriteRune('-')
		}
	}
	slug := b.String()
	for strings.Contains(slug, "--") {
		slug = strings.ReplaceAll(slug, "--", "-")
	}
	slug = strings.Trim(slug, " -.")
	runes := []rune(slug)
	if len(runes) > maxSlugRunes {
		slug = strings.Trim(string(runes[:maxSlugRunes]), " -.")
	}
	if slug == "" {
		slug = "untitled"
	}
	return slug
}

// UIDShort returns the first 7 characters of a uid.
func UIDShort(uid string) string {
	if len(uid) > 7 {
		return uid[:7]
	}
	return uid
}

// RenderFilename applies the filename template to a conversation. The
// result is deterministic: same template and conversation, same name.
// Supported variables: {{date}}, {{created}}, {{title}}, {{uid}},
// {{uid_short}}, {{model}}.
func RenderFilename(template string, c chatarchive.Conversation) (string, error) {
	if template == "" {
		template = DefaultFilenameTemplate
	}

	vars := map[string]string{
		"date":      epochDate(c.UpdatedAt),
		"created":   epochDate(c.CreatedAt),
		"title":     Slugify(c.Title),
		"uid":       c.UID,
		"uid_short": UIDShort(c.UID),
		"model":     c.Model,
	}
	name, err := mustache.Render(template, vars)
	if err != nil {
		return "", fmt.Errorf("filename template: %w", err)
	}

	name = strings.TrimSpace(name)
	if name == "" || name == ".md" {
		return "", fmt.Errorf("filename template produced an empty name")
	}
	if !strings.HasSuffix(name, ".md") {
		name += ".md"
	}
	return name, nil
}

// SafeFallbackName is the retry filename used when a templated name is
// rejected by the filesystem.
func SafeFallbackName(uid string) string {
	return "chat-" + Slugify(UIDShort(uid)) + ".md"
}

func epochDate(ms int64) string {
	if ms == 0 {
		return "undated"
	}
	return time.UnixMilli(ms).UTC().Format("2006-01-02")
}
