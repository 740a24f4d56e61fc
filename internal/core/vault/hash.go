package vault

import (
	"crypto/sha256"
	"encoding/hex"
	"strings"

	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// CanonicalHash digests a transcript for change detection. Only roles and
// whitespace-normalized text go into the hash: timestamps and other
// volatile fields are excluded, so two transcripts differing only in such
// fields hash identically.
func CanonicalHash(msgs []chatarchive.Message) string {
	h := sha256.New()
	for _, m := range msgs {
		h.Write([]byte(m.Role))
		h.Write([]byte{'\n'})
		h.Write([]byte(normalizeWhitespace(m.Text)))
		h.Write([]byte{0})
	}
	return hex.EncodeToString(h.Sum(nil))
}

// normalizeWhitespace collapses every whitespace run to a single space and
// trims the ends.
func normalizeWhitespace(s string) string {
	return strings.Join(strings.Fields(s), " ")
}
