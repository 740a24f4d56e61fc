package chatarchive

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"
)

// ResolveUID derives the stable identifier for a record. The provider's
// native id wins. Without one the UID is a deterministic digest over the
// source path, creation time, title, and a hash of the first message's
// content, so re-importing the same archive recognizes the conversation
// even when the export carries no id.
func ResolveUID(p Provider, rec []byte, sourceRef string) string {
	if id := strings.TrimSpace(p.ID(rec)); id != "" {
		return id
	}

	first := ""
	if msgs := p.Messages(rec); len(msgs) > 0 {
		first = msgs[0].Text
	}
	firstSum := sha256.Sum256([]byte(first))

	h := sha256.New()
	fmt.Fprintf(h, "%s|%d|%s|%s",
		sourceRef,
		p.CreateTime(rec),
		p.Title(rec),
		hex.EncodeToString(firstSum[:]),
	)
	return hex.EncodeToString(h.Sum(nil))[:32]
}
