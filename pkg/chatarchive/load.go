package chatarchive

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
)

// Keyword sampling: enough text for substring filtering without dragging
// whole transcripts around.
const (
	keywordSampleMessages = 3
	keywordSampleRunes    = 240
)

// Providers returns the built-in provider adapters.
func Providers() []Provider {
	return []Provider{ChatGPT{}, Claude{}}
}

// ProviderByName returns the built-in provider with the given name.
func ProviderByName(name string) (Provider, bool) {
	for _, p := range Providers() {
		if p.Name() == name {
			return p, true
		}
	}
	return nil, false
}

// DetectProvider samples records and picks the built-in provider that
// recognizes the most of them. Returns a StructuralError when no provider
// recognizes anything.
func DetectProvider(records []json.RawMessage) (Provider, error) {
	sample := records
	if len(sample) > 5 {
		sample = sample[:5]
	}

	var best Provider
	bestHits := 0
	for _, p := range Providers() {
		hits := 0
		for _, rec := range sample {
			if p.Detect(rec) {
				hits++
			}
		}
		if hits > bestHits {
			best, bestHits = p, hits
		}
	}
	if best == nil {
		return nil, &StructuralError{Reason: "unrecognized conversation format"}
	}
	return best, nil
}

// CheckProvider verifies that records plausibly belong to a user-forced
// provider. Returns a MismatchError when the forced provider recognizes
// nothing but another one does.
func CheckProvider(forced Provider, records []json.RawMessage) error {
	sample := records
	if len(sample) > 5 {
		sample = sample[:5]
	}
	for _, rec := range sample {
		if forced.Detect(rec) {
			return nil
		}
	}
	if len(sample) == 0 {
		return nil
	}
	detected := ""
	if p, err := DetectProvider(records); err == nil {
		detected = p.Name()
	}
	return &MismatchError{Forced: forced.Name(), Detected: detected}
}

// Load builds conversations from the bytes of a conversations entry.
// Malformed rows are dropped with a warning and the load continues. When
// two records resolve to the same UID the later one wins; exports have been
// seen to repeat a conversation, and the later copy is the newer snapshot.
func Load(data []byte, p Provider, sourceRef string) []Conversation {
	records := Normalize(data)

	convs := make([]Conversation, 0, len(records))
	index := make(map[string]int, len(records))
	for i, rec := range records {
		conv, err := buildConversation(p, rec, sourceRef)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Warning: %s record %d: %v\n", sourceRef, i+1, err)
			continue
		}
		if at, ok := index[conv.UID]; ok {
			convs[at] = conv
			continue
		}
		index[conv.UID] = len(convs)
		convs = append(convs, conv)
	}
	return convs
}

func buildConversation(p Provider, rec json.RawMessage, sourceRef string) (Conversation, error) {
	var probe map[string]json.RawMessage
	if err := json.Unmarshal(rec, &probe); err != nil {
		return Conversation{}, fmt.Errorf("not a JSON object: %w", err)
	}

	title := strings.TrimSpace(p.Title(rec))
	msgs := p.Messages(rec)
	if p.ID(rec) == "" && title == "" && len(msgs) == 0 {
		return Conversation{}, fmt.Errorf("no recognizable %s fields", p.Name())
	}
	if title == "" {
		title = "Untitled"
	}

	conv := Conversation{
		UID:       ResolveUID(p, rec, sourceRef),
		Provider:  p.Name(),
		Title:     title,
		CreatedAt: p.CreateTime(rec) * 1000,
		UpdatedAt: p.UpdateTime(rec) * 1000,
		Messages:  msgs,
		Keywords:  sampleKeywords(msgs),
		SourceRef: sourceRef,
	}
	if conv.UpdatedAt == 0 {
		conv.UpdatedAt = conv.CreatedAt
	}
	if m, ok := p.(ModelNamer); ok {
		conv.Model = m.Model(rec)
	}
	return conv, nil
}

// sampleKeywords collects a short slice of early message text for the
// keyword filter.
func sampleKeywords(msgs []Message) string {
	var b strings.Builder
	for i, m := range msgs {
		if i >= keywordSampleMessages {
			break
		}
		if b.Len() > 0 {
			b.WriteString(" ")
		}
		b.WriteString(m.Text)
	}
	runes := []rune(b.String())
	if len(runes) > keywordSampleRunes {
		runes = runes[:keywordSampleRunes]
	}
	return string(runes)
}
