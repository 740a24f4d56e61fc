package chatarchive

import (
	"bufio"
	"bytes"
	"encoding/json"
	"fmt"
	"os"
	"path"
	"strings"
)

// ConversationsEntry is the archive entry every export format centers on.
const ConversationsEntry = "conversations.json"

// FindConversationsEntry locates the conversations entry among archive entry
// names, matching the basename case-insensitively at any folder depth.
func FindConversationsEntry(names []string) (string, bool) {
	for _, name := range names {
		base := path.Base(strings.ReplaceAll(name, "\\", "/"))
		if strings.EqualFold(base, ConversationsEntry) {
			return name, true
		}
	}
	return "", false
}

// Normalize turns the raw bytes of a conversations entry into an ordered
// sequence of opaque records. Resolution order, first match wins:
//
//  1. A strict JSON array is the record sequence.
//  2. A JSON object with an array-valued "conversations" or "data" field
//     yields that array.
//  3. A JSON object with a "mapping" field and an "id" or "conversation_id"
//     is treated as a single-record sequence.
//  4. Anything else is reinterpreted as one JSON object per line; lines that
//     fail to parse are dropped silently.
//
// Returns an empty sequence when nothing parseable is found. Never repairs
// a partial record.
func Normalize(data []byte) []json.RawMessage {
	trimmed := bytes.TrimSpace(data)
	if len(trimmed) == 0 {
		return nil
	}

	if trimmed[0] == '[' {
		var arr []json.RawMessage
		if err := json.Unmarshal(trimmed, &arr); err == nil {
			return arr
		}
	}

	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err == nil {
		for _, key := range []string{"conversations", "data"} {
			raw, ok := obj[key]
			if !ok {
				continue
			}
			var inner []json.RawMessage
			if err := json.Unmarshal(raw, &inner); err == nil {
				return inner
			}
		}
		if _, ok := obj["mapping"]; ok {
			_, hasID := obj["id"]
			_, hasConvID := obj["conversation_id"]
			if hasID || hasConvID {
				return []json.RawMessage{json.RawMessage(trimmed)}
			}
		}
		return nil
	}

	return normalizeLines(trimmed)
}

// normalizeLines parses content as JSONL, one object per non-blank line.
func normalizeLines(data []byte) []json.RawMessage {
	var records []json.RawMessage

	scanner := bufio.NewScanner(bytes.NewReader(data))
	scanner.Buffer(make([]byte, 64*1024), 10*1024*1024)

	for scanner.Scan() {
		line := bytes.TrimSpace(scanner.Bytes())
		if len(line) == 0 || line[0] != '{' {
			continue
		}
		var probe map[string]json.RawMessage
		if err := json.Unmarshal(line, &probe); err != nil {
			continue
		}
		records = append(records, json.RawMessage(append([]byte(nil), line...)))
	}
	if err := scanner.Err(); err != nil {
		// An oversized line stops the scan; everything after it is lost.
		fmt.Fprintf(os.Stderr, "Warning: stopped reading lines after record %d: %v\n", len(records), err)
	}

	return records
}
