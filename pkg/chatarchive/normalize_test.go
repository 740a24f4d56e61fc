package chatarchive

import (
	"strings"
	"testing"
)

func TestNormalize_Array(t *testing.T) {
	data := []byte(`[{"id":"a"},{"id":"b"}]`)
	records := Normalize(data)
	if len(records) != 2 {
		t.Fatalf("Expected 2 records, got %d", len(records))
	}
}

func TestNormalize_WrappedConversations(t *testing.T) {
	data := []byte(`{"conversations":[{"id":"a"}],"meta":"x"}`)
	records := Normalize(data)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}
}

func TestNormalize_WrappedData(t *testing.T) {
	data := []byte(`{"data":[{"id":"a"},{"id":"b"},{"id":"c"}]}`)
	records := Normalize(data)
	if len(records) != 3 {
		t.Fatalf("Expected 3 records, got %d", len(records))
	}
}

func TestNormalize_SingleObjectFallback(t *testing.T) {
	// A bare ChatGPT conversation object: mapping plus an id.
	data := []byte(`{"id":"conv-1","mapping":{},"title":"solo"}`)
	records := Normalize(data)
	if len(records) != 1 {
		t.Fatalf("Expected 1 record, got %d", len(records))
	}

	// mapping without any id is not a conversation.
	data = []byte(`{"mapping":{},"title":"nope"}`)
	if records := Normalize(data); len(records) != 0 {
		t.Errorf("Expected no records without id, got %d", len(records))
	}
}

func TestNormalize_JSONLFallback(t *testing.T) {
	data := []byte(`{"id":"a","title":"one"}
not json at all
{"id":"b","title":"two"}

{"broken":
{"id":"c"}`)
	records := Normalize(data)
	if len(records) != 3 {
		t.Fatalf("Expected 3 records (bad lines dropped), got %d", len(records))
	}
}

func TestNormalize_JSONLOversizedLine(t *testing.T) {
	var b strings.Builder
	b.WriteString(`{"id":"a"}` + "\n")
	b.WriteString(`{"id":"big","text":"` + strings.Repeat("x", 11*1024*1024) + `"}` + "\n")
	b.WriteString(`{"id":"c"}` + "\n")

	// The oversized line stops the scan; records before it survive and the
	// call must not panic or error.
	records := Normalize([]byte(b.String()))
	if len(records) != 1 {
		t.Fatalf("Expected 1 record before the oversized line, got %d", len(records))
	}
}

func TestNormalize_Empty(t *testing.T) {
	cases := [][]byte{nil, []byte(""), []byte("   \n\t"), []byte(`"just a string"`), []byte(`{"other":"object"}`)}
	for _, data := range cases {
		if records := Normalize(data); len(records) != 0 {
			t.Errorf("Normalize(%q): expected no records, got %d", data, len(records))
		}
	}
}

func TestFindConversationsEntry(t *testing.T) {
	tests := []struct {
		name  string
		names []string
		want  string
		found bool
	}{
		{"top level", []string{"chat.html", "conversations.json"}, "conversations.json", true},
		{"nested", []string{"export/2024/conversations.json"}, "export/2024/conversations.json", true},
		{"case insensitive", []string{"Conversations.JSON"}, "Conversations.JSON", true},
		{"backslash paths", []string{`export\conversations.json`}, `export\conversations.json`, true},
		{"absent", []string{"messages.json", "user.json"}, "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, found := FindConversationsEntry(tt.names)
			if found != tt.found || got != tt.want {
				t.Errorf("FindConversationsEntry() = (%q, %v), want (%q, %v)", got, found, tt.want, tt.found)
			}
		})
	}
}
