package chatarchive

import (
	"encoding/json"
	"testing"
)

func TestResolveUID_NativeID(t *testing.T) {
	rec := json.RawMessage(`{"conversation_id":"conv-42","title":"Hi","create_time":100}`)
	uid := ResolveUID(ChatGPT{}, rec, "export.zip")
	if uid != "conv-42" {
		t.Errorf("Expected native id conv-42, got %s", uid)
	}
}

func TestResolveUID_Deterministic(t *testing.T) {
	rec := json.RawMessage(`{
		"title": "No ID here",
		"create_time": 1700000000,
		"mapping": {
			"n1": {"id": "n1", "children": ["n2"]},
			"n2": {"id": "n2", "parent": "n1", "message": {"author": {"role": "user"}, "content": {"parts": ["hello world"]}}}
		}
	}`)

	first := ResolveUID(ChatGPT{}, rec, "export.zip")
	second := ResolveUID(ChatGPT{}, rec, "export.zip")
	if first == "" {
		t.Fatal("Expected a derived uid, got empty string")
	}
	if first != second {
		t.Errorf("Expected identical uids across calls, got %s and %s", first, second)
	}
}

func TestResolveUID_DifferentInputsDiffer(t *testing.T) {
	a := json.RawMessage(`{"title":"One","create_time":100,"mapping":{}}`)
	b := json.RawMessage(`{"title":"Two","create_time":100,"mapping":{}}`)

	if ResolveUID(ChatGPT{}, a, "x.zip") == ResolveUID(ChatGPT{}, b, "x.zip") {
		t.Error("Different titles should derive different uids")
	}
	if ResolveUID(ChatGPT{}, a, "x.zip") == ResolveUID(ChatGPT{}, a, "y.zip") {
		t.Error("Different source paths should derive different uids")
	}
}
