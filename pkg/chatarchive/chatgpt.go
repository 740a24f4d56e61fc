package chatarchive

import (
	"encoding/json"
	"strings"
)

// ChatGPT reads OpenAI chat export records: a flat object carrying a
// "mapping" tree of message nodes keyed by node id.
type ChatGPT struct{}

func (ChatGPT) Name() string { return "chatgpt" }

type chatgptRecord struct {
	ID             string                 `json:"id"`
	ConversationID string                 `json:"conversation_id"`
	Title          string                 `json:"title"`
	CreateTime     float64                `json:"create_time"`
	UpdateTime     float64                `json:"update_time"`
	CurrentNode    string                 `json:"current_node"`
	ModelSlug      string                 `json:"default_model_slug"`
	Mapping        map[string]chatgptNode `json:"mapping"`
}

type chatgptNode struct {
	ID       string          `json:"id"`
	Parent   string          `json:"parent"`
	Children []string        `json:"children"`
	Message  *chatgptMessage `json:"message"`
}

type chatgptMessage struct {
	Author struct {
		Role string `json:"role"`
	} `json:"author"`
	CreateTime float64 `json:"create_time"`
	Content    struct {
		ContentType string            `json:"content_type"`
		Parts       []json.RawMessage `json:"parts"`
		Text        string            `json:"text"`
	} `json:"content"`
}

func (ChatGPT) Detect(rec json.RawMessage) bool {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return false
	}
	if r.Mapping != nil {
		return true
	}
	return (r.ID != "" || r.ConversationID != "") && r.CreateTime != 0
}

func (ChatGPT) ID(rec json.RawMessage) string {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return ""
	}
	if r.ConversationID != "" {
		return r.ConversationID
	}
	return r.ID
}

func (ChatGPT) Title(rec json.RawMessage) string {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return ""
	}
	return r.Title
}

func (ChatGPT) CreateTime(rec json.RawMessage) int64 {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return 0
	}
	return int64(r.CreateTime)
}

func (ChatGPT) UpdateTime(rec json.RawMessage) int64 {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return 0
	}
	return int64(r.UpdateTime)
}

func (ChatGPT) Model(rec json.RawMessage) string {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil {
		return ""
	}
	return r.ModelSlug
}

// Messages walks the mapping tree into an ordered transcript. The export
// stores a tree (edited branches fork), so the active path is recovered by
// walking parents up from current_node; without a current_node the walk
// follows each node's last child from the root.
func (ChatGPT) Messages(rec json.RawMessage) []Message {
	var r chatgptRecord
	if err := json.Unmarshal(rec, &r); err != nil || len(r.Mapping) == 0 {
		return nil
	}

	ordered := chatgptPath(&r)

	var msgs []Message
	for _, id := range ordered {
		node := r.Mapping[id]
		if node.Message == nil {
			continue
		}
		text := chatgptText(node.Message)
		role := node.Message.Author.Role
		if text == "" || (role != "user" && role != "assistant") {
			continue
		}
		msgs = append(msgs, Message{
			Role: role,
			Text: text,
			Time: int64(node.Message.CreateTime * 1000),
		})
	}
	return msgs
}

// chatgptPath returns node ids root-first along the active branch.
func chatgptPath(r *chatgptRecord) []string {
	if r.CurrentNode != "" {
		if _, ok := r.Mapping[r.CurrentNode]; ok {
			var rev []string
			seen := make(map[string]bool, len(r.Mapping))
			for id := r.CurrentNode; id != "" && !seen[id]; {
				seen[id] = true
				rev = append(rev, id)
				id = r.Mapping[id].Parent
			}
			ordered := make([]string, 0, len(rev))
			for i := len(rev) - 1; i >= 0; i-- {
				ordered = append(ordered, rev[i])
			}
			return ordered
		}
	}

	// No usable current_node: start at the root and follow last children.
	root := ""
	for id, node := range r.Mapping {
		if node.Parent == "" {
			root = id
			break
		}
		if _, ok := r.Mapping[node.Parent]; !ok {
			root = id
		}
	}
	var ordered []string
	seen := make(map[string]bool, len(r.Mapping))
	for id := root; id != "" && !seen[id]; {
		seen[id] = true
		ordered = append(ordered, id)
		children := r.Mapping[id].Children
		if len(children) == 0 {
			break
		}
		id = children[len(children)-1]
	}
	return ordered
}

// chatgptText joins the string parts of a message. Non-string parts
// (image pointers and the like) are skipped.
func chatgptText(m *chatgptMessage) string {
	if m.Content.Text != "" {
		return strings.TrimSpace(m.Content.Text)
	}
	var b strings.Builder
	for _, part := range m.Content.Parts {
		var s string
		if err := json.Unmarshal(part, &s); err != nil {
			continue
		}
		if s == "" {
			continue
		}
		if b.Len() > 0 {
			b.WriteString("\n")
		}
		b.WriteString(s)
	}
	return strings.TrimSpace(b.String())
}
