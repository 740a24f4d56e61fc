// Package selection tracks which conversations are included in the current
// import run. The selection is scoped to one session and is never persisted;
// only explicit exclusion-list mutations outlive it.
package selection

import (
	"sort"
	"strings"

	"golang.org/x/text/collate"
	"golang.org/x/text/language"

	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// SortField selects the column visible rows are ordered by.
type SortField string

const (
	SortUpdated SortField = "updated"
	SortCreated SortField = "created"
	SortTitle   SortField = "title"
)

// State is a mutable set of selected conversation uids over a fixed
// universe. Filter and sort affect only which rows are visible and in what
// order; membership changes only through the explicit set operations.
// Operations referencing unknown uids are no-ops; nothing here errors.
type State struct {
	order    []string // universe in archive order
	convs    map[string]chatarchive.Conversation
	selected map[string]bool

	filter    string
	sortField SortField
	sortAsc   bool
	collator  *collate.Collator
}

// New builds a selection over the given conversations with everything
// selected, sorted by update time, newest first.
func New(convs []chatarchive.Conversation) *State {
	s := &State{
		convs:     make(map[string]chatarchive.Conversation, len(convs)),
		selected:  make(map[string]bool, len(convs)),
		sortField: SortUpdated,
		collator:  collate.New(language.Und),
	}
	for _, c := range convs {
		s.order = append(s.order, c.UID)
		s.convs[c.UID] = c
		s.selected[c.UID] = true
	}
	return s
}

// ApplyExclusions removes globally-excluded uids from the selection. This
// runs once, right after the exclusion set is loaded; later SelectAll calls
// intentionally bypass it (user override).
func (s *State) ApplyExclusions(ignores map[string]bool) {
	for uid := range ignores {
		delete(s.selected, uid)
	}
}

// SetFilter narrows the visible rows to conversations whose title or
// sampled keywords contain the query, case-insensitively. It never touches
// the selection itself.
func (s *State) SetFilter(query string) {
	s.filter = strings.ToLower(strings.TrimSpace(query))
}

// SetSort orders the visible rows.
func (s *State) SetSort(field SortField, ascending bool) {
	s.sortField = field
	s.sortAsc = ascending
}

func (s *State) visibleMatch(uid string) bool {
	if s.filter == "" {
		return true
	}
	c := s.convs[uid]
	return strings.Contains(strings.ToLower(c.Title), s.filter) ||
		strings.Contains(strings.ToLower(c.Keywords), s.filter)
}

// Visible returns the filtered universe in the current sort order.
func (s *State) Visible() []string {
	var visible []string
	for _, uid := range s.order {
		if s.visibleMatch(uid) {
			visible = append(visible, uid)
		}
	}

	less := func(a, b chatarchive.Conversation) bool {
		switch s.sortField {
		case SortTitle:
			return s.collator.CompareString(a.Title, b.Title) < 0
		case SortCreated:
			return a.CreatedAt < b.CreatedAt
		default:
			return a.UpdatedAt < b.UpdatedAt
		}
	}
	sort.SliceStable(visible, func(i, j int) bool {
		a, b := s.convs[visible[i]], s.convs[visible[j]]
		if s.sortAsc {
			return less(a, b)
		}
		return less(b, a)
	})
	return visible
}

// Select adds a uid to the selection; unknown uids are ignored.
func (s *State) Select(uid string) {
	if _, ok := s.convs[uid]; ok {
		s.selected[uid] = true
	}
}

// Deselect removes a uid from the selection; unknown uids are ignored.
func (s *State) Deselect(uid string) {
	delete(s.selected, uid)
}

// Toggle flips a uid's membership; unknown uids are ignored.
func (s *State) Toggle(uid string) {
	if _, ok := s.convs[uid]; !ok {
		return
	}
	if s.selected[uid] {
		delete(s.selected, uid)
	} else {
		s.selected[uid] = true
	}
}

// Has reports whether a uid is selected.
func (s *State) Has(uid string) bool {
	return s.selected[uid]
}

// SelectVisible adds every currently-visible uid to the selection.
func (s *State) SelectVisible() {
	for _, uid := range s.Visible() {
		s.selected[uid] = true
	}
}

// ClearVisible removes every currently-visible uid from the selection.
func (s *State) ClearVisible() {
	for _, uid := range s.Visible() {
		delete(s.selected, uid)
	}
}

// SelectAll selects the entire universe regardless of filter. It does not
// re-apply exclusions: a global select-all is the user overriding them.
func (s *State) SelectAll() {
	for _, uid := range s.order {
		s.selected[uid] = true
	}
}

// ClearAll empties the selection regardless of filter.
func (s *State) ClearAll() {
	s.selected = make(map[string]bool, len(s.order))
}

// Selected returns the selected uids in universe order.
func (s *State) Selected() []string {
	var out []string
	for _, uid := range s.order {
		if s.selected[uid] {
			out = append(out, uid)
		}
	}
	return out
}

// Universe returns every known uid in archive order.
func (s *State) Universe() []string {
	return append([]string(nil), s.order...)
}

// Conversation returns the conversation for a uid.
func (s *State) Conversation(uid string) (chatarchive.Conversation, bool) {
	c, ok := s.convs[uid]
	return c, ok
}

// Counts returns how many uids are selected out of the universe.
func (s *State) Counts() (selected, total int) {
	return len(s.selected), len(s.order)
}
