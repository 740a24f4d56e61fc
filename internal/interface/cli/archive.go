package cli

import (
	"archive/zip"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/woodae99/nexus-ai-chat-importer/pkg/chatarchive"
)

// archiveLoad is everything the commands need from one opened archive.
type archiveLoad struct {
	source   string
	provider chatarchive.Provider
	convs    []chatarchive.Conversation
	byUID    map[string]chatarchive.Conversation
}

// loadArchive opens an export source (zip, extracted directory, or a bare
// conversations file), picks the provider, and builds the conversation
// list. The parsing layer never sees the container; it only gets bytes.
func loadArchive(source, forcedProvider string) (*archiveLoad, error) {
	data, err := readConversations(source)
	if err != nil {
		return nil, err
	}

	records := chatarchive.Normalize(data)
	if len(records) == 0 {
		return nil, &chatarchive.StructuralError{Path: source, Reason: "no parseable conversations found"}
	}

	var provider chatarchive.Provider
	if forcedProvider != "" {
		p, ok := chatarchive.ProviderByName(forcedProvider)
		if !ok {
			return nil, fmt.Errorf("unknown provider %q (expected chatgpt or claude)", forcedProvider)
		}
		if err := chatarchive.CheckProvider(p, records); err != nil {
			return nil, err
		}
		provider = p
	} else {
		p, err := chatarchive.DetectProvider(records)
		if err != nil {
			return nil, err
		}
		provider = p
	}

	convs := chatarchive.Load(data, provider, source)
	byUID := make(map[string]chatarchive.Conversation, len(convs))
	for _, c := range convs {
		byUID[c.UID] = c
	}

	return &archiveLoad{
		source:   source,
		provider: provider,
		convs:    convs,
		byUID:    byUID,
	}, nil
}

// readConversations returns the bytes of the conversations entry.
func readConversations(source string) ([]byte, error) {
	info, err := os.Stat(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open archive: %w", err)
	}

	if info.IsDir() {
		return readConversationsDir(source)
	}
	if strings.EqualFold(filepath.Ext(source), ".zip") {
		return readConversationsZip(source)
	}

	// A bare conversations.json (or JSONL) file.
	data, err := os.ReadFile(source)
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", source, err)
	}
	return data, nil
}

func readConversationsZip(source string) ([]byte, error) {
	r, err := zip.OpenReader(source)
	if err != nil {
		return nil, fmt.Errorf("failed to open zip: %w", err)
	}
	defer func() { _ = r.Close() }()

	names := make([]string, 0, len(r.File))
	for _, f := range r.File {
		names = append(names, f.Name)
	}
	entry, ok := chatarchive.FindConversationsEntry(names)
	if !ok {
		return nil, &chatarchive.StructuralError{Path: source, Reason: "missing conversations.json entry"}
	}

	for _, f := range r.File {
		if f.Name != entry {
			continue
		}
		rc, err := f.Open()
		if err != nil {
			return nil, fmt.Errorf("failed to open %s: %w", entry, err)
		}
		defer func() { _ = rc.Close() }()
		return io.ReadAll(rc)
	}
	return nil, &chatarchive.StructuralError{Path: source, Reason: "missing conversations.json entry"}
}

func readConversationsDir(source string) ([]byte, error) {
	var names []string
	err := filepath.WalkDir(source, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if !d.IsDir() {
			rel, rerr := filepath.Rel(source, path)
			if rerr != nil {
				rel = path
			}
			names = append(names, filepath.ToSlash(rel))
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("failed to walk %s: %w", source, err)
	}

	entry, ok := chatarchive.FindConversationsEntry(names)
	if !ok {
		return nil, &chatarchive.StructuralError{Path: source, Reason: "missing conversations.json entry"}
	}
	data, err := os.ReadFile(filepath.Join(source, filepath.FromSlash(entry)))
	if err != nil {
		return nil, fmt.Errorf("failed to read %s: %w", entry, err)
	}
	return data, nil
}
