package archive

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/JakeFAU/llmstxt-archiver/internal/fetcher"
)

// ProtocolEcho mirrors the effective fetch settings into the manifest so an
// archive is self-describing.
type ProtocolEcho struct {
	UserAgent      string `json:"user_agent"`
	TimeoutSeconds int    `json:"timeout_seconds"`
	RateLimitMs    int    `json:"rate_limit_ms"`
}

// Document is the on-disk manifest shape: the single persisted source of
// truth for archive state.
type Document struct {
	FetchedAt       string       `json:"fetched_at"`
	ArchiveProtocol ProtocolEcho `json:"archive_protocol"`
	Entries         []Entry      `json:"entries"`
}

// Manifest accumulates entries during a run and persists them atomically.
// Append-only, single writer.
type Manifest struct {
	path     string
	protocol ProtocolEcho
	entries  []Entry
}

// NewManifest creates an empty manifest bound to its destination path.
func NewManifest(path string, protocol ProtocolEcho) *Manifest {
	return &Manifest{path: path, protocol: protocol}
}

// Append records one entry. Entries are never edited after this.
func (m *Manifest) Append(e Entry) {
	m.entries = append(m.entries, e)
}

// Entries returns the recorded entries in run order.
func (m *Manifest) Entries() []Entry {
	return m.entries
}

// Len is the number of recorded entries.
func (m *Manifest) Len() int {
	return len(m.entries)
}

// Write persists the manifest durably: marshal to a temp file in the target
// directory, then rename over the destination.
func (m *Manifest) Write(fetchedAt string) error {
	doc := Document{
		FetchedAt:       fetchedAt,
		ArchiveProtocol: m.protocol,
		Entries:         m.entries,
	}
	if doc.Entries == nil {
		doc.Entries = []Entry{}
	}

	payload, err := json.MarshalIndent(doc, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal manifest: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(m.path), 0o750); err != nil {
		return fmt.Errorf("create manifest dir: %w", err)
	}
	tmpPath := m.path + ".tmp"
	if err := os.WriteFile(tmpPath, payload, 0o600); err != nil {
		return fmt.Errorf("write manifest temp file: %w", err)
	}
	if err := os.Rename(tmpPath, m.path); err != nil {
		return fmt.Errorf("replace manifest: %w", err)
	}
	return nil
}

// LoadDocument reads a manifest document from disk.
func LoadDocument(path string) (Document, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return Document{}, fmt.Errorf("read manifest: %w", err)
	}
	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return Document{}, fmt.Errorf("parse manifest: %w", err)
	}
	return doc, nil
}

// ResumeKey is the dedup key used for resume lookups.
func ResumeKey(url string, condition Condition) string {
	return url + "|" + string(condition)
}

// LoadResumeIndex reads a prior manifest and indexes its SUCCESS entries by
// (url, condition). A missing file yields an empty index; only those
// entries short-circuit refetching on resume.
func LoadResumeIndex(path string) (map[string]Entry, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]Entry{}, nil
		}
		return nil, fmt.Errorf("read prior manifest: %w", err)
	}

	var doc Document
	if err := json.Unmarshal(raw, &doc); err != nil {
		return nil, fmt.Errorf("parse prior manifest: %w", err)
	}

	index := make(map[string]Entry)
	for _, entry := range doc.Entries {
		if entry.FetchStatus == fetcher.StatusSuccess {
			index[ResumeKey(entry.URL, entry.Condition)] = entry
		}
	}
	return index, nil
}
