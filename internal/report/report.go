// Package report collects named attachments, such as step screenshots,
// produced while a scenario runs.
package report

import (
	"encoding/json"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"regexp"
	"strings"
	"sync"
	"time"
)

// Sink accepts named byte buffers
type Sink interface {
	Attach(name, contentType string, data []byte) error
}

// Discard is a Sink that drops every attachment
var Discard Sink = discard{}

type discard struct{}

func (discard) Attach(string, string, []byte) error { return nil }

// Entry describes one attachment written by a DirSink
type Entry struct {
	Seq         int       `json:"seq"`
	Name        string    `json:"name"`
	File        string    `json:"file"`
	ContentType string    `json:"content_type"`
	Size        int       `json:"size"`
	Empty       bool      `json:"empty,omitempty"`
	AttachedAt  time.Time `json:"attached_at"`
}

// IndexFile is the manifest a DirSink keeps next to its attachments
const IndexFile = "index.json"

var unsafeChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

// DirSink writes attachments to numbered files in a directory and keeps an
// index.json manifest of them in attachment order.
type DirSink struct {
	dir string
	now func() time.Time

	mu      sync.Mutex
	entries []Entry
}

// NewDirSink creates dir if needed and returns a sink writing into it
func NewDirSink(dir string) (*DirSink, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create attachment directory: %w", err)
	}
	return &DirSink{dir: dir, now: time.Now}, nil
}

// Dir returns the output directory
func (s *DirSink) Dir() string {
	return s.dir
}

// Attach writes data to <NN>_<name><ext> and records it in the index. An
// empty buffer is still recorded, marked empty, so a failed capture stays
// visible in the report.
func (s *DirSink) Attach(name, contentType string, data []byte) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	seq := len(s.entries) + 1
	file := fmt.Sprintf("%02d_%s%s", seq, sanitize(name), extension(contentType))
	if err := os.WriteFile(filepath.Join(s.dir, file), data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment %s: %w", name, err)
	}

	s.entries = append(s.entries, Entry{
		Seq:         seq,
		Name:        name,
		File:        file,
		ContentType: contentType,
		Size:        len(data),
		Empty:       len(data) == 0,
		AttachedAt:  s.now(),
	})
	return s.writeIndex()
}

// Entries returns a copy of the recorded attachments
func (s *DirSink) Entries() []Entry {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]Entry(nil), s.entries...)
}

func (s *DirSink) writeIndex() error {
	data, err := json.MarshalIndent(s.entries, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to encode attachment index: %w", err)
	}
	if err := os.WriteFile(filepath.Join(s.dir, IndexFile), data, 0o644); err != nil {
		return fmt.Errorf("failed to write attachment index: %w", err)
	}
	return nil
}

// ReadIndex loads the manifest of a DirSink directory
func ReadIndex(dir string) ([]Entry, error) {
	data, err := os.ReadFile(filepath.Join(dir, IndexFile))
	if err != nil {
		return nil, fmt.Errorf("failed to read attachment index: %w", err)
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("failed to decode attachment index: %w", err)
	}
	return entries, nil
}

func sanitize(name string) string {
	name = strings.Trim(unsafeChars.ReplaceAllString(name, "_"), "_")
	if name == "" {
		return "attachment"
	}
	return name
}

func extension(contentType string) string {
	switch contentType {
	case "image/png":
		return ".png"
	case "text/plain":
		return ".txt"
	}
	if exts, err := mime.ExtensionsByType(contentType); err == nil && len(exts) > 0 {
		return exts[0]
	}
	return ".bin"
}
