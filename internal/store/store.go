// Package store resolves symbol locators to editable body text and persists
// rewritten bodies. The engine never touches storage; it consumes a Symbol's
// text and hands back a new text for the store to place.
package store

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
)

// Symbol is one resolved editable unit: the locator it came from and its
// current body text. Placement data stays inside the owning store.
type Symbol struct {
	Locator string
	Text    string

	path       string
	start, end int // byte range within the file; whole file when end == -1
}

// SymbolStore resolves logical locations to body text and persists rewrites.
type SymbolStore interface {
	Resolve(locator string) (Symbol, error)
	Persist(sym Symbol, newText string) error
}

// Resolver maps a named construct within file content to its byte range.
// It is the plug-in point for an external symbol-location service; this
// package does not understand any language grammar itself.
type Resolver func(path, name, content string) (start, end int, err error)

// FileStore resolves locators of the form "path" (whole file body) or
// "path#name" (delegated to Resolver). Persist is atomic: temp file in the
// same directory, then rename, preserving the original mode.
type FileStore struct {
	Root     string
	Resolver Resolver
}

func NewFileStore(root string) *FileStore {
	return &FileStore{Root: root}
}

func (s *FileStore) Resolve(locator string) (Symbol, error) {
	path, name, _ := strings.Cut(locator, "#")
	if path == "" {
		return Symbol{}, fmt.Errorf("empty path in locator %q", locator)
	}
	fullPath := path
	if !filepath.IsAbs(fullPath) {
		fullPath = filepath.Join(s.Root, path)
	}

	data, err := os.ReadFile(fullPath)
	if err != nil {
		return Symbol{}, fmt.Errorf("resolve %q: %w", locator, err)
	}
	content := string(data)

	if name == "" {
		return Symbol{Locator: locator, Text: content, path: fullPath, start: 0, end: -1}, nil
	}

	if s.Resolver == nil {
		return Symbol{}, fmt.Errorf("resolve %q: no symbol resolver configured for #-locators", locator)
	}
	start, end, err := s.Resolver(fullPath, name, content)
	if err != nil {
		return Symbol{}, fmt.Errorf("resolve %q: %w", locator, err)
	}
	if start < 0 || end > len(content) || start > end {
		return Symbol{}, fmt.Errorf("resolve %q: resolver returned range [%d, %d) outside file of %d bytes",
			locator, start, end, len(content))
	}
	return Symbol{Locator: locator, Text: content[start:end], path: fullPath, start: start, end: end}, nil
}

func (s *FileStore) Persist(sym Symbol, newText string) error {
	if sym.path == "" {
		return fmt.Errorf("persist %q: symbol was not resolved by this store", sym.Locator)
	}

	content := newText
	if sym.end != -1 {
		// Ranged symbol: splice the new body into the current file content.
		data, err := os.ReadFile(sym.path)
		if err != nil {
			return fmt.Errorf("persist %q: %w", sym.Locator, err)
		}
		current := string(data)
		if sym.end > len(current) {
			return fmt.Errorf("persist %q: file shrank below symbol range", sym.Locator)
		}
		content = current[:sym.start] + newText + current[sym.end:]
	}

	return writeFileAtomic(sym.path, content)
}

// writeFileAtomic writes content via temp file + rename so a crash never
// leaves a half-written body behind.
func writeFileAtomic(fullPath, content string) error {
	tempFile, err := os.CreateTemp(filepath.Dir(fullPath), ".patch-*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tempPath := tempFile.Name()
	defer os.Remove(tempPath)

	if _, err := tempFile.WriteString(content); err != nil {
		tempFile.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tempFile.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}

	if info, err := os.Stat(fullPath); err == nil {
		_ = os.Chmod(tempPath, info.Mode())
	} else {
		_ = os.Chmod(tempPath, 0644)
	}

	if err := os.Rename(tempPath, fullPath); err != nil {
		return fmt.Errorf("atomic rename failed: %w", err)
	}
	return nil
}

// MemStore keeps bodies in a map. Used by tests and by callers that front an
// external service and feed texts in directly.
type MemStore struct {
	mu     sync.Mutex
	bodies map[string]string
}

func NewMemStore(bodies map[string]string) *MemStore {
	m := &MemStore{bodies: make(map[string]string, len(bodies))}
	for k, v := range bodies {
		m.bodies[k] = v
	}
	return m
}

func (m *MemStore) Resolve(locator string) (Symbol, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.bodies[locator]
	if !ok {
		return Symbol{}, fmt.Errorf("resolve %q: unknown symbol", locator)
	}
	return Symbol{Locator: locator, Text: text, path: locator, end: -1}, nil
}

func (m *MemStore) Persist(sym Symbol, newText string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	if _, ok := m.bodies[sym.Locator]; !ok {
		return fmt.Errorf("persist %q: unknown symbol", sym.Locator)
	}
	m.bodies[sym.Locator] = newText
	return nil
}

// Get returns the current text of a symbol, for tests.
func (m *MemStore) Get(locator string) (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	text, ok := m.bodies[locator]
	return text, ok
}
