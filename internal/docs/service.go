// Package docs renders the AsciiDoc reference pages served by the
// dashboard. Rendered HTML is cached per file and invalidated when the
// source file changes on disk.
package docs

import (
	"bytes"
	"context"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/bytesparadise/libasciidoc"
	"github.com/bytesparadise/libasciidoc/pkg/configuration"
)

type cachedDoc struct {
	html    string
	modTime time.Time
}

type Service struct {
	docsDir string
	mu      sync.RWMutex
	cache   map[string]cachedDoc
}

func NewService(docsDir string) *Service {
	return &Service{
		docsDir: docsDir,
		cache:   make(map[string]cachedDoc),
	}
}

// GetDoc renders the named AsciiDoc file to HTML. Results are cached
// until the file's mod time changes.
func (s *Service) GetDoc(ctx context.Context, filename string) (string, error) {
	path := filepath.Join(s.docsDir, filename)
	info, err := os.Stat(path)
	if err != nil {
		return "", fmt.Errorf("failed to stat doc file: %w", err)
	}

	s.mu.RLock()
	cached, ok := s.cache[filename]
	s.mu.RUnlock()
	if ok && cached.modTime.Equal(info.ModTime()) {
		return cached.html, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return "", fmt.Errorf("failed to read doc file: %w", err)
	}

	output := bytes.NewBuffer(nil)
	config := configuration.NewConfiguration(
		configuration.WithHeaderFooter(false), // Embedded in the dashboard layout
		configuration.WithAttribute("toc", "left"),
	)

	if _, err := libasciidoc.Convert(bytes.NewReader(data), output, config); err != nil {
		return "", fmt.Errorf("failed to convert asciidoc: %w", err)
	}

	html := output.String()

	s.mu.Lock()
	s.cache[filename] = cachedDoc{html: html, modTime: info.ModTime()}
	s.mu.Unlock()

	return html, nil
}

// ListDocs returns the AsciiDoc filenames available for rendering.
func (s *Service) ListDocs() ([]string, error) {
	entries, err := os.ReadDir(s.docsDir)
	if err != nil {
		return nil, err
	}

	var docs []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.HasSuffix(entry.Name(), ".adoc") {
			docs = append(docs, entry.Name())
		}
	}
	return docs, nil
}
