package persist

import (
	"crypto/md5" //nolint:gosec // Filename disambiguation, not security
	"encoding/hex"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/deepnav/webnav/internal/model"
)

// Subdirectories of the data directory.
const (
	// contentCacheDir holds one JSON file per accepted page.
	contentCacheDir = "content_cache"

	// navigationLogsDir holds one summary JSON file per session.
	navigationLogsDir = "navigation_logs"
)

// FileSink writes navigation artifacts as JSON files under a base
// directory.
//
// Page files are named {session}_{hash}.json where hash is the first 12 hex
// characters of the page URL's MD5. The hash keeps filenames stable across
// runs and safe regardless of what characters the URL contains.
type FileSink struct {
	baseDir string
}

// NewFileSink creates a FileSink rooted at baseDir, creating the directory
// layout if needed.
func NewFileSink(baseDir string) (*FileSink, error) {
	for _, sub := range []string{contentCacheDir, navigationLogsDir} {
		if err := os.MkdirAll(filepath.Join(baseDir, sub), 0750); err != nil {
			return nil, fmt.Errorf("failed to create data directory: %w", err)
		}
	}
	return &FileSink{baseDir: baseDir}, nil
}

// SavePage writes one accepted page as an indented JSON file.
func (s *FileSink) SavePage(sessionID string, page *model.PageRecord) error {
	data, err := json.MarshalIndent(page, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize page: %w", err)
	}

	name := fmt.Sprintf("%s_%s.json", sessionID, urlHash(page.URL))
	path := filepath.Join(s.baseDir, contentCacheDir, name)
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("failed to write page file: %w", err)
	}
	return nil
}

// SavePath writes the session summary as navigation_{session}.json.
func (s *FileSink) SavePath(path *model.NavigationPath) error {
	data, err := json.MarshalIndent(path.Summary(), "", "  ")
	if err != nil {
		return fmt.Errorf("failed to serialize navigation summary: %w", err)
	}

	name := fmt.Sprintf("navigation_%s.json", path.SessionID)
	file := filepath.Join(s.baseDir, navigationLogsDir, name)
	if err := os.WriteFile(file, data, 0600); err != nil {
		return fmt.Errorf("failed to write navigation summary: %w", err)
	}
	return nil
}

// PagePath returns the file path a page with the given URL would be saved
// to for the given session.
func (s *FileSink) PagePath(sessionID, pageURL string) string {
	name := fmt.Sprintf("%s_%s.json", sessionID, urlHash(pageURL))
	return filepath.Join(s.baseDir, contentCacheDir, name)
}

// urlHash returns the first 12 hex characters of the URL's MD5 digest.
func urlHash(pageURL string) string {
	sum := md5.Sum([]byte(pageURL)) //nolint:gosec // Filename disambiguation, not security
	return hex.EncodeToString(sum[:])[:12]
}

// MultiSink fans every call out to all of its sinks. The first error is
// returned after all sinks have been tried, so one failing backend does not
// starve the others.
type MultiSink struct {
	sinks []Sink
}

// Sink is the destination contract MultiSink fans out to. It matches the
// crawler's sink contract so file and database backends compose.
type Sink interface {
	SavePage(sessionID string, page *model.PageRecord) error
	SavePath(path *model.NavigationPath) error
}

// NewMultiSink combines sinks into one. Nil entries are skipped.
func NewMultiSink(sinks ...Sink) *MultiSink {
	kept := make([]Sink, 0, len(sinks))
	for _, s := range sinks {
		if s != nil {
			kept = append(kept, s)
		}
	}
	return &MultiSink{sinks: kept}
}

// SavePage saves the page to every sink.
func (m *MultiSink) SavePage(sessionID string, page *model.PageRecord) error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.SavePage(sessionID, page); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}

// SavePath saves the path to every sink.
func (m *MultiSink) SavePath(path *model.NavigationPath) error {
	var firstErr error
	for _, s := range m.sinks {
		if err := s.SavePath(path); err != nil && firstErr == nil {
			firstErr = err
		}
	}
	return firstErr
}
