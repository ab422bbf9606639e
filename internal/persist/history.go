package persist

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite" // SQLite driver

	"github.com/deepnav/webnav/internal/model"
)

// HistoryDB provides SQLite-based storage of navigation sessions for the
// history subcommand.
//
// Design decision: We keep one database file for all sessions rather than
// one per session. Session listing and cross-session queries stay simple,
// and the write volume (a handful of rows per crawl) never stresses a
// single file.
type HistoryDB struct {
	// db is the underlying SQL database connection.
	db *sql.DB

	// dbPath is the path to the SQLite database file.
	dbPath string
}

// OpenHistory opens or creates the history database under dbDir.
func OpenHistory(dbDir string) (*HistoryDB, error) {
	if err := os.MkdirAll(dbDir, 0750); err != nil {
		return nil, fmt.Errorf("failed to create history directory: %w", err)
	}

	dbPath := filepath.Join(dbDir, "webnav.db")
	db, err := sql.Open("sqlite", dbPath+"?mode=rwc")
	if err != nil {
		return nil, fmt.Errorf("failed to open history database: %w", err)
	}

	// SQLite only supports one writer.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(time.Hour)

	h := &HistoryDB{db: db, dbPath: dbPath}

	if _, err := db.ExecContext(context.Background(), "PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}
	if err := h.createTables(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return h, nil
}

// Close closes the database connection.
func (h *HistoryDB) Close() error {
	return h.db.Close()
}

// createTables creates the schema if it doesn't exist.
func (h *HistoryDB) createTables() error {
	schema := `
	-- Sessions store one row per navigate_deep invocation
	CREATE TABLE IF NOT EXISTS sessions (
		session_id TEXT PRIMARY KEY,
		start_url TEXT NOT NULL,
		strategy TEXT NOT NULL,
		navigation_depth INTEGER DEFAULT 0,
		total_content INTEGER DEFAULT 0,
		pages_visited INTEGER DEFAULT 0,
		created_at DATETIME DEFAULT CURRENT_TIMESTAMP
	);

	CREATE INDEX IF NOT EXISTS idx_sessions_created ON sessions(created_at);

	-- Pages store one row per accepted page
	CREATE TABLE IF NOT EXISTS pages (
		session_id TEXT NOT NULL,
		url TEXT NOT NULL,
		title TEXT,
		language TEXT,
		quality_score REAL DEFAULT 0,
		content_length INTEGER DEFAULT 0,
		extracted_at DATETIME DEFAULT CURRENT_TIMESTAMP,
		PRIMARY KEY (session_id, url)
	);

	CREATE INDEX IF NOT EXISTS idx_pages_session ON pages(session_id);
	`

	_, err := h.db.ExecContext(context.Background(), schema)
	return err
}

// SavePage records an accepted page for a session. Re-encountering the
// same URL within a session updates the row in place.
func (h *HistoryDB) SavePage(sessionID string, page *model.PageRecord) error {
	query := `
	INSERT INTO pages (session_id, url, title, language, quality_score, content_length)
	VALUES (?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id, url) DO UPDATE SET
		title = excluded.title,
		language = excluded.language,
		quality_score = excluded.quality_score,
		content_length = excluded.content_length,
		extracted_at = CURRENT_TIMESTAMP
	`

	_, err := h.db.ExecContext(context.Background(), query,
		sessionID,
		page.URL,
		page.Title,
		page.Language,
		page.ContentQualityScore,
		len(page.CleanedText),
	)
	if err != nil {
		return fmt.Errorf("failed to record page: %w", err)
	}
	return nil
}

// SavePath records the finished session. Saving the same session again
// updates its aggregate counters.
func (h *HistoryDB) SavePath(path *model.NavigationPath) error {
	query := `
	INSERT INTO sessions (session_id, start_url, strategy, navigation_depth, total_content, pages_visited, created_at)
	VALUES (?, ?, ?, ?, ?, ?, ?)
	ON CONFLICT(session_id) DO UPDATE SET
		navigation_depth = excluded.navigation_depth,
		total_content = excluded.total_content,
		pages_visited = excluded.pages_visited
	`

	_, err := h.db.ExecContext(context.Background(), query,
		path.SessionID,
		path.StartURL,
		string(path.NavigationStrategy),
		path.NavigationDepth,
		path.TotalContentExtracted,
		len(path.VisitedPages),
		path.CreatedAt.UTC().Format(time.RFC3339),
	)
	if err != nil {
		return fmt.Errorf("failed to record session: %w", err)
	}
	return nil
}

// SessionRecord is one stored navigation session.
type SessionRecord struct {
	SessionID       string
	StartURL        string
	Strategy        string
	NavigationDepth int
	TotalContent    int
	PagesVisited    int
	CreatedAt       time.Time
}

// PageRecord is one stored page row.
type PageRecord struct {
	SessionID     string
	URL           string
	Title         string
	Language      string
	QualityScore  float64
	ContentLength int
	ExtractedAt   time.Time
}

// ListSessions returns stored sessions, most recent first.
func (h *HistoryDB) ListSessions(ctx context.Context) ([]SessionRecord, error) {
	query := `
	SELECT session_id, start_url, strategy, navigation_depth, total_content, pages_visited, created_at
	FROM sessions
	ORDER BY created_at DESC
	`

	rows, err := h.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list sessions: %w", err)
	}
	defer rows.Close()

	var sessions []SessionRecord
	for rows.Next() {
		var s SessionRecord
		var created string
		if err := rows.Scan(&s.SessionID, &s.StartURL, &s.Strategy,
			&s.NavigationDepth, &s.TotalContent, &s.PagesVisited, &created); err != nil {
			return nil, fmt.Errorf("failed to scan session: %w", err)
		}
		s.CreatedAt = parseTimestamp(created)
		sessions = append(sessions, s)
	}

	return sessions, rows.Err()
}

// GetSession retrieves one session and its pages. It returns nil without
// error when the session does not exist.
func (h *HistoryDB) GetSession(ctx context.Context, sessionID string) (*SessionRecord, []PageRecord, error) {
	query := `
	SELECT session_id, start_url, strategy, navigation_depth, total_content, pages_visited, created_at
	FROM sessions
	WHERE session_id = ?
	`

	var s SessionRecord
	var created string
	err := h.db.QueryRowContext(ctx, query, sessionID).Scan(
		&s.SessionID, &s.StartURL, &s.Strategy,
		&s.NavigationDepth, &s.TotalContent, &s.PagesVisited, &created,
	)
	if err == sql.ErrNoRows {
		return nil, nil, nil
	}
	if err != nil {
		return nil, nil, fmt.Errorf("failed to get session: %w", err)
	}
	s.CreatedAt = parseTimestamp(created)

	pages, err := h.sessionPages(ctx, sessionID)
	if err != nil {
		return nil, nil, err
	}
	return &s, pages, nil
}

// sessionPages returns the page rows of a session in insertion order.
func (h *HistoryDB) sessionPages(ctx context.Context, sessionID string) ([]PageRecord, error) {
	query := `
	SELECT session_id, url, title, language, quality_score, content_length, extracted_at
	FROM pages
	WHERE session_id = ?
	ORDER BY rowid
	`

	rows, err := h.db.QueryContext(ctx, query, sessionID)
	if err != nil {
		return nil, fmt.Errorf("failed to query pages: %w", err)
	}
	defer rows.Close()

	var pages []PageRecord
	for rows.Next() {
		var p PageRecord
		var extracted string
		if err := rows.Scan(&p.SessionID, &p.URL, &p.Title, &p.Language,
			&p.QualityScore, &p.ContentLength, &extracted); err != nil {
			return nil, fmt.Errorf("failed to scan page: %w", err)
		}
		p.ExtractedAt = parseTimestamp(extracted)
		pages = append(pages, p)
	}

	return pages, rows.Err()
}

// timestampFormats contains the timestamp formats that SQLite may return.
// The order matters: more specific formats should come first.
var timestampFormats = []string{
	"2006-01-02 15:04:05",     // SQLite default datetime format
	"2006-01-02T15:04:05Z",    // ISO 8601 with Z suffix
	"2006-01-02T15:04:05",     // ISO 8601 without timezone
	time.RFC3339,              // Full RFC3339 format
	time.RFC3339Nano,          // RFC3339 with nanoseconds
	"2006-01-02 15:04:05.999", // SQLite with milliseconds
}

// parseTimestamp attempts to parse a timestamp string using multiple
// formats. SQLite may return timestamps in different formats depending on
// configuration. If parsing fails with all formats, returns zero time.
func parseTimestamp(s string) time.Time {
	for _, format := range timestampFormats {
		if t, err := time.Parse(format, s); err == nil {
			return t
		}
	}
	return time.Time{}
}
