package persist

import (
	"context"
	"testing"

	"github.com/deepnav/webnav/internal/model"
)

func TestHistoryDB(t *testing.T) {
	t.Parallel()

	t.Run("records and lists sessions", func(t *testing.T) {
		t.Parallel()

		h, err := OpenHistory(t.TempDir())
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		defer h.Close() //nolint:errcheck // Test cleanup

		path := model.NewNavigationPath("http://site.test/", "nav_10_1", model.StrategyQualityFirst)
		path.AddPage(&model.PageRecord{URL: "http://site.test/", Title: "Home", CleanedText: "0123456789"}, 0)
		path.AddPage(&model.PageRecord{URL: "http://site.test/guide", Title: "Guide", CleanedText: "01234"}, 1)

		for _, page := range path.VisitedPages {
			if err := h.SavePage(path.SessionID, page); err != nil {
				t.Fatalf("SavePage() error = %v", err)
			}
		}
		if err := h.SavePath(path); err != nil {
			t.Fatalf("SavePath() error = %v", err)
		}

		sessions, err := h.ListSessions(context.Background())
		if err != nil {
			t.Fatalf("ListSessions() error = %v", err)
		}
		if len(sessions) != 1 {
			t.Fatalf("expected 1 session, got %d", len(sessions))
		}

		s := sessions[0]
		if s.SessionID != "nav_10_1" || s.StartURL != "http://site.test/" {
			t.Errorf("unexpected session row: %+v", s)
		}
		if s.Strategy != "quality_first" {
			t.Errorf("expected quality_first strategy, got %q", s.Strategy)
		}
		if s.PagesVisited != 2 || s.TotalContent != 15 || s.NavigationDepth != 1 {
			t.Errorf("unexpected aggregates: %+v", s)
		}
		if s.CreatedAt.IsZero() {
			t.Error("expected a parsed created_at timestamp")
		}
	})

	t.Run("get session returns pages in insertion order", func(t *testing.T) {
		t.Parallel()

		h, err := OpenHistory(t.TempDir())
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		defer h.Close() //nolint:errcheck // Test cleanup

		path := model.NewNavigationPath("http://site.test/", "nav_11_1", model.StrategyBreadthFirst)
		pages := []*model.PageRecord{
			{URL: "http://site.test/", Title: "First", Language: "fr", ContentQualityScore: 3},
			{URL: "http://site.test/next", Title: "Second", Language: "en", ContentQualityScore: 5},
		}
		for _, page := range pages {
			path.AddPage(page, 0)
			if err := h.SavePage(path.SessionID, page); err != nil {
				t.Fatalf("SavePage() error = %v", err)
			}
		}
		if err := h.SavePath(path); err != nil {
			t.Fatalf("SavePath() error = %v", err)
		}

		session, got, err := h.GetSession(context.Background(), "nav_11_1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if session == nil {
			t.Fatal("expected a session")
		}
		if len(got) != 2 {
			t.Fatalf("expected 2 pages, got %d", len(got))
		}
		if got[0].Title != "First" || got[1].Title != "Second" {
			t.Errorf("expected insertion order, got %q then %q", got[0].Title, got[1].Title)
		}
		if got[1].QualityScore != 5 || got[1].Language != "en" {
			t.Errorf("unexpected page row: %+v", got[1])
		}
	})

	t.Run("saving a page twice updates in place", func(t *testing.T) {
		t.Parallel()

		h, err := OpenHistory(t.TempDir())
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		defer h.Close() //nolint:errcheck // Test cleanup

		page := &model.PageRecord{URL: "http://site.test/x", Title: "Old"}
		if err := h.SavePage("nav_12_1", page); err != nil {
			t.Fatalf("SavePage() error = %v", err)
		}
		page.Title = "New"
		if err := h.SavePage("nav_12_1", page); err != nil {
			t.Fatalf("SavePage() error = %v", err)
		}

		path := model.NewNavigationPath("http://site.test/x", "nav_12_1", model.StrategyBreadthFirst)
		if err := h.SavePath(path); err != nil {
			t.Fatalf("SavePath() error = %v", err)
		}

		_, pages, err := h.GetSession(context.Background(), "nav_12_1")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if len(pages) != 1 {
			t.Fatalf("expected 1 page after upsert, got %d", len(pages))
		}
		if pages[0].Title != "New" {
			t.Errorf("expected updated title, got %q", pages[0].Title)
		}
	})

	t.Run("missing session returns nil without error", func(t *testing.T) {
		t.Parallel()

		h, err := OpenHistory(t.TempDir())
		if err != nil {
			t.Fatalf("OpenHistory() error = %v", err)
		}
		defer h.Close() //nolint:errcheck // Test cleanup

		session, pages, err := h.GetSession(context.Background(), "nav_none")
		if err != nil {
			t.Fatalf("GetSession() error = %v", err)
		}
		if session != nil || pages != nil {
			t.Errorf("expected nil results, got %+v %v", session, pages)
		}
	})
}

func TestParseTimestamp(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name  string
		input string
		zero  bool
	}{
		{name: "sqlite default", input: "2026-08-31 10:20:30"},
		{name: "rfc3339", input: "2026-08-31T10:20:30Z"},
		{name: "with milliseconds", input: "2026-08-31 10:20:30.123"},
		{name: "garbage", input: "not a time", zero: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := parseTimestamp(tt.input)
			if got.IsZero() != tt.zero {
				t.Errorf("parseTimestamp(%q) zero = %v, want %v", tt.input, got.IsZero(), tt.zero)
			}
		})
	}
}
