package crawler

import (
	"fmt"
	"testing"

	"github.com/deepnav/webnav/internal/model"
)

func TestSelectNavigationLinks(t *testing.T) {
	t.Parallel()

	base := "http://site.test/start"

	t.Run("keeps interesting same-host links in document order", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/one", Text: "read the article"},
			{URL: "http://site.test/boring", Text: "nothing here"},
			{URL: "http://site.test/two", Text: "guide pratique"},
		}

		got := SelectNavigationLinks(links, base, nil, nil)
		if len(got) != 2 {
			t.Fatalf("expected 2 links, got %d: %v", len(got), got)
		}
		if got[0].URL != "http://site.test/one" || got[1].URL != "http://site.test/two" {
			t.Errorf("expected document order preserved, got %v", got)
		}
	})

	t.Run("filters cross-host links", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{{URL: "http://other.test/x", Text: "external article"}}
		if got := SelectNavigationLinks(links, base, nil, nil); len(got) != 0 {
			t.Errorf("expected cross-host link dropped, got %v", got)
		}
	})

	t.Run("filters media and document downloads", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/paper.pdf", Text: "article as pdf"},
			{URL: "http://site.test/figure.PNG", Text: "article diagram"},
		}
		if got := SelectNavigationLinks(links, base, nil, nil); len(got) != 0 {
			t.Errorf("expected downloads dropped, got %v", got)
		}
	})

	t.Run("filters fragment links", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{{URL: "http://site.test/page#section", Text: "article anchor"}}
		if got := SelectNavigationLinks(links, base, nil, nil); len(got) != 0 {
			t.Errorf("expected fragment link dropped, got %v", got)
		}
	})

	t.Run("filters blacklisted urls", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/private/x", Text: "hidden article"},
			{URL: "http://site.test/open", Text: "open article"},
		}
		got := SelectNavigationLinks(links, base, []string{"/private/"}, nil)
		if len(got) != 1 || got[0].URL != "http://site.test/open" {
			t.Errorf("expected only non-blacklisted link, got %v", got)
		}
	})

	t.Run("excludes already-visited links", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/seen", Text: "lire la suite"},
			{URL: "http://site.test/fresh", Text: "lire la suite"},
		}
		visited := map[string]struct{}{"http://site.test/seen": {}}

		got := SelectNavigationLinks(links, base, nil, visited)
		if len(got) != 1 || got[0].URL != "http://site.test/fresh" {
			t.Errorf("expected only the unvisited link, got %v", got)
		}
	})

	t.Run("scores anchor text, never the url", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/article-123", Text: "click here"},
			{URL: "http://site.test/x9q", Text: "lire la suite"},
		}
		got := SelectNavigationLinks(links, base, nil, nil)
		if len(got) != 1 || got[0].URL != "http://site.test/x9q" {
			t.Errorf("expected only the keyword-anchored link, got %v", got)
		}
	})

	t.Run("one generic keyword penalizes once", func(t *testing.T) {
		t.Parallel()

		// Three interesting keywords against a single -2 penalty, even
		// though both "home" and "search" appear.
		links := []model.Link{{URL: "http://site.test/p1", Text: "lire le guide article home search"}}
		got := SelectNavigationLinks(links, base, nil, nil)
		if len(got) != 1 {
			t.Errorf("expected mostly-interesting anchor kept, got %v", got)
		}
	})

	t.Run("chrome anchors score out", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{
			{URL: "http://site.test/p2", Text: "article home"},
			{URL: "http://site.test/p3", Text: "accueil"},
		}
		if got := SelectNavigationLinks(links, base, nil, nil); len(got) != 0 {
			t.Errorf("expected negative-score anchors dropped, got %v", got)
		}
	})

	t.Run("caps candidates at ten", func(t *testing.T) {
		t.Parallel()

		links := make([]model.Link, 0, 15)
		for i := 0; i < 15; i++ {
			links = append(links, model.Link{URL: fmt.Sprintf("http://site.test/p-%d", i), Text: "article"})
		}
		if got := SelectNavigationLinks(links, base, nil, nil); len(got) != maxLinkCandidates {
			t.Errorf("expected %d candidates, got %d", maxLinkCandidates, len(got))
		}
	})

	t.Run("invalid base url yields nothing", func(t *testing.T) {
		t.Parallel()

		links := []model.Link{{URL: "http://site.test/p", Text: "article"}}
		if got := SelectNavigationLinks(links, "http://site.test/\x7f", nil, nil); got != nil {
			t.Errorf("expected nil for invalid base, got %v", got)
		}
	})
}

func TestEstimateURLQuality(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		url  string
		want float64
	}{
		{
			name: "short url with no keywords",
			url:  "http://a.test/",
			want: 0,
		},
		{
			name: "moderate length base point",
			url:  "http://site.test/some/path",
			want: 1,
		},
		{
			name: "keyword bonuses stack",
			url:  "http://site.test/guide/article",
			want: 2, // length point + 2 * 0.5
		},
		{
			name: "penalties subtract",
			url:  "http://site.test/ads/redirect/x",
			want: 0, // length point - 1 (ads contains ad too, still floored)
		},
		{
			name: "never negative",
			url:  "http://x.test/ad/track",
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := EstimateURLQuality(tt.url); got != tt.want {
				t.Errorf("EstimateURLQuality(%q) = %v, want %v", tt.url, got, tt.want)
			}
		})
	}
}
