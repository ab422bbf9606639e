package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/deepnav/webnav/internal/model"
)

// TestNewExtractCmd tests the extract command creation.
func TestNewExtractCmd(t *testing.T) {
	t.Parallel()

	cmd := NewExtractCmd()

	if cmd.Use != "extract [url]" {
		t.Errorf("unexpected use: %q", cmd.Use)
	}
	for _, name := range []string{"timeout", "config"} {
		if cmd.Flags().Lookup(name) == nil {
			t.Errorf("expected flag %q", name)
		}
	}
}

// TestExtractEndToEnd runs the extract command against a local server.
func TestExtractEndToEnd(t *testing.T) {
	t.Parallel()

	mux := http.NewServeMux()
	mux.HandleFunc("/", func(w http.ResponseWriter, r *http.Request) {
		fmt.Fprint(w, `<html><head><title>Sample Article</title>
			<meta name="description" content="a sample page"></head>
			<body><main><p>Some article text for extraction.</p></main>
			<a href="/article-next">next article</a></body></html>`)
	})
	srv := httptest.NewServer(mux)
	defer srv.Close()

	var buf bytes.Buffer
	root := NewRootCmd()
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs([]string{"extract", srv.URL + "/page"})

	if err := root.Execute(); err != nil {
		t.Fatalf("Execute() error = %v", err)
	}

	var page model.PageRecord
	if err := json.Unmarshal(buf.Bytes(), &page); err != nil {
		t.Fatalf("expected JSON page record, got %q: %v", buf.String(), err)
	}
	if page.Title != "Sample Article" {
		t.Errorf("unexpected title %q", page.Title)
	}
	if !page.Success {
		t.Errorf("expected successful extraction: %s", page.ErrorMessage)
	}
	if len(page.Links) != 1 {
		t.Errorf("expected 1 link, got %d", len(page.Links))
	}
}

// TestExtractFetchFailure verifies fetch errors surface as command errors.
func TestExtractFetchFailure(t *testing.T) {
	t.Parallel()

	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "gone", http.StatusNotFound)
	}))
	defer srv.Close()

	root := NewRootCmd()
	root.SetOut(&bytes.Buffer{})
	root.SetErr(&bytes.Buffer{})
	root.SetArgs([]string{"extract", srv.URL + "/missing"})

	if err := root.Execute(); err == nil {
		t.Error("expected an error for a 404 response")
	}
}
