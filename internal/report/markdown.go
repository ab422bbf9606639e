package report

import (
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/nao1215/markdown"

	"github.com/deepnav/webnav/internal/model"
)

// MarkdownWriter outputs navigation results in Markdown format.
// This format is designed for documentation and sharing.
//
// Design decision: We use the nao1215/markdown library for fluent markdown
// generation which provides type-safe tables and lists, so the report
// structure lives in code instead of format strings.
type MarkdownWriter struct {
	baseWriter
}

// NewMarkdownWriter creates a MarkdownWriter that outputs to the given writer.
func NewMarkdownWriter(output io.Writer) *MarkdownWriter {
	return &MarkdownWriter{
		baseWriter: newBaseWriter(output),
	}
}

// Write outputs the full navigation path in Markdown format.
func (w *MarkdownWriter) Write(path *model.NavigationPath) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, path.Summary())
	w.writePages(md, path.VisitedPages)

	return len(md.String()), md.Build()
}

// WriteSummary outputs only the session summary in Markdown format.
func (w *MarkdownWriter) WriteSummary(summary *model.PathSummary) (int, error) {
	md := markdown.NewMarkdown(w.output)

	w.writeHeader(md, summary)

	if len(summary.VisitedURLs) > 0 {
		md.H2("Visited URLs")
		md.PlainText("")
		md.OrderedList(summary.VisitedURLs...)
		md.PlainText("")
	}

	return len(md.String()), md.Build()
}

// writeHeader writes the session overview table.
func (w *MarkdownWriter) writeHeader(md *markdown.Markdown, summary *model.PathSummary) {
	md.H1("Navigation Report")
	md.PlainText("")

	md.Table(markdown.TableSet{
		Header: []string{"Property", "Value"},
		Rows: [][]string{
			{"Start URL", "`" + summary.StartURL + "`"},
			{"Session", summary.SessionID},
			{"Strategy", string(summary.NavigationStrategy)},
			{"Started", summary.CreatedAt},
			{"Pages Visited", strconv.Itoa(summary.VisitedPagesCount)},
			{"Max Depth Reached", strconv.Itoa(summary.NavigationDepth)},
			{"Content Extracted", fmt.Sprintf("%d chars", summary.TotalContentExtracted)},
		},
	})
	md.PlainText("")
}

// writePages writes one section per visited page.
func (w *MarkdownWriter) writePages(md *markdown.Markdown, pages []*model.PageRecord) {
	if len(pages) == 0 {
		return
	}

	md.H2("Visited Pages")
	md.PlainText("")

	rows := make([][]string, 0, len(pages))
	for i, page := range pages {
		rows = append(rows, []string{
			strconv.Itoa(i + 1),
			page.Title,
			"`" + page.URL + "`",
			fmt.Sprintf("%.1f", page.ContentQualityScore),
			page.Language,
		})
	}
	md.Table(markdown.TableSet{
		Header: []string{"#", "Title", "URL", "Quality", "Language"},
		Rows:   rows,
	})
	md.PlainText("")

	for _, page := range pages {
		md.H3(page.Title)
		md.PlainText("")
		if len(page.Keywords) > 0 {
			md.PlainTextf("**Keywords:** %s", strings.Join(page.Keywords, ", "))
			md.PlainText("")
		}
		if page.Summary != "" {
			md.Blockquote(page.Summary)
			md.PlainText("")
		}
	}
}
