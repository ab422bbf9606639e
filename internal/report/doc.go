// Package report renders navigation results for humans and tools.
//
// Two formats are supported: JSON for programmatic consumers and Markdown
// for documentation and sharing. Both implement the Writer interface so a
// command can emit several formats from one crawl without re-running it.
package report
