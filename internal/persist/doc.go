// Package persist stores navigation results.
//
// Two backends implement the crawler's Sink contract. FileSink writes one
// JSON file per accepted page plus one summary file per session, mirroring
// the data layout downstream tooling already consumes. HistoryDB keeps a
// queryable SQLite history of sessions and their pages for the history
// subcommand. MultiSink fans out to both.
//
// Design decision: Persistence is fire-and-forget from the crawler's point
// of view. Sinks return errors so callers can log them, but a crawl never
// aborts because an artifact failed to write.
package persist
