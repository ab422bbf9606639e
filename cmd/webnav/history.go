package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/deepnav/webnav/internal/config"
	"github.com/deepnav/webnav/internal/persist"
)

// NewHistoryCmd creates the history command.
func NewHistoryCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "history [session-id]",
		Short: "List past navigation sessions or show one in detail",
		Long: `History queries the local SQLite database of past navigations.

With no argument it lists all recorded sessions, most recent first. With a
session ID it shows that session's aggregate statistics and visited pages.

Examples:
  # List all sessions
  webnav history

  # Show one session with its pages
  webnav history nav_1756600000_1

  # Machine-readable output
  webnav history --json`,
		Args: cobra.MaximumNArgs(1),
		RunE: runHistoryCmd,
	}

	cmd.Flags().String("db-dir", "",
		"History database directory (default: XDG data directory)")
	cmd.Flags().BoolP("json", "j", false,
		"Output JSON instead of a table")

	return cmd
}

// runHistoryCmd executes the history command.
func runHistoryCmd(cmd *cobra.Command, args []string) error {
	dbDir, err := cmd.Flags().GetString("db-dir")
	if err != nil {
		return err
	}
	if dbDir == "" {
		dbDir = config.XDGDataDir()
	}

	asJSON, err := cmd.Flags().GetBool("json")
	if err != nil {
		return err
	}

	history, err := persist.OpenHistory(dbDir)
	if err != nil {
		return fmt.Errorf("failed to open history database: %w", err)
	}
	defer history.Close() //nolint:errcheck // Read-only usage; close error is not actionable

	if len(args) == 1 {
		return showSession(cmd, history, args[0], asJSON)
	}
	return listSessions(cmd, history, asJSON)
}

// listSessions prints all recorded sessions.
func listSessions(cmd *cobra.Command, history *persist.HistoryDB, asJSON bool) error {
	sessions, err := history.ListSessions(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(sessions, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	if len(sessions) == 0 {
		fmt.Fprintln(out, "no recorded sessions")
		return nil
	}

	fmt.Fprintf(out, "%-24s %-14s %6s %6s  %s\n", "SESSION", "STRATEGY", "PAGES", "DEPTH", "START URL")
	for _, s := range sessions {
		fmt.Fprintf(out, "%-24s %-14s %6d %6d  %s\n",
			s.SessionID, s.Strategy, s.PagesVisited, s.NavigationDepth, s.StartURL)
	}
	return nil
}

// showSession prints one session and its pages.
func showSession(cmd *cobra.Command, history *persist.HistoryDB, sessionID string, asJSON bool) error {
	session, pages, err := history.GetSession(cmd.Context(), sessionID)
	if err != nil {
		return err
	}
	if session == nil {
		return fmt.Errorf("session not found: %s", sessionID)
	}

	out := cmd.OutOrStdout()
	if asJSON {
		data, err := json.MarshalIndent(struct {
			Session *persist.SessionRecord `json:"session"`
			Pages   []persist.PageRecord   `json:"pages"`
		}{session, pages}, "", "  ")
		if err != nil {
			return err
		}
		fmt.Fprintln(out, string(data))
		return nil
	}

	fmt.Fprintf(out, "Session:  %s\n", session.SessionID)
	fmt.Fprintf(out, "Start:    %s\n", session.StartURL)
	fmt.Fprintf(out, "Strategy: %s\n", session.Strategy)
	fmt.Fprintf(out, "Pages:    %d (depth %d, %d chars extracted)\n",
		session.PagesVisited, session.NavigationDepth, session.TotalContent)
	fmt.Fprintf(out, "Started:  %s\n\n", session.CreatedAt.Format("2006-01-02 15:04:05"))

	for i, p := range pages {
		fmt.Fprintf(out, "%2d. [%.1f] %s\n    %s\n", i+1, p.QualityScore, p.Title, p.URL)
	}
	return nil
}
