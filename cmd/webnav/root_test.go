package main

import (
	"context"
	"log/slog"
	"testing"
)

// TestNewRootCmd tests the root command creation.
func TestNewRootCmd(t *testing.T) {
	t.Parallel()

	cmd := NewRootCmd()

	t.Run("has correct use", func(t *testing.T) {
		t.Parallel()
		if cmd.Use != "webnav" {
			t.Errorf("expected use 'webnav', got %q", cmd.Use)
		}
	})

	t.Run("has short description", func(t *testing.T) {
		t.Parallel()
		if cmd.Short == "" {
			t.Error("expected non-empty short description")
		}
	})

	t.Run("has long description", func(t *testing.T) {
		t.Parallel()
		if cmd.Long == "" {
			t.Error("expected non-empty long description")
		}
	})

	t.Run("has version", func(t *testing.T) {
		t.Parallel()
		if cmd.Version == "" {
			t.Error("expected non-empty version")
		}
	})

	t.Run("has verbose flag", func(t *testing.T) {
		t.Parallel()
		flag := cmd.PersistentFlags().Lookup("verbose")
		if flag == nil {
			t.Fatal("expected verbose flag")
		}
		if flag.Shorthand != "v" {
			t.Errorf("expected shorthand 'v', got %q", flag.Shorthand)
		}
		if flag.DefValue != "false" {
			t.Errorf("expected default 'false', got %q", flag.DefValue)
		}
	})

	t.Run("has subcommands", func(t *testing.T) {
		t.Parallel()

		wanted := map[string]bool{
			"navigate [start-url...]": false,
			"extract [url]":           false,
			"history [session-id]":    false,
			"version":                 false,
		}
		for _, sub := range cmd.Commands() {
			if _, ok := wanted[sub.Use]; ok {
				wanted[sub.Use] = true
			}
		}
		for use, found := range wanted {
			if !found {
				t.Errorf("expected %q subcommand", use)
			}
		}
	})
}

func TestSetupLogger(t *testing.T) {
	t.Parallel()

	t.Run("default level suppresses debug", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(false)
		if logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("expected debug disabled without verbose")
		}
	})

	t.Run("verbose enables debug", func(t *testing.T) {
		t.Parallel()
		logger := setupLogger(true)
		if !logger.Enabled(context.Background(), slog.LevelDebug) {
			t.Error("expected debug enabled with verbose")
		}
	})
}
