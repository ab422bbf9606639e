// Package config holds all configuration for webnav.
//
// Configuration comes from three sources, in increasing precedence:
//  1. Compiled-in defaults (NewConfig)
//  2. Environment variables, optionally loaded from a .env file (ApplyEnv)
//  3. CLI flags, applied by the cmd package
//
// Site-specific overrides (custom headers, cookie, depth) live in a separate
// YAML file (.webnav) loaded with LoadSiteFile; they apply per host rather
// than per process.
//
// Design decision: The Config struct is passed through the application via
// dependency injection rather than global state. This keeps navigator
// instances independently configurable and testable.
package config
