// Package main provides the entry point for the webnav CLI.
//
// webnav is a deep web navigation tool. It fetches a start page, extracts
// its content, and follows the most promising links up to configurable
// depth and page budgets, saving structured page records along the way.
//
// Usage:
//
//	webnav navigate <start-url>
//	webnav extract <url>
//	webnav history
//
// See --help for all available options.
package main

// main is the entry point for webnav.
func main() {
	Execute()
}
