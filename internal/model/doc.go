// Package model defines the core data structures used throughout webnav.
//
// This package contains the following main types:
//   - PageRecord: The structured result of extracting one fetched HTML document
//   - NavigationPath: The aggregate result of one bounded crawl
//   - Link, Image, Section: Structural elements extracted from a page
//
// Design decision: We separate models into their own package to avoid circular
// dependencies. Multiple packages (extractor, crawler, persist, report) need
// these types, so centralizing them prevents import cycles.
//
// The models are designed to be serializable to JSON. The field names in the
// JSON tags are the on-disk format consumed by downstream reporting tools,
// so changing them is a breaking change.
package model
