// Package event holds the parsed-event value types the core tracker
// consumes: raw per-layer cluster records, primary-vertex candidates,
// and the optional Monte-Carlo truth lookup. Parsing the ASCII event
// and label files into these types is out of the core's scope (spec
// §1) — package ioutil does that; this package only defines the shape
// of what crosses the boundary.
package event
