// Package files provides discovery and resolution of raw source files in
// the data directory, tolerating the extension variants the manual
// downloads arrive with.
package files
