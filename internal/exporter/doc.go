// Package exporter handles CSV output: normalized index series with the
// fixed Date,Open,Close schema and the optional per-run summary report.
package exporter
