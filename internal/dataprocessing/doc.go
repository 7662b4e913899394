// Package dataprocessing turns heterogeneous raw index price files into
// normalized Date,Open,Close series.
//
// The package is organized into four components:
//
//  1. Reader: loads raw rows from CSV or XLSX sources
//  2. Dialect detection: maps source columns by header inspection
//  3. Normalizer: date parsing, open-price fallback, row dropping,
//     sorting and deduplication
//  4. Processor: the sequential batch over the configured index list
//
// The typical data flow:
//
//	Source file → ReadSource → detectDialect → Normalize → Series → exporter
//
// Per-row problems drop the row; per-index problems skip the index; only
// setup problems abort a run.
package dataprocessing
