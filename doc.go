// Package marketdata ingests wide-format home-value and rental index
// datasets keyed by geographic region and exposes them as a fast, durably
// cached, multi-key-searchable store.
//
// The core functionalities include:
//   - Streaming Ingestion: downloading multi-megabyte index files with
//     byte-level progress reporting, and parsing the wide tabular format
//     into per-region time series.
//   - Series Merging: joining independently sourced rental series onto
//     home-value series by region, tolerating partial rental coverage.
//   - Market Index: a redundant lookup structure resolving zip codes,
//     "City, ST" queries in any casing, and slug forms to one canonical
//     region record.
//   - Durable Cache: a versioned, namespaced key-value store persisting
//     parsed datasets across runs, with TTL and automatic invalidation of
//     outdated schemas.
//   - Providers: two loading strategies behind one contract, bulk
//     (everything up front, served from memory) and on-demand (one region's
//     pair of files per request), plus a guaranteed sample-data fallback
//     selected by a memoizing registry.
//
// This package serves as the foundational logic for the `hfm` command-line
// tool.
package marketdata
