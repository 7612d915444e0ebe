// Package docbase builds and queries a local knowledge base from
// heterogeneous documentation sources. It crawls documentation sites and
// scans local files, detects which content actually changed since the last
// run, splits content into retrieval-friendly chunks using content-aware
// strategies, and answers free-text queries by fusing lexical and semantic
// rankings over the indexed chunks.
//
// This package contains domain types and interfaces following Ben Johnson's
// Standard Package Layout. Implementations live in subdirectories named
// after their primary dependency (e.g., sqlite/, gemini/, goquery/) or the
// pipeline stage they implement (crawl/, change/, classify/, chunk/,
// ingest/, search/).
package docbase
