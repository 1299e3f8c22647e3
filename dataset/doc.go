// Package dataset provides acquisition, caching and parsing of the tabular
// datasets used by the analysis walkthroughs.
//
// The central entry point is Fetcher.EnsureLocalDataset, which guarantees
// that a decompressed tabular file exists locally, downloading and
// extracting the remote archive only when the local cache file is absent.
// Existence of the cache file alone marks the cache as valid; no timestamp
// or version metadata is kept. An expected content digest can be configured
// for callers that want the archive verified before it is trusted.
//
// Table is the in-memory result of parsing the extracted CSV: named,
// header-ordered columns with numeric accessors and gonum interop.
// LoadCaliforniaHousing wires both together for the housing census dataset
// the walkthroughs are built around.
package dataset
