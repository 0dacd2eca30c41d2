// Package reembed regenerates embedding vectors for stored links,
// typically after an embedding model change. It processes links in
// batches with exponential-backoff retry and reports progress to a
// writer.
package reembed
