// Package ingestion provides pipeline orchestration for loading job postings.
//
// The Pipeline type manages the loading workflow for scraped postings,
// including:
//   - Validating posting fields before storage
//   - Deduplicating against stored postings by content fingerprint
//   - Storing batches concurrently using a worker pool
//
// Invalid postings and duplicates are counted and logged but do not fail the
// ingestion operation.
package ingestion
