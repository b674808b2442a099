// Package dataprocessing turns the raw pipe-delimited sales log into the
// validated record set the analytics and enrichment stages consume.
//
// The package is organized into three components:
//
// 1. Reader: reads the sales file, handling legacy encodings
// 2. Parser: parses raw lines into typed Transaction records
// 3. Validator: enforces business rules and optional user filters
//
// # Data Flow
//
//	Sales File → Reader → raw lines → Parser → Transactions → Validator → valid set
//
// # Error Handling
//
// Row-level failures never abort a stage: malformed rows are skipped and
// counted, invalid records are classified and counted. Only boundary
// failures (missing or undecodable file) surface as errors, and callers
// are expected to continue with an empty line set.
package dataprocessing
