// SPDX-License-Identifier: MPL-2.0

// Package benchmark provides benchmarks for PGO profile generation.
// These benchmarks cover the hot paths in the quiver codebase:
//   - Desktop-file scanning and parsing
//   - Plugin script execution and entry ingestion
//   - Incremental catalog search and forest traversal
//   - Configuration loading
//
// To generate a PGO profile, run:
//
//	go test -bench . -cpuprofile default.pgo ./internal/benchmark
package benchmark
