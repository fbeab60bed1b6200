// Package services defines shared utilities consumed by the decode pipeline
// and its external integrations.
//
// Key responsibilities:
//   - Context helpers that stamp run IDs, stage names, and input paths for
//     logging and tracing.
//   - Structured error markers plus the Wrap helper that translate failures
//     into a consistent taxonomy (caller mistake vs decode failure).
//   - Thin abstractions that make command execution and output streaming from
//     external tools testable.
//
// Use these helpers when wiring new pipeline logic so operational behaviour
// (error handling, observability) stays uniform.
package services
