// Package caption defines the decoded caption model: timed events grouped by
// track and standard, per-run metadata, and the read-side query surface over
// a completed decode result.
package caption
