// Package reader orchestrates one decode run end to end: input validation,
// the external Caption Inspector invocation, artifact parsing (descriptor,
// CEA-608/708 streams, debug log), aggregation into a caption.Result, and
// the language annotation pass.
package reader
