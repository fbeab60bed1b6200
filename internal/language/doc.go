// Package language normalizes language identifiers to ISO 639-1 so track
// annotation and query filtering agree on one canonical form. Detector
// output, ISO 639-2 codes, and full word forms ("english") all map to the
// same two-letter code.
package language
