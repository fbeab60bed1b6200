// Package workspace owns the on-disk work directory where Caption Inspector
// artifacts are written. It hands out per-run output directories, guards the
// tree with a file lock so concurrent decodes cannot interleave, and cleans
// up stale directories left behind by interrupted runs.
package workspace
