// Package inspector wraps the external Caption Inspector decoder. It invokes
// the binary against an MCC input, waits for it to deposit its text artifacts
// (per-channel .608, per-service .708, a .ccd descriptor, and a .dbg log) in
// the output directory, and reports which artifacts exist. It never reads the
// artifact contents; parsing belongs to the caption packages.
package inspector
