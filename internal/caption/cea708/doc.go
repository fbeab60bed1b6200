// Package cea708 reconstructs caption events from the decoder's per-service
// DTVCC text streams. Records carry window definitions, window attribute and
// pen commands, pen moves, and quoted text; display and delete window
// commands open and close the timed events.
package cea708
