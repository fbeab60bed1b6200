// Package cea608 reconstructs caption events from the decoder's per-channel
// line-21 text streams. Each record carries a timecode plus a mix of quoted
// text, preamble address codes, mid-row style codes, and control-code
// mnemonics; the parser runs the pop-on double-buffer state machine to turn
// those into timed events.
package cea608
