// Package timecode converts SMPTE timecode strings to and from microsecond
// offsets, including drop-frame counting for the NTSC frame-rate families.
package timecode
