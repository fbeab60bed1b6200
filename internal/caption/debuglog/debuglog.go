// Package debuglog parses the decoder's debug log artifact into structured
// entries.
package debuglog

import (
	"regexp"
	"strings"

	"mccread/internal/caption"
	"mccread/internal/textio"
)

// Pattern: LEVEL CATEGORY [source:line] - message
// Example: WARN DBG_708_DEC [dtvcc_decode.c:342] - Mismatch in Packet length
var entryPattern = regexp.MustCompile(
	`^(` + strings.Join(caption.DebugLevels, "|") + `)\s+(\S+)\s+\[([^\]]+)\]\s+-\s+(.*)$`,
)

// ParseFile parses a debug log artifact.
func ParseFile(path string) ([]caption.DebugEntry, error) {
	content, err := textio.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Parse(content), nil
}

// Parse extracts entries in their original order. Lines that do not match the
// grammar are dropped; the log is diagnostic output, so partial parses are
// acceptable where they would not be for caption data.
func Parse(content string) []caption.DebugEntry {
	var entries []caption.DebugEntry
	for _, raw := range strings.Split(content, "\n") {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}
		m := entryPattern.FindStringSubmatch(line)
		if m == nil {
			continue
		}
		entries = append(entries, caption.DebugEntry{
			Level:    m[1],
			Category: m[2],
			Source:   m[3],
			Message:  m[4],
		})
	}
	return entries
}
