package caption

import "strings"

// Debug levels emitted by the decoder's log, in severity order.
const (
	LevelUnknown = "UNKNOWN_DEBUG_LEVEL"
	LevelVerbose = "VERBOSE"
	LevelInfo    = "INFO"
	LevelWarn    = "WARN"
	LevelError   = "ERROR"
	LevelFatal   = "FATAL"
	LevelAssert  = "ASSERT"
)

// DebugLevels lists the fixed level set in its defined order.
var DebugLevels = []string{
	LevelUnknown,
	LevelVerbose,
	LevelInfo,
	LevelWarn,
	LevelError,
	LevelFatal,
	LevelAssert,
}

// IsDebugLevel reports whether s is one of the known levels.
func IsDebugLevel(s string) bool {
	for _, level := range DebugLevels {
		if level == s {
			return true
		}
	}
	return false
}

// NormalizeDebugLevel maps arbitrary casing to the canonical level string, or
// returns the empty string for unknown input.
func NormalizeDebugLevel(s string) string {
	upper := strings.ToUpper(strings.TrimSpace(s))
	if upper == "UNKNOWN" {
		upper = LevelUnknown
	}
	if IsDebugLevel(upper) {
		return upper
	}
	return ""
}

// DebugEntry is one structured diagnostic line from the decoder's log, or a
// synthetic entry recorded by the parsers when they skip a bad record.
type DebugEntry struct {
	Level    string `json:"level"`
	Category string `json:"category"`
	Source   string `json:"source"`
	Message  string `json:"message"`
}
