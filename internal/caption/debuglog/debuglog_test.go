package debuglog_test

import (
	"os"
	"path/filepath"
	"testing"

	"mccread/internal/caption"
	"mccread/internal/caption/debuglog"
)

const sampleLog = `INFO DBG_GENERAL [main.c:101] - Starting decode
WARN DBG_708_DEC [dtvcc_decode.c:342] - Mismatch in Packet length
this line does not follow the grammar
UNKNOWN_DEBUG_LEVEL DBG_608_DEC [line21_decode.c:88] - Odd parity byte

ERROR DBG_FILE [file_io.c:12] - Short read on payload
`

func TestParseKeepsOrderAndDropsUnmatched(t *testing.T) {
	entries := debuglog.Parse(sampleLog)
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}
	want := []caption.DebugEntry{
		{Level: caption.LevelInfo, Category: "DBG_GENERAL", Source: "main.c:101", Message: "Starting decode"},
		{Level: caption.LevelWarn, Category: "DBG_708_DEC", Source: "dtvcc_decode.c:342", Message: "Mismatch in Packet length"},
		{Level: caption.LevelUnknown, Category: "DBG_608_DEC", Source: "line21_decode.c:88", Message: "Odd parity byte"},
		{Level: caption.LevelError, Category: "DBG_FILE", Source: "file_io.c:12", Message: "Short read on payload"},
	}
	for i, entry := range entries {
		if entry != want[i] {
			t.Errorf("entry %d = %+v, want %+v", i, entry, want[i])
		}
	}
}

func TestParseEmptyContent(t *testing.T) {
	if entries := debuglog.Parse(""); len(entries) != 0 {
		t.Fatalf("expected no entries, got %v", entries)
	}
}

func TestParseFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "movie.dbg")
	if err := os.WriteFile(path, []byte(sampleLog), 0o644); err != nil {
		t.Fatal(err)
	}
	entries, err := debuglog.ParseFile(path)
	if err != nil {
		t.Fatalf("ParseFile: %v", err)
	}
	if len(entries) != 4 {
		t.Fatalf("expected 4 entries, got %d", len(entries))
	}

	if _, err := debuglog.ParseFile(filepath.Join(t.TempDir(), "missing.dbg")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
