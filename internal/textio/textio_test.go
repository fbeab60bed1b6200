package textio_test

import (
	"os"
	"path/filepath"
	"testing"

	"mccread/internal/textio"
)

func TestDecodeUTF8Passthrough(t *testing.T) {
	if got := textio.Decode([]byte("héllo")); got != "héllo" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeStripsBOM(t *testing.T) {
	data := append([]byte{0xEF, 0xBB, 0xBF}, []byte("plain")...)
	if got := textio.Decode(data); got != "plain" {
		t.Fatalf("got %q", got)
	}
}

func TestDecodeLatin1Fallback(t *testing.T) {
	// 0xE9 is é in Latin-1 and invalid as standalone UTF-8.
	if got := textio.Decode([]byte{'c', 'a', 'f', 0xE9}); got != "café" {
		t.Fatalf("got %q", got)
	}
}

func TestReadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "sample.608")
	if err := os.WriteFile(path, []byte("content"), 0o644); err != nil {
		t.Fatal(err)
	}
	got, err := textio.ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile: %v", err)
	}
	if got != "content" {
		t.Fatalf("got %q", got)
	}
	if _, err := textio.ReadFile(filepath.Join(t.TempDir(), "missing")); err == nil {
		t.Fatal("expected error for missing file")
	}
}
