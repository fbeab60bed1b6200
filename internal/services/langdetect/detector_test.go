package langdetect_test

import (
	"testing"

	"mccread/internal/services/langdetect"
)

func TestDetectLanguage(t *testing.T) {
	detector := langdetect.New()

	code, ok := detector.DetectLanguage("The quick brown fox jumps over the lazy dog near the riverbank.")
	if !ok {
		t.Fatal("expected a confident detection for English prose")
	}
	if code != "en" {
		t.Fatalf("code = %q, want en", code)
	}
}

func TestDetectLanguageEmptyText(t *testing.T) {
	detector := langdetect.New()

	if code, ok := detector.DetectLanguage("   \n  "); ok {
		t.Fatalf("expected no detection for blank text, got %q", code)
	}
}
