package caption_test

import (
	"testing"

	"mccread/internal/caption"
)

type stubDetector struct {
	byText map[string]string
	calls  []string
}

func (s *stubDetector) DetectLanguage(text string) (string, bool) {
	s.calls = append(s.calls, text)
	code, ok := s.byText[text]
	return code, ok
}

func TestAnnotateAssignsOneLanguagePerTrack(t *testing.T) {
	result := caption.NewResult(29.97, true)
	result.AddTrack(caption.FormatCEA608, "c1", []caption.Event{
		{StartUS: 0, Text: "Hello there"},
		{StartUS: 1_000_000, Text: "General Kenobi"},
	})
	result.AddTrack(caption.FormatCEA608, "c3", []caption.Event{
		{StartUS: 0, Text: "Hola mundo"},
	})

	detector := &stubDetector{byText: map[string]string{
		"Hello there\nGeneral Kenobi": "eng",
		"Hola mundo":                  "es",
	}}
	caption.Annotate(result, detector)

	if len(detector.calls) != 2 {
		t.Fatalf("expected one detector call per track, got %v", detector.calls)
	}
	// Codes normalize to ISO 639-1 regardless of what the detector returns.
	if got := result.TrackLanguage(caption.FormatCEA608, "c1"); got != "en" {
		t.Fatalf("c1 language = %q", got)
	}
	if got := result.TrackLanguage(caption.FormatCEA608, "c3"); got != "es" {
		t.Fatalf("c3 language = %q", got)
	}
}

func TestAnnotateLeavesUndeterminedTracksUnset(t *testing.T) {
	result := caption.NewResult(29.97, true)
	result.AddTrack(caption.FormatCEA608, "c1", []caption.Event{
		{StartUS: 0, Text: "#$%^&*"},
	})

	caption.Annotate(result, &stubDetector{})

	if got := result.TrackLanguage(caption.FormatCEA608, "c1"); got != "" {
		t.Fatalf("expected no language, got %q", got)
	}
	langs := result.Languages(caption.FormatCEA608)
	if len(langs[caption.FormatCEA608]) != 0 {
		t.Fatalf("expected empty mapping, got %v", langs)
	}
}

func TestAnnotateSkipsBlankTracksAndNilDetector(t *testing.T) {
	result := caption.NewResult(29.97, true)
	result.AddTrack(caption.FormatCEA708, "s1", []caption.Event{
		{StartUS: 0, Text: ""},
	})

	detector := &stubDetector{}
	caption.Annotate(result, detector)
	if len(detector.calls) != 0 {
		t.Fatalf("expected no detector calls for blank track, got %v", detector.calls)
	}

	caption.Annotate(result, nil) // must not panic
}
