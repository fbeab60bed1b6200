package caption

import (
	"strings"

	"mccread/internal/language"
)

// LanguageDetector is the capability the annotation pass consumes. The
// boolean is false when no confident determination is possible.
type LanguageDetector interface {
	DetectLanguage(text string) (string, bool)
}

// Annotate runs one language-detection pass over the result, assigning at
// most one language per track. Each track's event text is concatenated in
// chronological order with line breaks preserved, which gives the detector
// more signal than per-event calls. Tracks with no confident detection stay
// unannotated; a detector failure never invalidates the result.
func Annotate(r *Result, detector LanguageDetector) {
	if detector == nil {
		return
	}
	for _, format := range Formats {
		for _, track := range sortedKeys(r.Captions[format]) {
			events := r.Captions[format][track]
			var b strings.Builder
			for _, event := range events {
				if event.Text == "" {
					continue
				}
				if b.Len() > 0 {
					b.WriteByte('\n')
				}
				b.WriteString(event.Text)
			}
			text := b.String()
			if strings.TrimSpace(text) == "" {
				continue
			}
			if code, ok := detector.DetectLanguage(text); ok {
				r.SetTrackLanguage(format, track, language.ToISO2(code))
			}
		}
	}
}
