// Package langdetect identifies the natural language of caption text. It is
// consumed as a pure text -> language-code function so the annotation pass
// can be tested without loading detection models.
package langdetect

import (
	"strings"

	"github.com/pemistahl/lingua-go"
)

// Detector reports the ISO 639-1 code of a text's language. The boolean is
// false when no confident determination is possible.
type Detector interface {
	DetectLanguage(text string) (string, bool)
}

type linguaDetector struct {
	detector lingua.LanguageDetector
}

// New builds a detector backed by lingua's statistical models for all spoken
// languages. Construction is expensive; share one instance per process.
func New() Detector {
	return linguaDetector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllSpokenLanguages().
			Build(),
	}
}

func (d linguaDetector) DetectLanguage(text string) (string, bool) {
	if strings.TrimSpace(text) == "" {
		return "", false
	}
	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return "", false
	}
	return strings.ToLower(lang.IsoCode639_1().String()), true
}
