// Package detector guesses the language of an input document so the
// source language does not have to be configured by hand.
package detector

import (
	"strings"

	lingua "github.com/pemistahl/lingua-go"

	"github.com/vkozyrev/gemmatran/internal"
)

// sampleRunes bounds how much of the document is fed to the detector;
// whole books add nothing to accuracy.
const sampleRunes = 2000

type Detector struct {
	detector lingua.LanguageDetector
}

// New builds a detector over all languages lingua knows. Construction is
// expensive; reuse the instance.
func New() *Detector {
	return &Detector{
		detector: lingua.NewLanguageDetectorBuilder().
			FromAllLanguages().
			Build(),
	}
}

// Detect returns the detected language of text as a name/code pair. The
// second return is false when the text is empty or too ambiguous.
func (d *Detector) Detect(text string) (internal.Language, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return internal.Language{}, false
	}
	if runes := []rune(text); len(runes) > sampleRunes {
		text = string(runes[:sampleRunes])
	}

	lang, ok := d.detector.DetectLanguageOf(text)
	if !ok {
		return internal.Language{}, false
	}
	return internal.Language{
		Name: lang.String(),
		Code: strings.ToLower(lang.IsoCode639_1().String()),
	}, true
}
