package textutil

import (
	"math"
	"regexp"
	"strings"
)

// tokenSplitPattern matches non-alphanumeric runs for tokenization.
var tokenSplitPattern = regexp.MustCompile(`[^a-z0-9']+`)

// Fingerprint is a term-frequency vector over caption text, used to rank
// events against a search query.
type Fingerprint struct {
	terms map[string]float64
	norm  float64
}

// NewFingerprint builds a fingerprint from text. Returns nil when the text
// yields no usable terms.
func NewFingerprint(text string) *Fingerprint {
	terms := Tokenize(text)
	if len(terms) == 0 {
		return nil
	}
	counts := make(map[string]float64, len(terms))
	for _, term := range terms {
		counts[term]++
	}
	var norm float64
	for _, count := range counts {
		norm += count * count
	}
	return &Fingerprint{
		terms: counts,
		norm:  math.Sqrt(norm),
	}
}

// Tokenize lowercases text and splits it into terms. Caption lines are short,
// so single-character fragments and stray punctuation are dropped but
// two-letter words are kept.
func Tokenize(text string) []string {
	lowered := strings.ToLower(text)
	raw := tokenSplitPattern.Split(lowered, -1)
	terms := make([]string, 0, len(raw))
	for _, term := range raw {
		term = strings.Trim(term, "'")
		if len(term) < 2 {
			continue
		}
		terms = append(terms, term)
	}
	return terms
}

// TermCount returns the number of distinct terms in the fingerprint.
func (f *Fingerprint) TermCount() int {
	if f == nil {
		return 0
	}
	return len(f.terms)
}

// WithIDF reweights the fingerprint by inverse document frequency so common
// filler words contribute less to the match score. Terms missing from the
// weight map keep their raw counts.
func (f *Fingerprint) WithIDF(idf map[string]float64) *Fingerprint {
	if f == nil || len(idf) == 0 {
		return f
	}
	weighted := make(map[string]float64, len(f.terms))
	var norm float64
	for term, count := range f.terms {
		w := count
		if idfVal, ok := idf[term]; ok {
			w *= idfVal
		}
		if w == 0 {
			continue
		}
		weighted[term] = w
		norm += w * w
	}
	if len(weighted) == 0 {
		return nil
	}
	return &Fingerprint{
		terms: weighted,
		norm:  math.Sqrt(norm),
	}
}

// Corpus accumulates document frequencies across caption events so searches
// can discount terms that appear everywhere.
type Corpus struct {
	docCount int
	docFreq  map[string]int
}

// NewCorpus returns an empty corpus.
func NewCorpus() *Corpus {
	return &Corpus{docFreq: make(map[string]int)}
}

// Add registers a fingerprint's distinct terms in the corpus.
func (c *Corpus) Add(fp *Fingerprint) {
	if c == nil || fp == nil {
		return
	}
	c.docCount++
	for term := range fp.terms {
		c.docFreq[term]++
	}
}

// IDF returns log((N+1)/(1+df)) weights for every term seen by the corpus.
func (c *Corpus) IDF() map[string]float64 {
	if c == nil || c.docCount == 0 {
		return nil
	}
	idf := make(map[string]float64, len(c.docFreq))
	n := float64(c.docCount)
	for term, df := range c.docFreq {
		idf[term] = math.Log((n + 1) / (1 + float64(df)))
	}
	return idf
}
