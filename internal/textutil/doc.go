// Package textutil provides term-frequency fingerprints and cosine similarity
// for searching caption text.
//
// Caption events carry short lines of dialogue, so tokenization keeps
// two-letter words and strips punctuation rather than filtering aggressively.
// A Corpus built over all events of a decode supplies IDF weights that push
// filler words down the ranking.
package textutil
