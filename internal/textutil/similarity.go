package textutil

// CosineSimilarity scores the overlap between two fingerprints in [0, 1].
// Returns 0 when either fingerprint is nil or empty.
func CosineSimilarity(a, b *Fingerprint) float64 {
	if a == nil || b == nil || a.norm == 0 || b.norm == 0 {
		return 0
	}
	var dot float64
	for term, count := range a.terms {
		if other, ok := b.terms[term]; ok {
			dot += count * other
		}
	}
	if dot == 0 {
		return 0
	}
	return dot / (a.norm * b.norm)
}
