package caption

import (
	"sort"

	"mccread/internal/textutil"
)

// SearchMatch is one event ranked against a search query.
type SearchMatch struct {
	Format string  `json:"format"`
	Track  string  `json:"track"`
	Score  float64 `json:"score"`
	Event  Event   `json:"event"`
}

// Search ranks events by textual similarity to query, best match first.
// Term weights are IDF-adjusted over all events of the result so filler
// words common to every caption line do not dominate the ranking. A limit
// of 0 or less returns all matches.
func (r *Result) Search(query string, limit int) []SearchMatch {
	queryFP := textutil.NewFingerprint(query)
	if queryFP == nil {
		return nil
	}

	type candidate struct {
		format string
		track  string
		event  Event
		fp     *textutil.Fingerprint
	}

	corpus := textutil.NewCorpus()
	var candidates []candidate
	for _, format := range Formats {
		tracks := r.Captions[format]
		for _, track := range sortedKeys(tracks) {
			for _, event := range tracks[track] {
				fp := textutil.NewFingerprint(event.Text)
				if fp == nil {
					continue
				}
				corpus.Add(fp)
				candidates = append(candidates, candidate{format, track, event, fp})
			}
		}
	}

	idf := corpus.IDF()
	queryFP = queryFP.WithIDF(idf)

	var matches []SearchMatch
	for _, c := range candidates {
		score := textutil.CosineSimilarity(queryFP, c.fp.WithIDF(idf))
		if score <= 0 {
			continue
		}
		matches = append(matches, SearchMatch{
			Format: c.format,
			Track:  c.track,
			Score:  score,
			Event:  c.event,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].Score != matches[j].Score {
			return matches[i].Score > matches[j].Score
		}
		return matches[i].Event.StartUS < matches[j].Event.StartUS
	})
	if limit > 0 && len(matches) > limit {
		matches = matches[:limit]
	}
	return matches
}
