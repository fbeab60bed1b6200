package caption

import (
	"sort"
	"strconv"
)

// FormatsPresent returns the standards that carry at least one track, in
// canonical order.
func (r *Result) FormatsPresent() []string {
	var present []string
	for _, format := range Formats {
		if len(r.Captions[format]) > 0 {
			present = append(present, format)
		}
	}
	return present
}

// Tracks returns track ids grouped by standard. With a format argument only
// that standard's bucket is populated. Unknown formats yield an empty map,
// not an error.
func (r *Result) Tracks(format ...string) map[string][]string {
	result := make(map[string][]string)
	for _, f := range r.selectFormats(format) {
		ids := make([]string, 0, len(r.Captions[f]))
		for id := range r.Captions[f] {
			ids = append(ids, id)
		}
		sortTrackIDs(ids)
		result[f] = ids
	}
	return result
}

// TrackEvents returns the ordered event sequence for one track, or nil when
// the standard or track is absent.
func (r *Result) TrackEvents(format, track string) []Event {
	return r.Captions[format][track]
}

// Filter narrows a caption query.
type Filter struct {
	Format   string
	Track    string
	Language string
}

// Query returns the matching events grouped as format -> track -> events.
// Filtering is a pure read over the result; absence of data yields empty
// maps. The language filter matches the annotated track language.
func (r *Result) Query(filter Filter) map[string]map[string][]Event {
	out := make(map[string]map[string][]Event)
	var formats []string
	if filter.Format != "" {
		formats = []string{filter.Format}
	} else {
		formats = Formats
	}
	for _, format := range formats {
		tracks := r.Captions[format]
		for _, track := range sortedKeys(tracks) {
			if filter.Track != "" && track != filter.Track {
				continue
			}
			if filter.Language != "" && r.TrackLanguage(format, track) != filter.Language {
				continue
			}
			if out[format] == nil {
				out[format] = make(map[string][]Event)
			}
			out[format][track] = tracks[track]
		}
	}
	return out
}

// Languages returns detected language codes grouped by standard. Tracks
// without a confident detection are absent from the mapping.
func (r *Result) Languages(format ...string) map[string]map[string]string {
	result := make(map[string]map[string]string)
	for _, f := range r.selectFormats(format) {
		bucket := make(map[string]string)
		for track, code := range r.Metadata.Languages[f] {
			bucket[track] = code
		}
		result[f] = bucket
	}
	return result
}

// TrackLanguage returns the annotated language for one track, or "" when
// undetermined.
func (r *Result) TrackLanguage(format, track string) string {
	return r.Metadata.Languages[format][track]
}

// SetTrackLanguage records the annotation result for a track. This is the
// only mutation permitted after the parse pass.
func (r *Result) SetTrackLanguage(format, track, code string) {
	if code == "" {
		return
	}
	if r.Metadata.Languages == nil {
		r.Metadata.Languages = make(map[string]map[string]string)
	}
	if r.Metadata.Languages[format] == nil {
		r.Metadata.Languages[format] = make(map[string]string)
	}
	r.Metadata.Languages[format][track] = code
}

// Debug returns the diagnostic entries, optionally filtered by level.
func (r *Result) Debug(level ...string) []DebugEntry {
	if len(level) == 0 || level[0] == "" {
		return r.Metadata.Debug
	}
	want := NormalizeDebugLevel(level[0])
	var entries []DebugEntry
	for _, entry := range r.Metadata.Debug {
		if entry.Level == want {
			entries = append(entries, entry)
		}
	}
	return entries
}

// AddDebug appends a diagnostic entry.
func (r *Result) AddDebug(entries ...DebugEntry) {
	r.Metadata.Debug = append(r.Metadata.Debug, entries...)
}

func (r *Result) selectFormats(requested []string) []string {
	if len(requested) == 0 || requested[0] == "" {
		return Formats
	}
	return requested[:1]
}

func sortedKeys(m map[string][]Event) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sortTrackIDs(keys)
	return keys
}

// sortTrackIDs orders track ids by their numeric suffix so DTVCC services
// past s9 do not interleave (s1, s2, ..., s10 rather than s1, s10, s2).
func sortTrackIDs(ids []string) {
	sort.Slice(ids, func(i, j int) bool {
		pi, ni := splitTrackID(ids[i])
		pj, nj := splitTrackID(ids[j])
		if pi != pj {
			return pi < pj
		}
		if ni != nj {
			return ni < nj
		}
		return ids[i] < ids[j]
	})
}

func splitTrackID(id string) (string, int) {
	i := len(id)
	for i > 0 && id[i-1] >= '0' && id[i-1] <= '9' {
		i--
	}
	n, err := strconv.Atoi(id[i:])
	if err != nil {
		return id, -1
	}
	return id[:i], n
}
