package caption_test

import (
	"testing"

	"mccread/internal/caption"
)

func searchResult() *caption.Result {
	result := caption.NewResult(29.97, true)
	result.AddTrack(caption.FormatCEA608, "c1", []caption.Event{
		{StartUS: 1_000_000, StartTimecode: "00:00:01:00", Text: "Good evening from the newsroom"},
		{StartUS: 4_000_000, StartTimecode: "00:00:04:00", Text: "A severe thunderstorm warning is in effect"},
		{StartUS: 8_000_000, StartTimecode: "00:00:08:00", Text: "Sports are up next"},
	})
	result.AddTrack(caption.FormatCEA708, "s1", []caption.Event{
		{StartUS: 4_100_000, StartTimecode: "00:00:04:03", Text: "Thunderstorm warning for the metro area"},
	})
	return result
}

func TestSearchRanksClosestMatchFirst(t *testing.T) {
	result := searchResult()

	matches := result.Search("thunderstorm warning", 0)
	if len(matches) != 2 {
		t.Fatalf("expected 2 matches, got %d", len(matches))
	}
	for _, m := range matches {
		if m.Score <= 0 {
			t.Fatalf("match %q has non-positive score %v", m.Event.Text, m.Score)
		}
	}
	if matches[0].Score < matches[1].Score {
		t.Fatalf("matches not sorted by score: %v then %v", matches[0].Score, matches[1].Score)
	}
}

func TestSearchSpansFormats(t *testing.T) {
	result := searchResult()

	matches := result.Search("thunderstorm", 0)
	formats := make(map[string]bool)
	for _, m := range matches {
		formats[m.Format] = true
	}
	if !formats[caption.FormatCEA608] || !formats[caption.FormatCEA708] {
		t.Fatalf("expected matches from both standards, got %v", formats)
	}
}

func TestSearchLimit(t *testing.T) {
	result := searchResult()

	matches := result.Search("thunderstorm warning", 1)
	if len(matches) != 1 {
		t.Fatalf("expected 1 match with limit, got %d", len(matches))
	}
}

func TestSearchNoMatch(t *testing.T) {
	result := searchResult()

	if matches := result.Search("xylophone", 0); matches != nil {
		t.Fatalf("expected no matches, got %v", matches)
	}
}

func TestSearchEmptyQuery(t *testing.T) {
	result := searchResult()

	if matches := result.Search("", 0); matches != nil {
		t.Fatalf("expected no matches for empty query, got %v", matches)
	}
	if matches := result.Search(">> ...", 0); matches != nil {
		t.Fatalf("expected no matches for punctuation query, got %v", matches)
	}
}

func TestSearchEmptyResult(t *testing.T) {
	result := caption.NewResult(29.97, true)
	if matches := result.Search("hello", 0); matches != nil {
		t.Fatalf("expected no matches on empty result, got %v", matches)
	}
}
