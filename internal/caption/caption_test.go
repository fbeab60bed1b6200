package caption_test

import (
	"reflect"
	"testing"

	"mccread/internal/caption"
)

func sampleResult() *caption.Result {
	end := int64(9_075_733)
	endTC := "00:00:09:02"
	result := caption.NewResult(29.97, true)
	result.AddTrack(caption.FormatCEA608, "c1", []caption.Event{
		{StartUS: 7_307_300, StartTimecode: "00:00:07:09", EndUS: &end, EndTimecode: &endTC, Text: "Hello World"},
		{StartUS: 10_000_000, StartTimecode: "00:00:10:00", Text: "Still open"},
	})
	result.AddTrack(caption.FormatCEA608, "c3", []caption.Event{
		{StartUS: 1_000_000, StartTimecode: "00:00:01:00", Text: "Hola"},
	})
	result.SetTrackLanguage(caption.FormatCEA608, "c1", "en")
	result.SetTrackLanguage(caption.FormatCEA608, "c3", "es")
	result.AddDebug(caption.DebugEntry{Level: caption.LevelWarn, Category: "DBG_708_DEC", Source: "dtvcc_decode.c:342", Message: "packet length mismatch"})
	return result
}

func TestFormatsPresent(t *testing.T) {
	result := sampleResult()
	if got := result.FormatsPresent(); !reflect.DeepEqual(got, []string{"cea608"}) {
		t.Fatalf("FormatsPresent() = %v", got)
	}
}

func TestTracksSortedByID(t *testing.T) {
	result := sampleResult()
	tracks := result.Tracks()
	if !reflect.DeepEqual(tracks["cea608"], []string{"c1", "c3"}) {
		t.Fatalf("cea608 tracks = %v", tracks["cea608"])
	}
	if len(tracks["cea708"]) != 0 {
		t.Fatalf("expected no cea708 tracks, got %v", tracks["cea708"])
	}
}

func TestTracksOrderServicesNumerically(t *testing.T) {
	result := caption.NewResult(29.97, true)
	for _, id := range []string{"s10", "s2", "s1"} {
		result.AddTrack(caption.FormatCEA708, id, []caption.Event{
			{StartUS: 0, StartTimecode: "00:00:00:00", Text: "x"},
		})
	}

	tracks := result.Tracks()
	if !reflect.DeepEqual(tracks["cea708"], []string{"s1", "s2", "s10"}) {
		t.Fatalf("cea708 tracks = %v", tracks["cea708"])
	}

	queried := result.Query(caption.Filter{Format: "cea708"})
	got := make([]string, 0, len(queried["cea708"]))
	for id := range queried["cea708"] {
		got = append(got, id)
	}
	if len(got) != 3 {
		t.Fatalf("queried tracks = %v", got)
	}
}

func TestQueryFilters(t *testing.T) {
	result := sampleResult()

	all := result.Query(caption.Filter{Format: "cea608"})
	if len(all["cea608"]) != 2 {
		t.Fatalf("expected 2 tracks, got %d", len(all["cea608"]))
	}

	// Union of per-track queries equals the unfiltered query.
	union := make(map[string][]caption.Event)
	for _, track := range result.Tracks("cea608")["cea608"] {
		one := result.Query(caption.Filter{Format: "cea608", Track: track})
		union[track] = one["cea608"][track]
	}
	if !reflect.DeepEqual(all["cea608"], union) {
		t.Fatal("per-track union differs from aggregate query")
	}

	spanish := result.Query(caption.Filter{Language: "es"})
	if len(spanish["cea608"]) != 1 || spanish["cea608"]["c3"] == nil {
		t.Fatalf("language filter: %v", spanish)
	}
}

func TestQueryUnknownIsEmpty(t *testing.T) {
	result := sampleResult()
	if got := result.Query(caption.Filter{Format: "cea708"}); len(got) != 0 {
		t.Fatalf("unknown format query should be empty, got %v", got)
	}
	if got := result.TrackEvents("cea608", "c9"); got != nil {
		t.Fatalf("unknown track should be nil, got %v", got)
	}
	langs := result.Languages("cea708")
	if len(langs["cea708"]) != 0 {
		t.Fatalf("expected empty language mapping, got %v", langs)
	}
}

func TestEventOrderingInvariant(t *testing.T) {
	result := sampleResult()
	for format, tracks := range result.Captions {
		for track, events := range tracks {
			for i := 1; i < len(events); i++ {
				if events[i].StartUS <= events[i-1].StartUS {
					t.Fatalf("%s/%s events not strictly increasing at %d", format, track, i)
				}
				if prev := events[i-1].EndUS; prev != nil && *prev > events[i].StartUS {
					t.Fatalf("%s/%s events overlap at %d", format, track, i)
				}
			}
		}
	}
}

func TestDebugLevelFilter(t *testing.T) {
	result := sampleResult()
	if got := result.Debug("warn"); len(got) != 1 {
		t.Fatalf("expected 1 warn entry, got %d", len(got))
	}
	if got := result.Debug(caption.LevelFatal); len(got) != 0 {
		t.Fatalf("expected no fatal entries, got %d", len(got))
	}
	if got := result.Debug(); len(got) != 1 {
		t.Fatalf("expected all entries, got %d", len(got))
	}
}

func TestJSONRoundTrip(t *testing.T) {
	result := sampleResult()
	result.Metadata.InputFile = "/media/sample.mcc"
	result.Metadata.SourceDir = "/tmp/out"
	result.Metadata.OutputFiles = []string{"/tmp/out/sample-C1.608", "/tmp/out/sample.ccd"}

	data, err := result.EncodeJSON()
	if err != nil {
		t.Fatalf("EncodeJSON: %v", err)
	}
	back, err := caption.DecodeJSON(data)
	if err != nil {
		t.Fatalf("DecodeJSON: %v", err)
	}
	if !reflect.DeepEqual(result, back) {
		t.Fatal("round trip altered the result")
	}
}

func TestNormalizeDebugLevel(t *testing.T) {
	cases := map[string]string{
		"warn":    caption.LevelWarn,
		"WARN":    caption.LevelWarn,
		"unknown": caption.LevelUnknown,
		"nope":    "",
	}
	for input, want := range cases {
		if got := caption.NormalizeDebugLevel(input); got != want {
			t.Fatalf("NormalizeDebugLevel(%q) = %q, want %q", input, got, want)
		}
	}
}
