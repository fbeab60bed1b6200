package timecode_test

import (
	"errors"
	"fmt"
	"strings"
	"testing"

	"mccread/internal/timecode"
)

func TestToMicrosecondsDropFrame(t *testing.T) {
	cases := []struct {
		tc   string
		want int64
	}{
		{"00:00:07:09", 7_307_300},
		{"00:00:09:02", 9_075_733},
		{"00:01:00:02", 60_060_000},
		{"00:00:00:00", 0},
	}
	for _, tt := range cases {
		got, err := timecode.ToMicroseconds(tt.tc, timecode.RateNTSC30, true)
		if err != nil {
			t.Fatalf("ToMicroseconds(%q) returned error: %v", tt.tc, err)
		}
		if got != tt.want {
			t.Fatalf("ToMicroseconds(%q) = %d, want %d", tt.tc, got, tt.want)
		}
	}
}

func TestToMicrosecondsNonDrop(t *testing.T) {
	got, err := timecode.ToMicroseconds("01:02:03:12", timecode.Rate24, false)
	if err != nil {
		t.Fatalf("ToMicroseconds returned error: %v", err)
	}
	want := int64(1*3600+2*60+3)*1_000_000 + 12*1_000_000/24
	if got != want {
		t.Fatalf("got %d, want %d", got, want)
	}
}

func TestToMicrosecondsSemicolonSeparator(t *testing.T) {
	colon, err := timecode.ToMicroseconds("00:00:07:09", timecode.RateNTSC30, true)
	if err != nil {
		t.Fatalf("colon form: %v", err)
	}
	semi, err := timecode.ToMicroseconds("00:00:07;09", timecode.RateNTSC30, true)
	if err != nil {
		t.Fatalf("semicolon form: %v", err)
	}
	if colon != semi {
		t.Fatalf("separator changed the value: %d vs %d", colon, semi)
	}
}

func TestMalformedTimecode(t *testing.T) {
	bad := []string{"", "00:00:00", "a:b:c:d", "00:61:00:00", "00:00:00:30", "00:00:00:-1"}
	for _, tc := range bad {
		if _, err := timecode.ToMicroseconds(tc, timecode.RateNTSC30, true); !errors.Is(err, timecode.ErrMalformedTimecode) {
			t.Fatalf("ToMicroseconds(%q): expected ErrMalformedTimecode, got %v", tc, err)
		}
	}
}

func TestRoundTripDropFrame(t *testing.T) {
	for hour := int64(0); hour < 2; hour++ {
		for minute := int64(0); minute < 60; minute++ {
			for _, second := range []int64{0, 1, 29, 59} {
				for _, frame := range []int64{0, 1, 2, 15, 29} {
					if second == 0 && frame < 2 && minute%10 != 0 {
						// Dropped frame numbers do not exist.
						continue
					}
					tc := fmt.Sprintf("%02d:%02d:%02d:%02d", hour, minute, second, frame)
					us, err := timecode.ToMicroseconds(tc, timecode.RateNTSC30, true)
					if err != nil {
						t.Fatalf("ToMicroseconds(%q): %v", tc, err)
					}
					back := timecode.FromMicroseconds(us, timecode.RateNTSC30, true)
					if back != tc {
						t.Fatalf("round trip %q -> %d -> %q", tc, us, back)
					}
				}
			}
		}
	}
}

func TestRoundTripNonDrop(t *testing.T) {
	rates := []timecode.Rate{timecode.Rate24, timecode.Rate25, timecode.Rate30, timecode.RateNTSC30}
	for _, rate := range rates {
		base := rate.TimeBase()
		for _, frame := range []int64{0, 1, base / 2, base - 1} {
			tc := fmt.Sprintf("00:10:30:%02d", frame)
			us, err := timecode.ToMicroseconds(tc, rate, false)
			if err != nil {
				t.Fatalf("rate %v ToMicroseconds(%q): %v", rate.Float(), tc, err)
			}
			back := timecode.FromMicroseconds(us, rate, false)
			if back != tc {
				t.Fatalf("rate %v round trip %q -> %d -> %q", rate.Float(), tc, us, back)
			}
		}
	}
}

func TestDroppedFrameNumbersNeverGenerated(t *testing.T) {
	// Scan an hour of frame-aligned offsets; 00 and 01 must not appear at
	// the start of non-ten-divisible minutes.
	for frames := int64(0); frames < 30*60*60; frames += 7 {
		us := frames * 1_000_000 * 1001 / 30000
		tc := timecode.FromMicroseconds(us, timecode.RateNTSC30, true)
		var h, m, s, f int64
		if _, err := fmt.Sscanf(tc, "%02d:%02d:%02d:%02d", &h, &m, &s, &f); err != nil {
			t.Fatalf("unparseable generated timecode %q", tc)
		}
		if s == 0 && m%10 != 0 && f < 2 {
			t.Fatalf("generated dropped frame number: %q", tc)
		}
	}
}

func TestConsecutiveFrameDelta(t *testing.T) {
	// Consecutive non-dropped frames must be 1e6*1001/30000 microseconds
	// apart, within one microsecond of truncation jitter.
	const exact = 1_000_000.0 * 1001.0 / 30000.0
	prev, err := timecode.ToMicroseconds("00:04:59:29", timecode.RateNTSC30, true)
	if err != nil {
		t.Fatal(err)
	}
	next, err := timecode.ToMicroseconds("00:05:00:02", timecode.RateNTSC30, true)
	if err != nil {
		t.Fatal(err)
	}
	delta := float64(next - prev)
	if delta < exact-1 || delta > exact+1 {
		t.Fatalf("minute-boundary frame delta %v, want ~%v", delta, exact)
	}
}

func TestRateFromFloat(t *testing.T) {
	cases := []struct {
		fps  float64
		want timecode.Rate
	}{
		{29.97, timecode.RateNTSC30},
		{23.976, timecode.RateNTSC24},
		{59.94, timecode.RateNTSC60},
		{24, timecode.Rate24},
		{30, timecode.Rate30},
	}
	for _, tt := range cases {
		got, err := timecode.RateFromFloat(tt.fps)
		if err != nil {
			t.Fatalf("RateFromFloat(%v): %v", tt.fps, err)
		}
		if got != tt.want {
			t.Fatalf("RateFromFloat(%v) = %v, want %v", tt.fps, got, tt.want)
		}
	}
	if _, err := timecode.RateFromFloat(0); err == nil {
		t.Fatal("expected error for zero rate")
	}
}

func TestFromMicrosecondsNegativeClamps(t *testing.T) {
	if tc := timecode.FromMicroseconds(-5, timecode.RateNTSC30, true); !strings.HasPrefix(tc, "00:00:00") {
		t.Fatalf("negative offset should clamp to zero, got %q", tc)
	}
}
