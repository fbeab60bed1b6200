package timecode

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"
)

// ErrMalformedTimecode marks timecode strings that do not parse. Callers are
// expected to skip the offending record rather than abort the file.
var ErrMalformedTimecode = errors.New("malformed timecode")

// Rate is an exact rational frame rate. Display rounding to a float such as
// 29.97 happens only at the edges.
type Rate struct {
	Num int64
	Den int64
}

// Common rates.
var (
	Rate24      = Rate{24, 1}
	Rate25      = Rate{25, 1}
	Rate30      = Rate{30, 1}
	Rate50      = Rate{50, 1}
	Rate60      = Rate{60, 1}
	RateNTSC24  = Rate{24000, 1001}
	RateNTSC30  = Rate{30000, 1001}
	RateNTSC48  = Rate{48000, 1001}
	RateNTSC60  = Rate{60000, 1001}
	RateNTSC120 = Rate{120000, 1001}
)

// RateFromFloat resolves a display frame rate to an exact rational. NTSC
// rates (23.976, 29.97, 59.94, ...) snap to their 1001-denominator forms.
func RateFromFloat(fps float64) (Rate, error) {
	if fps <= 0 || math.IsNaN(fps) || math.IsInf(fps, 0) {
		return Rate{}, fmt.Errorf("invalid frame rate %v", fps)
	}
	ntsc := []Rate{RateNTSC24, RateNTSC30, RateNTSC48, RateNTSC60, RateNTSC120}
	for _, r := range ntsc {
		if math.Abs(fps-r.Float()) < 0.01 {
			return r, nil
		}
	}
	if fps == math.Trunc(fps) {
		return Rate{Num: int64(fps), Den: 1}, nil
	}
	// Fall back to a fixed-precision rational for non-standard rates.
	return Rate{Num: int64(math.Round(fps * 1000)), Den: 1000}, nil
}

// Float returns the display value of the rate (e.g. 29.97).
func (r Rate) Float() float64 {
	if r.Den == 0 {
		return 0
	}
	return float64(r.Num) / float64(r.Den)
}

// TimeBase returns the nominal integer frame count per timecode second,
// e.g. 30 for both 30 and 30000/1001.
func (r Rate) TimeBase() int64 {
	if r.Den == 0 {
		return 0
	}
	return int64(math.Round(r.Float()))
}

// IsNTSC reports whether the rate belongs to a 1001-denominator family, the
// only rates for which drop-frame counting is defined.
func (r Rate) IsNTSC() bool {
	return r.Den == 1001
}

// dropPerMinute returns how many frame numbers drop-frame counting skips at
// the start of each non-tenth minute: 2 for the 29.97 family, 4 for 59.94.
// Rates outside those families do not drop.
func (r Rate) dropPerMinute() int64 {
	switch {
	case r.TimeBase() == 30:
		return 2
	case r.TimeBase() == 60:
		return 4
	default:
		return 0
	}
}

// Parse splits HH:MM:SS:FF (or HH:MM:SS;FF for drop frame) into its fields.
// The frame number must lie in [0, timeBase).
func Parse(tc string, rate Rate) (hours, minutes, seconds, frames int64, err error) {
	fields := strings.FieldsFunc(tc, func(r rune) bool { return r == ':' || r == ';' })
	if len(fields) != 4 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, tc)
	}
	values := make([]int64, 4)
	for i, field := range fields {
		v, convErr := strconv.ParseInt(field, 10, 64)
		if convErr != nil || v < 0 {
			return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, tc)
		}
		values[i] = v
	}
	hours, minutes, seconds, frames = values[0], values[1], values[2], values[3]
	if minutes > 59 || seconds > 59 {
		return 0, 0, 0, 0, fmt.Errorf("%w: %q", ErrMalformedTimecode, tc)
	}
	if base := rate.TimeBase(); base > 0 && frames >= base {
		return 0, 0, 0, 0, fmt.Errorf("%w: frame %d out of range for %v fps: %q", ErrMalformedTimecode, frames, rate.Float(), tc)
	}
	return hours, minutes, seconds, frames, nil
}

// ToMicroseconds converts a timecode string to a microsecond offset.
func ToMicroseconds(tc string, rate Rate, dropFrame bool) (int64, error) {
	hours, minutes, seconds, frames, err := Parse(tc, rate)
	if err != nil {
		return 0, err
	}

	base := rate.TimeBase()
	if dropFrame && rate.IsNTSC() && rate.dropPerMinute() > 0 {
		drop := rate.dropPerMinute()
		totalMinutes := hours*60 + minutes
		dropped := drop * (totalMinutes - totalMinutes/10)
		totalFrames := (hours*3600+minutes*60+seconds)*base + frames - dropped
		return framesToMicroseconds(totalFrames, rate), nil
	}

	// Non-drop: H:M:S are wall-clock seconds, the frame field adds a
	// fraction of a second at the exact rate.
	wall := (hours*3600 + minutes*60 + seconds) * 1_000_000
	return wall + framesToMicroseconds(frames, rate), nil
}

// FromMicroseconds converts a microsecond offset back to a timecode string.
// It is the inverse of ToMicroseconds up to frame-boundary rounding.
func FromMicroseconds(us int64, rate Rate, dropFrame bool) string {
	if us < 0 {
		us = 0
	}
	base := rate.TimeBase()
	if base <= 0 {
		return "00:00:00:00"
	}

	if dropFrame && rate.IsNTSC() && rate.dropPerMinute() > 0 {
		drop := rate.dropPerMinute()
		frames := microsecondsToFrames(us, rate)

		framesPerMin := base*60 - drop
		framesPer10Min := base*600 - 9*drop

		tens := frames / framesPer10Min
		rem := frames % framesPer10Min
		if rem > drop {
			frames += drop*9*tens + drop*((rem-drop)/framesPerMin)
		} else {
			frames += drop * 9 * tens
		}

		fr := frames % base
		sec := (frames / base) % 60
		min := (frames / (base * 60)) % 60
		hr := frames / (base * 3600)
		return fmt.Sprintf("%02d:%02d:%02d:%02d", hr, min, sec, fr)
	}

	wallSeconds := us / 1_000_000
	fr := microsecondsToFrames(us%1_000_000, rate)
	if fr >= base {
		fr = base - 1
	}
	sec := wallSeconds % 60
	min := (wallSeconds / 60) % 60
	hr := wallSeconds / 3600
	return fmt.Sprintf("%02d:%02d:%02d:%02d", hr, min, sec, fr)
}

func framesToMicroseconds(frames int64, rate Rate) int64 {
	// frames * 1e6 * den / num, truncated like the frame clock itself.
	return frames * 1_000_000 * rate.Den / rate.Num
}

func microsecondsToFrames(us int64, rate Rate) int64 {
	// Round to nearest to undo the truncation in framesToMicroseconds.
	half := 1_000_000 * rate.Den / 2
	return (us*rate.Num + half) / (1_000_000 * rate.Den)
}
