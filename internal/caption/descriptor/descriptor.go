// Package descriptor parses the decoder's .ccd side artifact, which carries
// the frame rate and drop-frame flag for a decode run.
package descriptor

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"mccread/internal/timecode"
)

// ErrMissingDescriptor marks a descriptor without a usable frame rate. No
// correct timing is possible without one, so this aborts the run; the frame
// rate is never guessed.
var ErrMissingDescriptor = errors.New("missing descriptor")

// Info is the parsed descriptor content.
type Info struct {
	Rate      timecode.Rate
	DropFrame bool
}

// FPS returns the display frame rate.
func (i Info) FPS() float64 {
	return i.Rate.Float()
}

// Parse reads the descriptor stream and extracts the frame rate and
// drop-frame flag. The descriptor reports nominal rates (24, 30, 60); when
// drop frame is set those map to their exact NTSC rationals, since drop-frame
// counting only exists for the 1001-denominator families.
func Parse(r io.Reader) (Info, error) {
	var (
		fps       float64
		haveFPS   bool
		dropFrame bool
		haveDrop  bool
	)

	scanner := bufio.NewScanner(r)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		switch {
		case strings.HasPrefix(line, "Frame Rate="):
			value := strings.TrimPrefix(line, "Frame Rate=")
			parsed, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
			if err == nil && parsed > 0 {
				fps = parsed
				haveFPS = true
			}
		case strings.HasPrefix(line, "Drop Frame="):
			value := strings.TrimSpace(strings.TrimPrefix(line, "Drop Frame="))
			dropFrame = strings.EqualFold(value, "true")
			haveDrop = true
		}
		if haveFPS && haveDrop {
			// Both fields appear early; no need to scan the rest.
			break
		}
	}
	if err := scanner.Err(); err != nil {
		return Info{}, fmt.Errorf("read descriptor: %w", err)
	}
	if !haveFPS {
		return Info{}, fmt.Errorf("%w: no frame rate found", ErrMissingDescriptor)
	}

	rate, err := resolveRate(fps, dropFrame)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrMissingDescriptor, err)
	}
	return Info{Rate: rate, DropFrame: dropFrame}, nil
}

// ParseFile parses the descriptor artifact at path.
func ParseFile(path string) (Info, error) {
	f, err := os.Open(path)
	if err != nil {
		return Info{}, fmt.Errorf("%w: %v", ErrMissingDescriptor, err)
	}
	defer f.Close()
	return Parse(f)
}

func resolveRate(fps float64, dropFrame bool) (timecode.Rate, error) {
	if dropFrame {
		switch fps {
		case 24:
			return timecode.RateNTSC24, nil
		case 30:
			return timecode.RateNTSC30, nil
		case 48:
			return timecode.RateNTSC48, nil
		case 60:
			return timecode.RateNTSC60, nil
		case 120:
			return timecode.RateNTSC120, nil
		}
	}
	return timecode.RateFromFloat(fps)
}
