package cea708

import (
	"fmt"
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mccread/internal/caption"
	"mccread/internal/textio"
	"mccread/internal/timecode"
)

var (
	recordPattern = regexp.MustCompile(`^(\d{2}:\d{2}:\d{2}[:;]\d{2})\s*-\s*(.*)$`)
	quotedText    = regexp.MustCompile(`"([^"]*)"`)
	splPattern    = regexp.MustCompile(`\{SPL:R(\d+)-C(\d+)\}`)
	trackPattern  = regexp.MustCompile(`-S(\d+)\.708$`)
)

// TrackID derives the service id from a decode artifact name, e.g.
// "BigBuckBunny-S1.708" -> "s1". Empty when the name does not follow the
// decoder's convention.
func TrackID(filename string) string {
	m := trackPattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return "s" + m[1]
}

// ParseFile parses one service's decode artifact.
func ParseFile(path string, rate timecode.Rate, dropFrame bool) ([]caption.Event, []caption.DebugEntry, error) {
	content, err := textio.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	events, diags := Parse(content, rate, dropFrame)
	return events, diags, nil
}

// Parse reconstructs caption events from a DTVCC decode stream.
//
// Window commands drive event boundaries: a record carrying text together
// with a window display ({DSW}) or definition ({DF#}) opens a new event,
// closing the one on screen at its own timecode. {DLW} and {CLW} erase the
// displayed caption. Text without a display command only starts an event
// when nothing is on screen, since mid-stream pen moves repaint the open
// window. The header line occasionally carries the first caption's text; it
// becomes an event anchored at 00:00:00:00.
func Parse(content string, rate timecode.Rate, dropFrame bool) ([]caption.Event, []caption.DebugEntry) {
	var (
		events  []caption.Event
		diags   []caption.DebugEntry
		current *caption.Event
	)

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := recordPattern.FindStringSubmatch(line)
		if m == nil {
			if texts := collectQuoted(line); len(texts) > 0 && current == nil {
				current = &caption.Event{
					StartUS:       0,
					StartTimecode: "00:00:00:00",
					Text:          strings.TrimSpace(strings.Join(texts, " ")),
				}
			} else if i > 0 && strings.Contains(line, "{") {
				diags = append(diags, parseDiag(i+1, "unrecognized directive line"))
			}
			continue
		}
		tc := m[1]
		body := m[2]

		us, err := timecode.ToMicroseconds(tc, rate, dropFrame)
		if err != nil {
			diags = append(diags, parseDiag(i+1, fmt.Sprintf("skipping record: %v", err)))
			continue
		}

		text, textLines := textWithPositions(body)

		hasDisplay := strings.Contains(body, "{DSW:") || dfPattern.MatchString(body)
		hasClear := strings.Contains(body, "{DLW:") || strings.Contains(body, "{CLW:")

		switch {
		case text != "" && hasDisplay:
			if current != nil && current.Text != "" {
				closeEvent(current, us, tc)
				events = append(events, *current)
			}
			current = openEvent(us, tc, text, body, textLines)

		case hasClear && current != nil:
			closeEvent(current, us, tc)
			if current.Text != "" {
				events = append(events, *current)
			}
			current = nil

		case text != "" && current == nil:
			// Pen moves without a display command repaint the open window;
			// with nothing on screen they begin an event.
			current = openEvent(us, tc, text, body, textLines)
		}
	}

	// The end boundary stays open when the stream ends without a clear.
	if current != nil && current.Text != "" {
		events = append(events, *current)
	}
	return events, diags
}

func openEvent(us int64, tc, text, body string, textLines []caption.Line) *caption.Event {
	_, style, segments := segmentStyles(body)
	return &caption.Event{
		StartUS:       us,
		StartTimecode: tc,
		Text:          text,
		Style:         style,
		Layout:        parseLayout(body, textLines),
		Segments:      segments,
	}
}

func closeEvent(event *caption.Event, us int64, tc string) {
	endUS := us
	endTC := tc
	event.EndUS = &endUS
	event.EndTimecode = &endTC
}

func parseDiag(lineNo int, message string) caption.DebugEntry {
	return caption.DebugEntry{
		Level:    caption.LevelWarn,
		Category: "PARSE_708",
		Source:   fmt.Sprintf("cea708:%d", lineNo),
		Message:  message,
	}
}

// textWithPositions extracts quoted text grouped by pen moves, one line per
// pen row, sorted top to bottom. Text ahead of the first pen move keeps the
// window's default position (row 0, column 0).
func textWithPositions(body string) (string, []caption.Line) {
	var lines []caption.Line

	for _, segment := range splitOnPen(body) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		texts := collectQuoted(segment)
		text := strings.TrimSpace(strings.Join(texts, " "))
		if text == "" {
			continue
		}
		row, column := 0, 0
		if penMatch := splPattern.FindStringSubmatch(segment); penMatch != nil {
			row = atoi(penMatch[1])
			column = atoi(penMatch[2])
		}
		lines = append(lines, caption.Line{
			Row:    row,
			Column: column,
			Text:   text,
		})
	}

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Row < lines[j].Row })

	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n"), lines
}

// splitOnPen splits the body before each pen move, keeping any leading
// content as its own segment.
func splitOnPen(body string) []string {
	locs := splPattern.FindAllStringIndex(body, -1)
	if len(locs) == 0 {
		return []string{body}
	}
	var segments []string
	if locs[0][0] > 0 {
		segments = append(segments, body[:locs[0][0]])
	}
	for i, loc := range locs {
		end := len(body)
		if i+1 < len(locs) {
			end = locs[i+1][0]
		}
		segments = append(segments, body[loc[0]:end])
	}
	return segments
}

func collectQuoted(s string) []string {
	matches := quotedText.FindAllStringSubmatch(s, -1)
	texts := make([]string, 0, len(matches))
	for _, m := range matches {
		texts = append(texts, m[1])
	}
	return texts
}

func atof(s string) float64 {
	v, _ := strconv.ParseFloat(s, 64)
	return v
}
