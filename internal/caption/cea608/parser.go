package cea608

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
	pacCursor     = regexp.MustCompile(`\{R(\d+):C(\d+)`)
	pacColor      = regexp.MustCompile(`\{R(\d+):([A-Za-z][A-Za-z ]+)(?::UL)?\}`)
	pacUnderline  = regexp.MustCompile(`\{R\d+:[^}]+:UL\}`)
	fgPattern     = regexp.MustCompile(`\{FG-([^}]+)\}`)
	bgPattern     = regexp.MustCompile(`\{BG-([^}:]+)(?::([^}]+))?\}`)
	tabPattern    = regexp.MustCompile(`\{TO(\d+)\}`)
	trackPattern  = regexp.MustCompile(`-C(\d+)\.608$`)
)

// Control-code mnemonics the decoder emits, in their defined order.
var controlCodes = []string{
	"RCL", "BS", "AOF", "AON", "DER", "RU2", "RU3", "RU4",
	"FON", "RDC", "TR", "RTD", "EDM", "CR", "ENM", "EOC",
}

// Named colors valid in preamble and mid-row codes.
var namedColors = map[string]struct{}{
	"white": {}, "green": {}, "blue": {}, "cyan": {},
	"red": {}, "yellow": {}, "magenta": {}, "black": {},
}

// TrackID derives the channel id from a decode artifact name, e.g.
// "BigBuckBunny-C1.608" -> "c1". Empty when the name does not follow the
// decoder's convention.
func TrackID(filename string) string {
	m := trackPattern.FindStringSubmatch(filename)
	if m == nil {
		return ""
	}
	return "c" + m[1]
}

// ParseFile parses one channel's decode artifact.
func ParseFile(path string, rate timecode.Rate, dropFrame bool) ([]caption.Event, []caption.DebugEntry, error) {
	content, err := textio.ReadFile(path)
	if err != nil {
		return nil, nil, err
	}
	events, diags := Parse(content, rate, dropFrame)
	return events, diags, nil
}

// Parse reconstructs caption events from a decode stream. The first line is
// the stream header. Malformed records are skipped and reported as synthetic
// debug entries; a single bad line never aborts the stream.
//
// Timing follows the decoder's caption modes: pop-on text loads into a
// buffer on {RCL} and displays at {EOC}; paint-on ({RDC}) and roll-up
// ({RU2..4}) text displays immediately; {EDM} erases the displayed caption.
func Parse(content string, rate timecode.Rate, dropFrame bool) ([]caption.Event, []caption.DebugEntry) {
	var (
		events    []caption.Event
		diags     []caption.DebugEntry
		displayed *caption.Event
		loading   *caption.Event
	)

	lines := strings.Split(content, "\n")
	for i, raw := range lines {
		if i == 0 {
			continue // header
		}
		line := strings.TrimSpace(raw)
		if line == "" {
			continue
		}

		m := recordPattern.FindStringSubmatch(line)
		if m == nil {
			diags = append(diags, parseDiag(i+1, "unrecognized directive line"))
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

		isEOC := strings.Contains(body, "{EOC}")
		isEDM := strings.Contains(body, "{EDM}")
		isPopOn := strings.Contains(body, "{RCL}")
		isPaintOn := strings.Contains(body, "{RDC}")
		isRollUp := strings.Contains(body, "{RU2}") || strings.Contains(body, "{RU3}") || strings.Contains(body, "{RU4}")

		switch {
		case isEOC:
			// Displays the loaded pop-on caption, ending the visible one.
			if displayed != nil && displayed.Text != "" {
				closeEvent(displayed, us, tc)
				events = append(events, *displayed)
				displayed = nil
			}
			if loading != nil && loading.Text != "" {
				loading.StartUS = us
				loading.StartTimecode = tc
				displayed = loading
				loading = nil
			}

		case isEDM:
			if displayed != nil && displayed.Text != "" {
				closeEvent(displayed, us, tc)
				events = append(events, *displayed)
				displayed = nil
			}

		case text != "":
			event := &caption.Event{
				StartUS:       us,
				StartTimecode: tc,
				Text:          text,
				Style:         parseStyle(body),
				Layout:        parseLayout(body, textLines),
			}

			switch {
			case isPopOn:
				loading = event
			case isPaintOn || isRollUp:
				if displayed != nil && displayed.Text != "" {
					closeEvent(displayed, us, tc)
					events = append(events, *displayed)
				}
				displayed = event
			case loading != nil:
				// Continuing a pop-on load without an explicit mode.
				loading = event
			case displayed != nil:
				closeEvent(displayed, us, tc)
				events = append(events, *displayed)
				displayed = event
			default:
				displayed = event
			}
		}
	}

	// End boundaries stay open when the stream ends without a close marker.
	if displayed != nil && displayed.Text != "" {
		events = append(events, *displayed)
	}
	if loading != nil && loading.Text != "" {
		events = append(events, *loading)
	}
	return events, diags
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
		Category: "PARSE_608",
		Source:   fmt.Sprintf("cea608:%d", lineNo),
		Message:  message,
	}
}

// textWithPositions extracts the quoted text, breaking lines when the cursor
// row changes, and returns the per-line placements sorted top to bottom.
func textWithPositions(body string) (string, []caption.Line) {
	var (
		lines       []caption.Line
		haveRow     bool
		currentRow  int
		currentCol  int
		haveCol     bool
		currentText []string
	)

	flush := func() {
		if len(currentText) > 0 {
			lines = append(lines, caption.Line{
				Row:    currentRow,
				Column: currentCol,
				Text:   strings.Join(currentText, " "),
			})
		}
	}

	for _, segment := range splitOnCursor(body) {
		if strings.TrimSpace(segment) == "" {
			continue
		}
		posMatch := pacCursor.FindStringSubmatch(segment)
		texts := collectQuoted(segment)

		switch {
		case posMatch != nil && len(texts) > 0:
			row, _ := strconv.Atoi(posMatch[1])
			col, _ := strconv.Atoi(posMatch[2])
			text := strings.TrimSpace(strings.Join(texts, " "))
			if haveRow && row != currentRow {
				flush()
				currentText = []string{text}
				currentCol = col
				haveCol = true
			} else {
				currentText = append(currentText, text)
				if !haveCol {
					currentCol = col
					haveCol = true
				}
			}
			currentRow = row
			haveRow = true

		case len(texts) > 0 && haveRow:
			currentText = append(currentText, strings.TrimSpace(strings.Join(texts, " ")))
		}
	}
	flush()

	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Row < lines[j].Row })

	parts := make([]string, len(lines))
	for i, line := range lines {
		parts[i] = line.Text
	}
	return strings.Join(parts, "\n"), lines
}

// splitOnCursor splits the body before each cursor preamble, keeping any
// leading content as its own segment.
func splitOnCursor(body string) []string {
	locs := pacCursor.FindAllStringIndex(body, -1)
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
