package cea608

import (
	"strconv"
	"strings"

	"mccread/internal/caption"
)

// parseStyle extracts CSS-like styling from a record body. Style codes only
// apply to text that follows them, so codes after the first quoted text are
// ignored.
func parseStyle(body string) caption.Style {
	style := caption.Style{}

	before := body
	if loc := quotedText.FindStringIndex(body); loc != nil {
		before = body[:loc[0]]
	}

	if m := fgPattern.FindStringSubmatch(before); m != nil {
		applyForeground(style, m[1])
	}

	if m := bgPattern.FindStringSubmatch(before); m != nil {
		color := strings.ToLower(m[1])
		if _, ok := namedColors[color]; ok {
			style["background-color"] = color
		}
		flags := m[2]
		if strings.Contains(flags, "PT") {
			style["background_partially_transparent"] = true
		}
		if strings.Contains(flags, "UL") {
			style["text-decoration"] = "underline"
		}
	}

	if m := pacColor.FindStringSubmatch(before); m != nil {
		if _, ok := style["color"]; !ok {
			color := strings.ToLower(m[2])
			if color == "italic white" {
				style["color"] = "white"
				style["font-style"] = "italic"
			} else if _, ok := namedColors[color]; ok {
				style["color"] = color
			}
		}
	}

	if pacUnderline.MatchString(before) || strings.Contains(before, "{UL}") {
		style["text-decoration"] = "underline"
	}

	if len(style) == 0 {
		return nil
	}
	return style
}

func applyForeground(style caption.Style, fg string) {
	parts := strings.Split(fg, ":")
	name := parts[0]
	flags := strings.Join(parts[1:], ":")

	normalized := strings.ToLower(strings.TrimSpace(strings.ReplaceAll(name, "-", " ")))
	if normalized == "italic white" {
		style["font-style"] = "italic"
		style["color"] = "white"
	} else if _, ok := namedColors[normalized]; ok {
		style["color"] = normalized
	} else {
		for _, part := range strings.Split(name, "-") {
			lower := strings.ToLower(strings.TrimSpace(part))
			if _, ok := namedColors[lower]; ok {
				style["color"] = lower
			} else if lower == "italic" {
				style["font-style"] = "italic"
			}
		}
	}

	if strings.Contains(flags, "PT") {
		style["partially_transparent"] = true
	}
	if strings.Contains(flags, "UL") {
		style["text-decoration"] = "underline"
	}
}

// parseLayout extracts cursor positioning, caption mode, and control codes.
// CEA-608 uses a fixed 15-row by 32-column grid; percentages derive from the
// zero-based maxima (row/14, column/31).
func parseLayout(body string, textLines []caption.Line) *caption.Layout {
	layout := &caption.Layout{}
	populated := false

	if matches := pacCursor.FindAllStringSubmatch(body, -1); len(matches) > 0 {
		row, _ := strconv.Atoi(matches[0][1])
		col, _ := strconv.Atoi(matches[0][2])
		layout.Row = row
		layout.Column = col
		layout.VerticalPercent = percent(row, 14)
		layout.HorizontalPercent = percent(col, 31)
		populated = true

		if len(matches) > 1 {
			for _, m := range matches {
				r, _ := strconv.Atoi(m[1])
				c, _ := strconv.Atoi(m[2])
				layout.AllPositions = append(layout.AllPositions, caption.Position{Row: r, Column: c})
			}
		}
	}

	if m := pacColor.FindStringSubmatch(body); m != nil && layout.VerticalPercent == nil {
		row, _ := strconv.Atoi(m[1])
		layout.Row = row
		layout.VerticalPercent = percent(row, 14)
		populated = true
	}

	if m := tabPattern.FindStringSubmatch(body); m != nil {
		layout.TabOffset, _ = strconv.Atoi(m[1])
		populated = true
	}

	switch {
	case strings.Contains(body, "{RDC}"):
		layout.Mode = "paint-on"
		populated = true
	case strings.Contains(body, "{RCL}"):
		layout.Mode = "pop-on"
		populated = true
	case strings.Contains(body, "{RU2}"):
		layout.Mode = "roll-up"
		layout.RollUpRows = 2
		populated = true
	case strings.Contains(body, "{RU3}"):
		layout.Mode = "roll-up"
		layout.RollUpRows = 3
		populated = true
	case strings.Contains(body, "{RU4}"):
		layout.Mode = "roll-up"
		layout.RollUpRows = 4
		populated = true
	}

	for _, code := range controlCodes {
		if strings.Contains(body, "{"+code+"}") {
			layout.ControlCodes = append(layout.ControlCodes, code)
			populated = true
		}
	}

	if len(textLines) > 0 {
		layout.Lines = textLines
		populated = true
	}

	if !populated {
		return nil
	}
	return layout
}

func percent(value, max int) *float64 {
	p := float64(value) / float64(max) * 100
	return &p
}
