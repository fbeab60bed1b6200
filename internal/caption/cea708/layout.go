package cea708

import (
	"regexp"
	"strings"

	"mccread/internal/caption"
)

var (
	dfPattern     = regexp.MustCompile(`\{DF(\d+):([^}]+)\}`)
	swaPattern    = regexp.MustCompile(`\{SWA:([^}]+)\}`)
	windowSize    = regexp.MustCompile(`:R(\d+)-C(\d+)`)
	anchorPattern = regexp.MustCompile(`Anchor-(\w+)-V(\d+)-H(\d+)`)
	priorityTag   = regexp.MustCompile(`Pr-(\d+)`)
	fillPattern   = regexp.MustCompile(`Fill-(\w+)-R([0-3])G([0-3])B([0-3])`)
	borderPattern = regexp.MustCompile(`Brdr-(\w+)-R([0-3])G([0-3])B([0-3])`)
	printDir      = regexp.MustCompile(`PD-(\w+)`)
	scrollDir     = regexp.MustCompile(`SD-(\w+)`)
	justifyDir    = regexp.MustCompile(`JD-([\w/]+)`)
	effectPattern = regexp.MustCompile(`(Snap|Fade|Wipe|Mask)-([0-9.]+)sec-(\w+)`)
	windowCmd     = map[string]*regexp.Regexp{
		"clear":   regexp.MustCompile(`\{CLW:(\d+)\}`),
		"display": regexp.MustCompile(`\{DSW:(\d+)\}`),
		"hide":    regexp.MustCompile(`\{HDW:(\d+)\}`),
		"toggle":  regexp.MustCompile(`\{TGW:(\d+)\}`),
		"delete":  regexp.MustCompile(`\{DLW:(\d+)\}`),
	}
)

// parseLayout extracts window geometry, attributes, pen moves, and window
// bitmap commands from a record body.
func parseLayout(body string, textLines []caption.Line) *caption.Layout {
	layout := &caption.Layout{}
	populated := false

	if m := dfPattern.FindStringSubmatch(body); m != nil {
		id := atoi(m[1])
		layout.WindowID = &id
		applyWindowDefinition(layout, m[2])
		populated = true
	}

	if m := swaPattern.FindStringSubmatch(body); m != nil {
		applyWindowAttributes(layout, m[1])
		populated = true
	}

	if matches := splPattern.FindAllStringSubmatch(body, -1); len(matches) > 0 {
		for _, m := range matches {
			layout.PenPositions = append(layout.PenPositions, caption.Position{Row: atoi(m[1]), Column: atoi(m[2])})
		}
		layout.Row = layout.PenPositions[0].Row
		layout.Column = layout.PenPositions[0].Column
		populated = true
	}

	if m := windowCmd["clear"].FindStringSubmatch(body); m != nil {
		layout.ClearWindows = m[1]
		populated = true
	}
	if m := windowCmd["display"].FindStringSubmatch(body); m != nil {
		layout.DisplayWindows = m[1]
		populated = true
	}
	if m := windowCmd["hide"].FindStringSubmatch(body); m != nil {
		layout.HideWindows = m[1]
		populated = true
	}
	if m := windowCmd["toggle"].FindStringSubmatch(body); m != nil {
		layout.ToggleWindows = m[1]
		populated = true
	}
	if m := windowCmd["delete"].FindStringSubmatch(body); m != nil {
		layout.DeleteWindows = m[1]
		populated = true
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

// applyWindowDefinition decodes a DF command payload: window style, size,
// anchor placement, priority, and the boolean window flags.
func applyWindowDefinition(layout *caption.Layout, df string) {
	if name, _, ok := strings.Cut(df, ":"); ok || name != "" {
		lower := strings.ToLower(name)
		if mode, ok := windowStyleMap[lower]; ok {
			layout.Mode = mode
		} else {
			switch {
			case strings.Contains(lower, "popup"):
				layout.Mode = "pop-on"
			case strings.Contains(lower, "rollup"):
				layout.Mode = "roll-up"
			case strings.Contains(lower, "painton"):
				layout.Mode = "paint-on"
			case strings.Contains(lower, "ticker"):
				layout.Mode = "ticker"
			}
		}
		layout.WindowStyle = name

		switch {
		case strings.Contains(lower, "centered"), strings.Contains(lower, "cntrd"):
			layout.TextAlign = "center"
		case strings.Contains(lower, "left"):
			layout.TextAlign = "left"
		case strings.Contains(lower, "right"):
			layout.TextAlign = "right"
		}
		if strings.Contains(lower, "transbg") {
			layout.TransparentBackground = true
		}
	}

	if m := windowSize.FindStringSubmatch(df); m != nil {
		layout.WindowRows = atoi(m[1])
		layout.WindowColumns = atoi(m[2])
	}

	if m := anchorPattern.FindStringSubmatch(df); m != nil {
		layout.Anchor = m[1]
		if desc, ok := anchorMap[strings.ToLower(m[1])]; ok {
			layout.AnchorDescription = desc
		}
		v := float64(atoi(m[2]))
		h := float64(atoi(m[3]))
		layout.VerticalPercent = &v
		layout.HorizontalPercent = &h
	}

	if m := priorityTag.FindStringSubmatch(df); m != nil {
		priority := atoi(m[1])
		layout.Priority = &priority
	}

	layout.Visible = strings.Contains(df, ":VIS")
	layout.RowLocked = strings.Contains(df, ":RL")
	layout.ColumnLocked = strings.Contains(df, ":CL")
	layout.RelativePosition = strings.Contains(df, ":RP")
}

// applyWindowAttributes decodes an SWA command payload.
func applyWindowAttributes(layout *caption.Layout, swa string) {
	if m := fillPattern.FindStringSubmatch(swa); m != nil {
		layout.FillColor = colorToHex(atoi(m[2]), atoi(m[3]), atoi(m[4]))
		layout.FillOpacity = strings.ToLower(m[1])
	}
	if m := borderPattern.FindStringSubmatch(swa); m != nil {
		if border := borderTypeMap[strings.ToLower(m[1])]; border != "" {
			layout.BorderType = border
		}
		layout.BorderColor = colorToHex(atoi(m[2]), atoi(m[3]), atoi(m[4]))
	}
	if m := printDir.FindStringSubmatch(swa); m != nil {
		if dir, ok := directionMap[strings.ToLower(m[1])]; ok {
			layout.PrintDirection = dir
		}
	}
	if m := scrollDir.FindStringSubmatch(swa); m != nil {
		if dir, ok := directionMap[strings.ToLower(m[1])]; ok {
			layout.ScrollDirection = dir
		}
	}
	if m := justifyDir.FindStringSubmatch(swa); m != nil {
		if align, ok := justifyMap[strings.ToLower(m[1])]; ok {
			layout.TextAlign = align
		}
	}
	if m := effectPattern.FindStringSubmatch(swa); m != nil {
		layout.DisplayEffect = displayEffectMap[strings.ToLower(m[1])]
		layout.EffectSpeed = atof(m[2])
		if dir, ok := directionMap[strings.ToLower(m[3])]; ok {
			layout.EffectDirection = dir
		}
	}
	layout.WordWrap = strings.Contains(swa, ":WW")
}
