package cea708

import (
	"regexp"
	"sort"
	"strconv"
	"strings"

	"mccread/internal/caption"
)

var (
	spcPattern     = regexp.MustCompile(`\{SPC:([^}]+)\}`)
	spaPattern     = regexp.MustCompile(`\{SPA:([^}]+)\}`)
	styleCmd       = regexp.MustCompile(`\{(SPC|SPA):([^}]+)\}`)
	fgColorPattern = regexp.MustCompile(`FG-(\w+)-R([0-3])G([0-3])B([0-3])`)
	bgColorPattern = regexp.MustCompile(`BG-(\w+)-R([0-3])G([0-3])B([0-3])`)
	edgeColor      = regexp.MustCompile(`Edg-R([0-3])G([0-3])B([0-3])`)
	bareRGB        = regexp.MustCompile(`R([0-3])G([0-3])B([0-3])`)
	penSize        = regexp.MustCompile(`Size:(\w+)`)
	penOffset      = regexp.MustCompile(`Offset:(\w+)`)
	textTag        = regexp.MustCompile(`TextTag-([^:}]+)`)
	fontTag        = regexp.MustCompile(`FontTag-([^:}]+)`)
	edgeTypeTag    = regexp.MustCompile(`EdgeType-([^:}]+)`)
	penStyleTag    = regexp.MustCompile(`(?:^|[:{])Pen-([A-Za-z]+)(?:[:\-]|$|\})`)
	windowPen      = regexp.MustCompile(`\{DF\d+:[^}]*Pen-([A-Za-z]+)`)
)

// parseStyle extracts pen styling that applies to the whole record body.
func parseStyle(body string) caption.Style {
	style := caption.Style{}

	if m := spcPattern.FindStringSubmatch(body); m != nil {
		applySPC(style, m[1])
	}
	if m := spaPattern.FindStringSubmatch(body); m != nil {
		applySPA(style, m[1], false)
	}

	// Fall back to a bare RGB triple not owned by an FG/BG/Edg prefix.
	if _, ok := style["color"]; !ok {
		if m := findBareRGB(body); m != nil {
			style["color"] = colorToHex(m[0], m[1], m[2])
		}
	}

	if _, ok := style["font-family"]; !ok {
		if m := penStyleTag.FindStringSubmatch(body); m != nil {
			if family := fontTagMap[strings.ToLower(m[1])]; family != "" {
				style["font-family"] = family
			}
		}
	}

	if len(style) == 0 {
		return nil
	}
	return style
}

func applySPC(style caption.Style, cmd string) {
	if m := fgColorPattern.FindStringSubmatch(cmd); m != nil {
		r, g, b := atoi(m[2]), atoi(m[3]), atoi(m[4])
		style["color"] = colorToHex(r, g, b)
		style["opacity"] = opacityValue(strings.ToLower(m[1]))
	}
	if m := bgColorPattern.FindStringSubmatch(cmd); m != nil {
		r, g, b := atoi(m[2]), atoi(m[3]), atoi(m[4])
		style["background-color"] = colorToHex(r, g, b)
		style["background_opacity"] = opacityValue(strings.ToLower(m[1]))
	}
	if m := edgeColor.FindStringSubmatch(cmd); m != nil {
		style["edge_color"] = colorToHex(atoi(m[1]), atoi(m[2]), atoi(m[3]))
	}
}

// applySPA merges pen attributes into style. When tracking a running pen
// (removeAbsent), flag attributes not present in the command reset, since a
// new SPA replaces the prior pen state.
func applySPA(style caption.Style, cmd string, removeAbsent bool) {
	if m := penSize.FindStringSubmatch(cmd); m != nil {
		size := strings.ToLower(m[1])
		if mapped, ok := penSizeMap[size]; ok {
			style["font-size"] = mapped
		} else {
			style["font-size"] = size
		}
	}
	if m := penOffset.FindStringSubmatch(cmd); m != nil {
		offset := strings.ToLower(m[1])
		if mapped, ok := penOffsetMap[offset]; ok && mapped != "normal" {
			style["vertical-align"] = mapped
		}
	}
	if m := textTag.FindStringSubmatch(cmd); m != nil {
		style["text_tag"] = strings.ToLower(m[1])
	}
	if m := fontTag.FindStringSubmatch(cmd); m != nil {
		if family := fontTagMap[strings.ToLower(m[1])]; family != "" {
			style["font-family"] = family
		}
	}
	if m := edgeTypeTag.FindStringSubmatch(cmd); m != nil {
		if edge := edgeTypeMap[strings.ToLower(m[1])]; edge != "" {
			style["text-edge"] = edge
		}
	}

	setFlag := func(key, value string, present bool) {
		if present {
			style[key] = value
		} else if removeAbsent {
			delete(style, key)
		}
	}
	setFlag("text-decoration", "underline", strings.Contains(cmd, ":UL") || strings.HasSuffix(cmd, "UL"))
	setFlag("font-style", "italic", strings.Contains(cmd, ":IT") || strings.HasSuffix(cmd, "IT"))
	setFlag("font-weight", "bold", strings.Contains(cmd, ":BL") || strings.HasSuffix(cmd, "BL"))
}

// findBareRGB locates an RGB triple not preceded by FG-, BG-, or Edg-.
func findBareRGB(body string) []int {
	for _, loc := range bareRGB.FindAllStringSubmatchIndex(body, -1) {
		prefix := body[:loc[0]]
		if strings.HasSuffix(prefix, "FG-") || strings.HasSuffix(prefix, "BG-") || strings.HasSuffix(prefix, "Edg-") {
			continue
		}
		m := bareRGB.FindStringSubmatch(body[loc[0]:loc[1]])
		return []int{atoi(m[1]), atoi(m[2]), atoi(m[3])}
	}
	return nil
}

// segmentStyles walks the record body in order, applying running pen style
// to each quoted text segment. When every segment shares one style it
// collapses to a single event style; otherwise per-segment records carry
// their own.
func segmentStyles(body string) (fullText string, style caption.Style, segments []caption.Segment) {
	type marker struct {
		pos  int
		kind string // "style", "text", "spl"
		cmd  string
		text string
		row  int
	}
	var markers []marker

	for _, loc := range styleCmd.FindAllStringSubmatchIndex(body, -1) {
		markers = append(markers, marker{
			pos:  loc[0],
			kind: "style",
			cmd:  body[loc[2]:loc[3]] + ":" + body[loc[4]:loc[5]],
		})
	}
	for _, loc := range quotedText.FindAllStringSubmatchIndex(body, -1) {
		if text := body[loc[2]:loc[3]]; text != "" {
			markers = append(markers, marker{pos: loc[0], kind: "text", text: text})
		}
	}
	for _, loc := range splPattern.FindAllStringSubmatchIndex(body, -1) {
		markers = append(markers, marker{pos: loc[0], kind: "spl", row: atoi(body[loc[2]:loc[3]])})
	}
	sort.SliceStable(markers, func(i, j int) bool { return markers[i].pos < markers[j].pos })

	current := caption.Style{}
	if m := windowPen.FindStringSubmatch(body); m != nil {
		if family := fontTagMap[strings.ToLower(m[1])]; family != "" {
			current["font-family"] = family
		}
	}

	type styledRun struct {
		text  string
		style caption.Style
		row   int
	}
	var runs []styledRun
	row := 0

	for _, m := range markers {
		switch m.kind {
		case "style":
			kind, cmd, _ := strings.Cut(m.cmd, ":")
			if kind == "SPC" {
				applySPC(current, cmd)
			} else {
				applySPA(current, cmd, true)
			}
		case "spl":
			row = m.row
		case "text":
			runs = append(runs, styledRun{text: m.text, style: cloneStyle(current), row: row})
		}
	}

	if len(runs) == 0 {
		return "", nil, nil
	}

	sort.SliceStable(runs, func(i, j int) bool { return runs[i].row < runs[j].row })

	var b strings.Builder
	for i, run := range runs {
		if i > 0 && run.row != runs[i-1].row {
			b.WriteByte('\n')
		}
		b.WriteString(run.text)
	}
	fullText = b.String()

	uniform := true
	for _, run := range runs[1:] {
		if !stylesEqual(run.style, runs[0].style) {
			uniform = false
			break
		}
	}
	if uniform {
		return fullText, runs[0].style, nil
	}

	segments = make([]caption.Segment, 0, len(runs))
	for i, run := range runs {
		text := run.text
		if i < len(runs)-1 && runs[i+1].row != run.row {
			text += "\n"
		}
		segments = append(segments, caption.Segment{Text: text, Style: run.style})
	}
	return fullText, nil, segments
}

func cloneStyle(style caption.Style) caption.Style {
	if len(style) == 0 {
		return nil
	}
	clone := make(caption.Style, len(style))
	for k, v := range style {
		clone[k] = v
	}
	return clone
}

func stylesEqual(a, b caption.Style) bool {
	if len(a) != len(b) {
		return false
	}
	for k, v := range a {
		if b[k] != v {
			return false
		}
	}
	return true
}

func atoi(s string) int {
	v, _ := strconv.Atoi(s)
	return v
}
