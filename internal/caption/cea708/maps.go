package cea708

import "fmt"

// Translation tables for the decoder's DTVCC mnemonics.

var penSizeMap = map[string]string{
	"small":    "small",
	"standard": "medium",
	"large":    "large",
}

var penOffsetMap = map[string]string{
	"subscript":   "sub",
	"normal":      "normal",
	"superscript": "super",
}

var fontTagMap = map[string]string{
	"default":               "",
	"monospaced serif":      "monospace, serif",
	"monoserif":             "monospace, serif",
	"proportional serif":    "serif",
	"proportserif":          "serif",
	"propserif":             "serif",
	"monospaced sanserif":   "monospace, sans-serif",
	"monosanserif":          "monospace, sans-serif",
	"monosans":              "monospace, sans-serif",
	"proportional sanserif": "sans-serif",
	"proportionsanserif":    "sans-serif",
	"propsans":              "sans-serif",
	"propsanserif":          "sans-serif",
	"casual":                "cursive",
	"cursive":               "cursive",
	"smallcaps":             "small-caps",
}

var edgeTypeMap = map[string]string{
	"none":            "",
	"raised":          "raised",
	"depressed":       "depressed",
	"uniform":         "uniform",
	"leftdropshadow":  "left-drop-shadow",
	"rightdropshadow": "right-drop-shadow",
}

var anchorMap = map[string]string{
	"ul": "upper-left",
	"uc": "upper-center",
	"ur": "upper-right",
	"ml": "middle-left",
	"mc": "middle-center",
	"mr": "middle-right",
	"ll": "lower-left",
	"lc": "lower-center",
	"lr": "lower-right",
}

var windowStyleMap = map[string]string{
	"608-popup":       "pop-on",
	"popup-transbg":   "pop-on",
	"popup-centered":  "pop-on",
	"608-rollup":      "roll-up",
	"rollup-transbg":  "roll-up",
	"rollup-centered": "roll-up",
	"tickertape":      "ticker",
}

var borderTypeMap = map[string]string{
	"none":         "",
	"raised":       "raised",
	"depressed":    "depressed",
	"uniform":      "uniform",
	"shadow left":  "shadow-left",
	"shadow right": "shadow-right",
}

var directionMap = map[string]string{
	"ltor": "left-to-right",
	"rtol": "right-to-left",
	"ttob": "top-to-bottom",
	"btot": "bottom-to-top",
}

var justifyMap = map[string]string{
	"l/t":  "left",
	"r/b":  "right",
	"cntr": "center",
	"full": "justify",
}

var displayEffectMap = map[string]string{
	"snap": "snap",
	"fade": "fade",
	"wipe": "wipe",
	"mask": "mask",
}

// colorToHex converts the decoder's 2-bit RGB channel values (0-3) to a CSS
// hex color, scaling each channel to {0, 85, 170, 255}.
func colorToHex(r, g, b int) string {
	scale := func(v int) int {
		switch v {
		case 1:
			return 85
		case 2:
			return 170
		case 3:
			return 255
		default:
			return 0
		}
	}
	return fmt.Sprintf("#%02X%02X%02X", scale(r), scale(g), scale(b))
}

// opacityValue maps the decoder's opacity keywords to CSS-friendly values:
// solid and transparent become numeric opacities, flash stays symbolic.
func opacityValue(opacity string) any {
	switch opacity {
	case "solid":
		return 1.0
	case "flash":
		return "flash"
	case "translucent":
		return 0.5
	case "transparent":
		return 0.0
	default:
		return 1.0
	}
}
