package caption

// Caption standards. Track ids are "c1".. for line-21 channels and "s1".. for
// DTVCC services.
const (
	FormatCEA608 = "cea608"
	FormatCEA708 = "cea708"
)

// Formats lists the known standards in canonical order.
var Formats = []string{FormatCEA608, FormatCEA708}

// Position is a row/column pair in the caption grid.
type Position struct {
	Row    int `json:"row"`
	Column int `json:"column"`
}

// Line is one physical text line with its placement.
type Line struct {
	Row    int    `json:"row"`
	Column int    `json:"column"`
	Text   string `json:"text"`
}

// Style maps CSS-like property names to values. A nil map means no style
// directive was emitted for the event, which is distinct from an empty one.
type Style map[string]any

// Segment is a run of text with its own style, used when a single CEA-708
// event mixes pen styles.
type Segment struct {
	Text  string `json:"text"`
	Style Style  `json:"style,omitempty"`
}

// Layout carries positional directives in force while an event was open. The
// two standards populate different subsets: CEA-608 uses the cursor grid
// fields, CEA-708 the window fields. Optional fields are pointers or
// omitempty so "absent" survives serialization.
type Layout struct {
	// Shared
	Row               int      `json:"row,omitempty"`
	Column            int      `json:"column,omitempty"`
	VerticalPercent   *float64 `json:"vertical_percent,omitempty"`
	HorizontalPercent *float64 `json:"horizontal_percent,omitempty"`
	Mode              string   `json:"mode,omitempty"`
	Lines             []Line   `json:"lines,omitempty"`

	// CEA-608
	AllPositions []Position `json:"all_positions,omitempty"`
	TabOffset    int        `json:"tab_offset,omitempty"`
	RollUpRows   int        `json:"roll_up_rows,omitempty"`
	ControlCodes []string   `json:"control_codes,omitempty"`

	// CEA-708
	WindowID              *int       `json:"window_id,omitempty"`
	WindowStyle           string     `json:"window_style,omitempty"`
	TextAlign             string     `json:"text-align,omitempty"`
	TransparentBackground bool       `json:"transparent_background,omitempty"`
	WindowRows            int        `json:"window_rows,omitempty"`
	WindowColumns         int        `json:"window_columns,omitempty"`
	Anchor                string     `json:"anchor,omitempty"`
	AnchorDescription     string     `json:"anchor_description,omitempty"`
	Priority              *int       `json:"priority,omitempty"`
	Visible               bool       `json:"visible,omitempty"`
	RowLocked             bool       `json:"row_locked,omitempty"`
	ColumnLocked          bool       `json:"column_locked,omitempty"`
	RelativePosition      bool       `json:"relative_position,omitempty"`
	FillColor             string     `json:"fill_color,omitempty"`
	FillOpacity           string     `json:"fill_opacity,omitempty"`
	BorderType            string     `json:"border_type,omitempty"`
	BorderColor           string     `json:"border_color,omitempty"`
	PrintDirection        string     `json:"print_direction,omitempty"`
	ScrollDirection       string     `json:"scroll_direction,omitempty"`
	DisplayEffect         string     `json:"display_effect,omitempty"`
	EffectSpeed           float64    `json:"effect_speed,omitempty"`
	EffectDirection       string     `json:"effect_direction,omitempty"`
	WordWrap              bool       `json:"word_wrap,omitempty"`
	PenPositions          []Position `json:"pen_positions,omitempty"`
	ClearWindows          string     `json:"clear_windows,omitempty"`
	DisplayWindows        string     `json:"display_windows,omitempty"`
	HideWindows           string     `json:"hide_windows,omitempty"`
	ToggleWindows         string     `json:"toggle_windows,omitempty"`
	DeleteWindows         string     `json:"delete_windows,omitempty"`
}

// Event is one displayable caption with a time span. End fields are nil while
// the event is still open (stream ended without a close marker).
type Event struct {
	StartUS       int64     `json:"start"`
	StartTimecode string    `json:"start_timecode"`
	EndUS         *int64    `json:"end"`
	EndTimecode   *string   `json:"end_timecode"`
	Text          string    `json:"text"`
	Style         Style     `json:"style,omitempty"`
	Layout        *Layout   `json:"layout,omitempty"`
	Segments      []Segment `json:"segments,omitempty"`
}

// Closed reports whether both boundaries of the event are known.
func (e Event) Closed() bool {
	return e.EndUS != nil
}

// Metadata is the per-run block of the interchange shape.
type Metadata struct {
	FPS         float64                      `json:"fps"`
	DropFrame   bool                         `json:"drop_frame"`
	InputFile   string                       `json:"input_file,omitempty"`
	OutputFiles []string                     `json:"output_files,omitempty"`
	SourceDir   string                       `json:"source_dir,omitempty"`
	Debug       []DebugEntry                 `json:"debug,omitempty"`
	Languages   map[string]map[string]string `json:"languages,omitempty"`
}

// Result is the root aggregate of one decode run: standard -> track id ->
// ordered events, plus metadata. It is built in a single parse pass and
// treated as immutable afterwards; the language annotation pass only fills
// Metadata.Languages.
type Result struct {
	Captions map[string]map[string][]Event `json:"captions"`
	Metadata Metadata                      `json:"metadata"`
}

// NewResult allocates an empty result with the standard format buckets.
func NewResult(fps float64, dropFrame bool) *Result {
	captions := make(map[string]map[string][]Event, len(Formats))
	for _, format := range Formats {
		captions[format] = make(map[string][]Event)
	}
	return &Result{
		Captions: captions,
		Metadata: Metadata{FPS: fps, DropFrame: dropFrame},
	}
}

// AddTrack stores a track's event sequence under the given standard. Empty
// sequences are ignored so absent tracks stay absent.
func (r *Result) AddTrack(format, track string, events []Event) {
	if len(events) == 0 {
		return
	}
	if r.Captions == nil {
		r.Captions = make(map[string]map[string][]Event)
	}
	if r.Captions[format] == nil {
		r.Captions[format] = make(map[string][]Event)
	}
	r.Captions[format][track] = events
}
