package diagfmt

// PathMode specifies how file paths are displayed.
type PathMode uint8

const (
	// PathModeAuto shows the path exactly as it was registered.
	PathModeAuto PathMode = iota
	// PathModeBasename strips everything but the file name.
	PathModeBasename
)

// PrettyOpts configures pretty-printing of diagnostics.
type PrettyOpts struct {
	Color     bool
	PathMode  PathMode
	ShowNotes bool
	// Context enables the source-line excerpt with a caret underline.
	Context bool
}

// JSONOpts configures JSON output of diagnostics.
type JSONOpts struct {
	IncludePositions bool
	IncludeNotes     bool
	// Max truncates the output list, not the bag. Zero means no limit.
	Max int
}
