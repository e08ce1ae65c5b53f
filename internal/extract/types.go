package extract

// Unit is the per-file extraction result: the retained top-level statements
// of one discovered file, concatenated in original source order.
type Unit struct {
	// Path is the canonical path of the extracted file.
	Path string

	// Content is the retained source text. Empty for parse failures and for
	// files where nothing matched.
	Content string

	// TotalLines is the line count of the original file.
	TotalLines int

	// RetainedLines is the line count of Content.
	RetainedLines int

	// Wildcard records whether the whole file was required.
	Wildcard bool

	// ParseFailed marks files that could not be read or parsed; such units
	// carry zero retained content.
	ParseFailed bool

	// FailReason holds the parse or read failure message when ParseFailed.
	FailReason string
}
