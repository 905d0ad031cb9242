package model

// FileCategory identifies which extraction rules apply to a scanned file.
//
// Categories are exclusive. Classification checks the markdown pattern list
// first, then html, then generic; the first list with a matching suffix wins.
// This priority is part of the scanner contract, not an accident of iteration.
type FileCategory int

const (
	// CategoryMarkdown applies markdown link extraction.
	CategoryMarkdown FileCategory = iota

	// CategoryHTML applies href/src attribute extraction.
	CategoryHTML

	// CategoryGeneric applies both markdown and html extraction.
	CategoryGeneric
)

// String returns the category name for logging and reports.
func (c FileCategory) String() string {
	switch c {
	case CategoryMarkdown:
		return "markdown"
	case CategoryHTML:
		return "html"
	case CategoryGeneric:
		return "generic"
	default:
		return "unknown"
	}
}

// ScannedFile is a documentation file discovered by the scanner.
// Content has already been decoded permissively: byte sequences that were
// not valid UTF-8 have been replaced with U+FFFD rather than failing the read.
type ScannedFile struct {
	// Path is the file path as discovered during the walk.
	Path string

	// Content is the decoded text content of the file.
	Content string

	// Category determines which extraction rules apply.
	Category FileCategory
}
