package core

// SyntaxHighlighter produces per-line annotations for a language.
// Implementations cache the result of Highlight by line index until the same
// index is highlighted again.
type SyntaxHighlighter interface {
	Highlight(idx int, line *Line)
	Annotations(idx int) ([]Annotation, bool)
}

// SyntaxHighlighterFactory picks a syntax highlighter for a file. It may
// return nil when the file type has no highlighting.
type SyntaxHighlighterFactory func(FileInfo) SyntaxHighlighter

// NewSyntaxHighlighter returns the built-in highlighter for fileType, or nil.
func NewSyntaxHighlighter(fileType FileType) SyntaxHighlighter {
	switch fileType {
	case FileTypeRust:
		return NewRustSyntaxHighlighter()
	default:
		return nil
	}
}

// DefaultSyntaxHighlighterFactory dispatches on the detected file type only.
func DefaultSyntaxHighlighterFactory(info FileInfo) SyntaxHighlighter {
	return NewSyntaxHighlighter(info.FileType())
}

// Highlighter combines syntax highlighting with search result highlighting
// for one render pass. Search annotations come after syntax annotations so
// they take precedence.
type Highlighter struct {
	syntax SyntaxHighlighter
	search *SearchResultHighlighter
}

// NewHighlighter creates a composite highlighter. query may be nil when no
// search is active; selected marks the match under the caret, if any.
func NewHighlighter(query *Line, selected *Location, syntax SyntaxHighlighter) *Highlighter {
	h := &Highlighter{syntax: syntax}
	if query != nil && !query.IsEmpty() {
		h.search = NewSearchResultHighlighter(query, selected)
	}
	return h
}

// Highlight computes annotations for the line at idx.
func (h *Highlighter) Highlight(idx int, line *Line) {
	if h.syntax != nil {
		h.syntax.Highlight(idx, line)
	}
	if h.search != nil {
		h.search.Highlight(idx, line)
	}
}

// Annotations returns the annotations computed for the line at idx.
func (h *Highlighter) Annotations(idx int) []Annotation {
	var result []Annotation
	if h.syntax != nil {
		if annotations, ok := h.syntax.Annotations(idx); ok {
			result = append(result, annotations...)
		}
	}
	if h.search != nil {
		if annotations, ok := h.search.Annotations(idx); ok {
			result = append(result, annotations...)
		}
	}
	return result
}
