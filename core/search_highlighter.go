package core

// SearchResultHighlighter tags every occurrence of the search query and
// marks the occurrence at the selected location separately.
type SearchResultHighlighter struct {
	query      *Line
	selected   *Location
	highlights map[int][]Annotation
}

func NewSearchResultHighlighter(query *Line, selected *Location) *SearchResultHighlighter {
	return &SearchResultHighlighter{
		query:      query,
		selected:   selected,
		highlights: make(map[int][]Annotation),
	}
}

func (h *SearchResultHighlighter) Highlight(idx int, line *Line) {
	var result []Annotation
	h.highlightMatches(line, &result)
	if h.selected != nil && h.selected.LineIdx == idx {
		h.highlightSelected(line, &result)
	}
	h.highlights[idx] = result
}

func (h *SearchResultHighlighter) Annotations(idx int) ([]Annotation, bool) {
	annotations, ok := h.highlights[idx]
	return annotations, ok
}

func (h *SearchResultHighlighter) highlightMatches(line *Line, result *[]Annotation) {
	query := h.query.String()
	for _, match := range line.FindAll(query, 0, line.Len()) {
		*result = append(*result, Annotation{
			Type:  AnnotationMatch,
			Start: match.ByteIdx,
			End:   match.ByteIdx + len(query),
		})
	}
}

// highlightSelected is added after the regular matches so it wins.
func (h *SearchResultHighlighter) highlightSelected(line *Line, result *[]Annotation) {
	query := h.query.String()
	if h.selected.GraphemeIdx >= line.GraphemeCount() {
		return
	}
	start := line.GraphemeToByteIdx(h.selected.GraphemeIdx)
	matches := line.FindAll(query, start, start+len(query))
	if len(matches) == 0 || matches[0].ByteIdx != start {
		return
	}
	*result = append(*result, Annotation{
		Type:  AnnotationSelectedMatch,
		Start: start,
		End:   start + len(query),
	})
}
