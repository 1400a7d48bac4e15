package core

import (
	"strings"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

// Match is a search hit aligned to grapheme boundaries.
type Match struct {
	ByteIdx     int
	GraphemeIdx int
}

// SearchForward returns the grapheme index of the first match of query at
// or after fromGraphemeIdx.
func (l *Line) SearchForward(query string, fromGraphemeIdx int) (int, bool) {
	fromGraphemeIdx = max(fromGraphemeIdx, 0)
	if fromGraphemeIdx >= l.GraphemeCount() {
		return 0, false
	}
	start := l.GraphemeToByteIdx(fromGraphemeIdx)
	matches := l.FindAll(query, start, len(l.text))
	if len(matches) == 0 {
		return 0, false
	}
	return matches[0].GraphemeIdx, true
}

// SearchBackward returns the grapheme index of the last match of query that
// ends before fromGraphemeIdx.
func (l *Line) SearchBackward(query string, fromGraphemeIdx int) (int, bool) {
	fromGraphemeIdx = min(fromGraphemeIdx, l.GraphemeCount())
	if fromGraphemeIdx <= 0 {
		return 0, false
	}
	end := l.GraphemeToByteIdx(fromGraphemeIdx)
	matches := l.FindAll(query, 0, end)
	if len(matches) == 0 {
		return 0, false
	}
	return matches[len(matches)-1].GraphemeIdx, true
}

// FindAll returns every non-overlapping match of query inside the byte range
// [startByte, endByte). A byte-level hit only counts when it starts on a
// grapheme boundary and the graphemes it covers spell exactly the query, so
// a hit in the middle of a multi-byte cluster is rejected.
func (l *Line) FindAll(query string, startByte, endByte int) []Match {
	endByte = min(endByte, len(l.text))
	startByte = max(startByte, 0)
	if query == "" || startByte > endByte {
		return nil
	}

	haystack := l.text[startByte:endByte]
	queryGraphemes := uniseg.GraphemeClusterCount(query)

	var matches []Match
	offset := 0
	for offset <= len(haystack) {
		idx := strings.Index(haystack[offset:], query)
		if idx < 0 {
			break
		}
		byteIdx := startByte + offset + idx
		if graphemeIdx, ok := l.matchGraphemeClusters(byteIdx, query, queryGraphemes); ok {
			matches = append(matches, Match{ByteIdx: byteIdx, GraphemeIdx: graphemeIdx})
			offset += idx + len(query)
			continue
		}
		_, size := utf8.DecodeRuneInString(haystack[offset+idx:])
		offset += idx + max(size, 1)
	}
	return matches
}

func (l *Line) matchGraphemeClusters(byteIdx int, query string, queryGraphemes int) (int, bool) {
	graphemeIdx, ok := l.ByteToGraphemeIdx(byteIdx)
	if !ok || graphemeIdx+queryGraphemes > len(l.fragments) {
		return 0, false
	}

	var sb strings.Builder
	for _, fragment := range l.fragments[graphemeIdx : graphemeIdx+queryGraphemes] {
		sb.WriteString(fragment.Grapheme)
	}
	if sb.String() != query {
		return 0, false
	}
	return graphemeIdx, true
}
