package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestLine_CombiningMark(t *testing.T) {
	line := NewLine("cafe\u0301")

	require.Equal(t, 4, line.GraphemeCount())
	require.Equal(t, 6, line.Len())
	require.Equal(t, 4, line.Width())

	last := line.Fragments()[3]
	assert.Equal(t, "e\u0301", last.Grapheme)
	assert.Equal(t, 3, last.Start)
	assert.Equal(t, 6, last.End())
	assert.False(t, last.HasReplacement())

	idx, ok := line.ByteToGraphemeIdx(3)
	assert.True(t, ok)
	assert.Equal(t, 3, idx)

	_, ok = line.ByteToGraphemeIdx(4)
	assert.False(t, ok, "offset inside a cluster")

	idx, ok = line.ByteToGraphemeIdx(6)
	assert.True(t, ok)
	assert.Equal(t, 4, idx)
}

func TestLine_WideGraphemes(t *testing.T) {
	line := NewLine("日本a")

	require.Equal(t, 3, line.GraphemeCount())
	assert.Equal(t, GraphemeWidthFull, line.Fragments()[0].Width)
	assert.Equal(t, 0, line.WidthUntil(0))
	assert.Equal(t, 2, line.WidthUntil(1))
	assert.Equal(t, 4, line.WidthUntil(2))
	assert.Equal(t, 5, line.Width())
	assert.Equal(t, 5, line.WidthUntil(100))
	assert.Equal(t, 0, line.WidthUntil(-3))
}

func TestLine_Replacements(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		replacement rune
	}{
		{name: "space is kept", text: " ", replacement: 0},
		{name: "tab", text: "\t", replacement: ' '},
		{name: "control", text: "\x01", replacement: '▯'},
		{name: "zero width space", text: "\u200b", replacement: '·'},
		{name: "ideographic space", text: "\u3000", replacement: '·'},
		{name: "letter", text: "x", replacement: 0},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			line := NewLine(tt.text)
			require.Equal(t, 1, line.GraphemeCount())
			fragment := line.Fragments()[0]
			assert.Equal(t, tt.replacement, fragment.Replacement)
			if fragment.HasReplacement() {
				assert.Equal(t, GraphemeWidthHalf, fragment.Width, "replaced clusters render one column wide")
			}
		})
	}
}

func TestLine_VisibleGraphemes(t *testing.T) {
	tests := []struct {
		name string
		text string
		cols ColumnRange
		want string
	}{
		{name: "whole line", text: "hello", cols: ColumnRange{0, 10}, want: "hello"},
		{name: "middle", text: "abc", cols: ColumnRange{1, 2}, want: "b"},
		{name: "empty range", text: "abc", cols: ColumnRange{2, 2}, want: ""},
		{name: "tab replaced", text: "a\tb", cols: ColumnRange{0, 3}, want: "a b"},
		{name: "control replaced", text: "a\x01b", cols: ColumnRange{0, 3}, want: "a▯b"},
		{name: "wide cut on both edges", text: "日本語", cols: ColumnRange{1, 5}, want: "⋯本⋯"},
		{name: "wide cut on right edge", text: "a日", cols: ColumnRange{0, 2}, want: "a⋯"},
		{name: "wide fully inside", text: "a日b", cols: ColumnRange{1, 3}, want: "日"},
		{name: "scrolled past the end", text: "abc", cols: ColumnRange{5, 9}, want: ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, NewLine(tt.text).VisibleGraphemes(tt.cols))
		})
	}
}

func TestLine_AnnotatedVisibleSubstrKeepsAnnotations(t *testing.T) {
	line := NewLine("let\tx")
	result := line.AnnotatedVisibleSubstr(ColumnRange{0, 5}, []Annotation{
		{Type: AnnotationKeyword, Start: 0, End: 3},
		{Type: AnnotationMatch, Start: 4, End: 5},
	})

	assert.Equal(t, []AnnotatedStringPart{
		{Text: "let", Type: AnnotationKeyword},
		{Text: " ", Type: AnnotationNone},
		{Text: "x", Type: AnnotationMatch},
	}, result.Parts())
}

func TestLine_InsertAndDelete(t *testing.T) {
	line := NewLine("ab")

	line.InsertChar('x', 1)
	assert.Equal(t, "axb", line.String())

	line.InsertChar('y', 99)
	assert.Equal(t, "axby", line.String())

	line.Delete(0)
	assert.Equal(t, "xby", line.String())

	line.Delete(-1)
	line.Delete(3)
	assert.Equal(t, "xby", line.String())

	line.DeleteLast()
	assert.Equal(t, "xb", line.String())
}

func TestLine_AppendCombiningMarkJoinsCluster(t *testing.T) {
	line := NewLine("e")
	line.AppendChar('\u0301')

	assert.Equal(t, 1, line.GraphemeCount())
	assert.Equal(t, "e\u0301", line.String())

	line.DeleteLast()
	assert.True(t, line.IsEmpty())
}

func TestLine_Split(t *testing.T) {
	line := NewLine("hello")
	rest := line.Split(2)
	assert.Equal(t, "he", line.String())
	assert.Equal(t, "llo", rest.String())

	rest = line.Split(2)
	assert.Equal(t, "he", line.String())
	assert.True(t, rest.IsEmpty())
}

func TestLine_Search(t *testing.T) {
	line := NewLine("cafe\u0301 cafe")
	require.Equal(t, 9, line.GraphemeCount())

	idx, ok := line.SearchForward("cafe", 0)
	require.True(t, ok)
	assert.Equal(t, 5, idx, "a hit ending inside a cluster is not a match")

	idx, ok = line.SearchForward("cafe\u0301", 0)
	require.True(t, ok)
	assert.Equal(t, 0, idx)

	_, ok = line.SearchForward("cafe\u0301", 1)
	assert.False(t, ok)

	idx, ok = line.SearchBackward("cafe", 9)
	require.True(t, ok)
	assert.Equal(t, 5, idx)

	_, ok = line.SearchBackward("cafe", 8)
	assert.False(t, ok, "the match must end before the start index")

	_, ok = line.SearchForward("cafe", 9)
	assert.False(t, ok)

	_, ok = line.SearchForward("", 0)
	assert.False(t, ok)
}

func TestLine_FindAllIsNonOverlapping(t *testing.T) {
	matches := NewLine("aaaa").FindAll("aa", 0, 4)
	assert.Equal(t, []Match{{ByteIdx: 0, GraphemeIdx: 0}, {ByteIdx: 2, GraphemeIdx: 2}}, matches)

	matches = NewLine("日a日a").FindAll("a", 0, 100)
	assert.Equal(t, []Match{{ByteIdx: 3, GraphemeIdx: 1}, {ByteIdx: 7, GraphemeIdx: 3}}, matches)
}

// ===========================================================================
// Property-Based Tests
// ===========================================================================

var simpleRunes = []rune{'a', 'b', ' ', '\t', 'é', '日', '語'}

func TestProperty_SplitThenAppendRestoresLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		line := NewLine(text)
		at := rapid.IntRange(0, line.GraphemeCount()).Draw(rt, "at")

		rest := line.Split(at)
		require.Equal(rt, at, line.GraphemeCount())
		line.Append(rest)
		require.Equal(rt, text, line.String())
	})
}

func TestProperty_InsertThenDeleteRestoresLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(simpleRunes)).Draw(rt, "text")
		ch := rapid.SampledFrom(simpleRunes).Draw(rt, "ch")
		line := NewLine(text)
		at := rapid.IntRange(0, line.GraphemeCount()).Draw(rt, "at")

		line.InsertChar(ch, at)
		require.Equal(rt, utf8Count(text)+1, line.GraphemeCount())
		line.Delete(at)
		require.Equal(rt, text, line.String())
	})
}

func TestProperty_FragmentsTileTheLine(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.String().Draw(rt, "text")
		line := NewLine(text)

		var sb strings.Builder
		width := 0
		for i, fragment := range line.Fragments() {
			require.Equal(rt, sb.Len(), fragment.Start)
			require.Equal(rt, fragment.Start, line.GraphemeToByteIdx(i))
			idx, ok := line.ByteToGraphemeIdx(fragment.Start)
			require.True(rt, ok)
			require.Equal(rt, i, idx)
			require.Equal(rt, width, line.WidthUntil(i))

			sb.WriteString(fragment.Grapheme)
			width += fragment.Width.Columns()
		}
		require.Equal(rt, text, sb.String())
		require.Equal(rt, width, line.Width())
	})
}

func TestProperty_VisibleGraphemesFitTheRange(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := rapid.StringOf(rapid.SampledFrom(simpleRunes)).Draw(rt, "text")
		line := NewLine(text)
		start := rapid.IntRange(0, line.Width()+2).Draw(rt, "start")
		end := rapid.IntRange(start, line.Width()+4).Draw(rt, "end")

		visible := NewLine(line.VisibleGraphemes(ColumnRange{Start: start, End: end}))
		require.LessOrEqual(rt, visible.Width(), end-start)
	})
}

func utf8Count(text string) int {
	return len([]rune(text))
}
