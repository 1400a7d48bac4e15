package core

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"
)

func TestAnnotatedString_ReplaceInsideAnnotation(t *testing.T) {
	s := NewAnnotatedString("Hello world")
	s.AddAnnotation(AnnotationKeyword, 0, 5)
	s.AddAnnotation(AnnotationMatch, 6, 11)

	s.Replace(6, 11, "Go")

	assert.Equal(t, "Hello Go", s.String())
	assert.Equal(t, []Annotation{
		{Type: AnnotationKeyword, Start: 0, End: 5},
		{Type: AnnotationMatch, Start: 6, End: 8},
	}, s.Annotations())
}

func TestAnnotatedString_InsertAtAnnotationEdges(t *testing.T) {
	s := NewAnnotatedString("hello world")
	s.AddAnnotation(AnnotationKeyword, 0, 5)
	s.Replace(0, 0, "XX")
	assert.Equal(t, []Annotation{{Type: AnnotationKeyword, Start: 2, End: 7}}, s.Annotations())

	s = NewAnnotatedString("hello world")
	s.AddAnnotation(AnnotationKeyword, 0, 5)
	s.Replace(5, 5, "XX")
	assert.Equal(t, "helloXX world", s.String())
	assert.Equal(t, []Annotation{{Type: AnnotationKeyword, Start: 0, End: 7}}, s.Annotations())
}

func TestAnnotatedString_EqualLengthReplaceKeepsAnnotations(t *testing.T) {
	s := NewAnnotatedString("abcdef")
	s.AddAnnotation(AnnotationString, 1, 4)

	s.Replace(2, 3, "Z")

	assert.Equal(t, "abZdef", s.String())
	assert.Equal(t, []Annotation{{Type: AnnotationString, Start: 1, End: 4}}, s.Annotations())
}

func TestAnnotatedString_DeletedAnnotationIsDropped(t *testing.T) {
	s := NewAnnotatedString("abcdefg")
	s.AddAnnotation(AnnotationNumber, 2, 4)
	s.AddAnnotation(AnnotationComment, 5, 7)

	s.Replace(1, 5, "")

	assert.Equal(t, "afg", s.String())
	assert.Equal(t, []Annotation{{Type: AnnotationComment, Start: 1, End: 3}}, s.Annotations())
}

func TestAnnotatedString_Truncate(t *testing.T) {
	s := NewAnnotatedString("abcdef")
	s.AddAnnotation(AnnotationKeyword, 4, 6)
	s.TruncateLeftUntil(3)
	assert.Equal(t, "def", s.String())
	assert.Equal(t, []Annotation{{Type: AnnotationKeyword, Start: 1, End: 3}}, s.Annotations())

	s = NewAnnotatedString("abcdef")
	s.AddAnnotation(AnnotationKeyword, 1, 4)
	s.TruncateRightFrom(2)
	assert.Equal(t, "ab", s.String())
	assert.Equal(t, []Annotation{{Type: AnnotationKeyword, Start: 1, End: 2}}, s.Annotations())
}

func TestAnnotatedString_ReplaceOutOfRange(t *testing.T) {
	s := NewAnnotatedString("abc")
	s.Replace(5, 8, "x")
	assert.Equal(t, "abc", s.String())

	s.Replace(-2, 1, "")
	assert.Equal(t, "bc", s.String())
}

func TestAnnotatedString_InvertedAnnotationIgnored(t *testing.T) {
	s := NewAnnotatedString("abc")
	s.AddAnnotation(AnnotationKeyword, 2, 1)
	assert.Empty(t, s.Annotations())
}

func TestAnnotatedString_Parts(t *testing.T) {
	tests := []struct {
		name        string
		text        string
		annotations []Annotation
		want        []AnnotatedStringPart
	}{
		{
			name: "no annotations",
			text: "plain",
			want: []AnnotatedStringPart{{Text: "plain", Type: AnnotationNone}},
		},
		{
			name:        "gaps are unannotated",
			text:        "let x = 1",
			annotations: []Annotation{{AnnotationKeyword, 0, 3}, {AnnotationNumber, 8, 9}},
			want: []AnnotatedStringPart{
				{Text: "let", Type: AnnotationKeyword},
				{Text: " x = ", Type: AnnotationNone},
				{Text: "1", Type: AnnotationNumber},
			},
		},
		{
			name:        "later annotation wins inside an earlier one",
			text:        "abcdefgh",
			annotations: []Annotation{{AnnotationString, 0, 8}, {AnnotationMatch, 2, 4}},
			want: []AnnotatedStringPart{
				{Text: "ab", Type: AnnotationString},
				{Text: "cd", Type: AnnotationMatch},
				{Text: "efgh", Type: AnnotationString},
			},
		},
		{
			name:        "later annotation hides an earlier one",
			text:        "abcdefgh",
			annotations: []Annotation{{AnnotationMatch, 2, 4}, {AnnotationString, 0, 8}},
			want:        []AnnotatedStringPart{{Text: "abcdefgh", Type: AnnotationString}},
		},
		{
			name:        "partial overlap",
			text:        "abcdef",
			annotations: []Annotation{{AnnotationKeyword, 0, 4}, {AnnotationSelectedMatch, 2, 6}},
			want: []AnnotatedStringPart{
				{Text: "ab", Type: AnnotationKeyword},
				{Text: "cdef", Type: AnnotationSelectedMatch},
			},
		},
		{
			name:        "annotation past the end is clipped",
			text:        "abc",
			annotations: []Annotation{{AnnotationComment, 1, 10}},
			want: []AnnotatedStringPart{
				{Text: "a", Type: AnnotationNone},
				{Text: "bc", Type: AnnotationComment},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewAnnotatedString(tt.text)
			for _, a := range tt.annotations {
				s.AddAnnotation(a.Type, a.Start, a.End)
			}
			assert.Equal(t, tt.want, s.Parts())
		})
	}
}

func TestAnnotatedString_AllStopsEarly(t *testing.T) {
	s := NewAnnotatedString("abcdef")
	s.AddAnnotation(AnnotationKeyword, 2, 4)

	var seen []string
	for part := range s.All() {
		seen = append(seen, part.Text)
		break
	}
	assert.Equal(t, []string{"ab"}, seen)
	assert.Empty(t, NewAnnotatedString("").Parts())
}

// ===========================================================================
// Property-Based Tests
// ===========================================================================

func drawText(rt *rapid.T, label string) string {
	return rapid.StringMatching(`[a-z ]{0,20}`).Draw(rt, label)
}

func drawRange(rt *rapid.T, lo, hi int, label string) (int, int) {
	start := rapid.IntRange(lo, hi).Draw(rt, label+"Start")
	end := rapid.IntRange(start, hi).Draw(rt, label+"End")
	return start, end
}

func TestProperty_ReplaceBeforeAnnotationShiftsIt(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := drawText(rt, "text") + "xyz"
		aStart, aEnd := drawRange(rt, 1, len(text), "annotation")
		if aStart == aEnd {
			aEnd++
			if aEnd > len(text) {
				aStart--
			}
			aEnd = min(aEnd, len(text))
		}
		rStart, rEnd := drawRange(rt, 0, aStart, "replace")
		newText := drawText(rt, "newText")

		s := NewAnnotatedString(text)
		s.AddAnnotation(AnnotationKeyword, aStart, aEnd)
		s.Replace(rStart, rEnd, newText)

		delta := len(newText) - (rEnd - rStart)
		require.Equal(rt, []Annotation{{AnnotationKeyword, aStart + delta, aEnd + delta}}, s.Annotations())
	})
}

func TestProperty_ReplaceAfterAnnotationKeepsIt(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := drawText(rt, "text") + "xyz"
		aStart, aEnd := drawRange(rt, 0, len(text)-2, "annotation")
		if aStart == aEnd {
			aEnd++
		}
		rStart, rEnd := drawRange(rt, aEnd+1, len(text), "replace")
		newText := drawText(rt, "newText")

		s := NewAnnotatedString(text)
		s.AddAnnotation(AnnotationKeyword, aStart, aEnd)
		s.Replace(rStart, rEnd, newText)

		require.Equal(rt, []Annotation{{AnnotationKeyword, aStart, aEnd}}, s.Annotations())
	})
}

func TestProperty_EqualLengthReplaceKeepsAnnotations(t *testing.T) {
	rapid.Check(t, func(rt *rapid.T) {
		text := drawText(rt, "text")
		aStart, aEnd := drawRange(rt, 0, len(text), "annotation")
		rStart, rEnd := drawRange(rt, 0, len(text), "replace")

		s := NewAnnotatedString(text)
		s.AddAnnotation(AnnotationString, aStart, aEnd)
		before := s.Annotations()
		s.Replace(rStart, rEnd, strings.Repeat("#", rEnd-rStart))

		require.Equal(rt, before, s.Annotations())
		require.Len(rt, s.String(), len(text))
	})
}

func TestProperty_PartsCoverTextAndLastAnnotationWins(t *testing.T) {
	types := []AnnotationType{AnnotationKeyword, AnnotationString, AnnotationMatch, AnnotationSelectedMatch}

	rapid.Check(t, func(rt *rapid.T) {
		text := drawText(rt, "text")
		s := NewAnnotatedString(text)
		count := rapid.IntRange(0, 5).Draw(rt, "count")
		for i := 0; i < count; i++ {
			start, end := drawRange(rt, 0, len(text), "annotation")
			s.AddAnnotation(rapid.SampledFrom(types).Draw(rt, "type"), start, end)
		}

		var sb strings.Builder
		for part := range s.All() {
			require.NotEmpty(rt, part.Text)

			want := AnnotationNone
			for _, a := range s.Annotations() {
				if a.Covers(sb.Len()) {
					want = a.Type
				}
			}
			require.Equal(rt, want, part.Type)
			sb.WriteString(part.Text)
		}
		require.Equal(rt, text, sb.String())
	})
}
