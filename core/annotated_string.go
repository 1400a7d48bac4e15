package core

import (
	"iter"
	"slices"

	"github.com/ionut-t/gotext/internal/log"
)

// AnnotatedStringPart is a run of text sharing the same winning annotation.
// Type is AnnotationNone for text outside every annotation.
type AnnotatedStringPart struct {
	Text string
	Type AnnotationType
}

// AnnotatedString pairs a string with annotations over its bytes. It is
// built per render pass and never persisted.
type AnnotatedString struct {
	text        string
	annotations []Annotation
}

// NewAnnotatedString creates an unannotated string.
func NewAnnotatedString(text string) *AnnotatedString {
	return &AnnotatedString{text: text}
}

func (a *AnnotatedString) String() string {
	return a.text
}

// Len returns the length of the string in bytes.
func (a *AnnotatedString) Len() int {
	return len(a.text)
}

// Annotations returns a copy of the current annotations in insertion order.
func (a *AnnotatedString) Annotations() []Annotation {
	return slices.Clone(a.annotations)
}

// AddAnnotation tags [start, end) with annotationType. Overlaps are not
// resolved here; when iterating, the annotation added last wins.
func (a *AnnotatedString) AddAnnotation(annotationType AnnotationType, start, end int) {
	if start > end {
		log.Warn(log.CatHighlight, "ignoring inverted annotation", "type", annotationType, "start", start, "end", end)
		return
	}
	a.annotations = append(a.annotations, Annotation{
		Type:  annotationType,
		Start: start,
		End:   end,
	})
}

// Replace substitutes the bytes [start, end) with newText and moves every
// annotation boundary so it keeps pointing at the same text:
//   - boundaries at or after end shift by the length difference,
//   - boundaries inside [start, end) shift by the length difference but stay
//     within the replaced region,
//   - boundaries before start do not move.
//
// Annotations that become empty or start past the end of the string are
// dropped.
func (a *AnnotatedString) Replace(start, end int, newText string) {
	start = max(start, 0)
	end = min(end, len(a.text))
	if start > end {
		return
	}

	a.text = a.text[:start] + newText + a.text[end:]

	delta := len(newText) - (end - start)
	if delta == 0 {
		return
	}
	replacedEnd := start + len(newText)

	adjust := func(boundary int) int {
		switch {
		case boundary >= end:
			return boundary + delta
		case boundary >= start:
			return clampInt(boundary+delta, start, replacedEnd)
		default:
			return boundary
		}
	}

	kept := a.annotations[:0]
	for _, annotation := range a.annotations {
		annotation.Start = adjust(annotation.Start)
		annotation.End = min(adjust(annotation.End), len(a.text))
		if annotation.Start < annotation.End && annotation.Start < len(a.text) {
			kept = append(kept, annotation)
		}
	}
	a.annotations = kept
}

// TruncateLeftUntil removes everything before byte idx.
func (a *AnnotatedString) TruncateLeftUntil(idx int) {
	a.Replace(0, idx, "")
}

// TruncateRightFrom removes everything from byte idx onwards.
func (a *AnnotatedString) TruncateRightFrom(idx int) {
	a.Replace(idx, len(a.text), "")
}

// All yields the string as consecutive parts from left to right without
// gaps. At every byte the annotation added last among those covering it
// determines the part's type. The sequence can be ranged over repeatedly.
func (a *AnnotatedString) All() iter.Seq[AnnotatedStringPart] {
	return func(yield func(AnnotatedStringPart) bool) {
		for idx := 0; idx < len(a.text); {
			end, annotationType := a.partAt(idx)
			if !yield(AnnotatedStringPart{Text: a.text[idx:end], Type: annotationType}) {
				return
			}
			idx = end
		}
	}
}

// Parts collects All into a slice.
func (a *AnnotatedString) Parts() []AnnotatedStringPart {
	return slices.Collect(a.All())
}

// partAt returns the end of the part starting at idx and its type.
func (a *AnnotatedString) partAt(idx int) (int, AnnotationType) {
	active := -1
	for i, annotation := range a.annotations {
		if annotation.Covers(idx) {
			active = i
		}
	}

	end := len(a.text)
	annotationType := AnnotationNone
	candidates := a.annotations
	if active >= 0 {
		end = min(a.annotations[active].End, end)
		annotationType = a.annotations[active].Type
		// Only annotations added later can take over inside the active one.
		candidates = a.annotations[active+1:]
	}

	for _, annotation := range candidates {
		if annotation.Start > idx && annotation.Start < end && annotation.Len() > 0 {
			end = annotation.Start
		}
	}
	return end, annotationType
}
