package core

// AnnotationType is the category of an annotated byte range.
type AnnotationType int

const (
	AnnotationNone          AnnotationType = iota
	AnnotationMatch                        // Regular search result
	AnnotationSelectedMatch                // Search result under the caret
	AnnotationNumber
	AnnotationKeyword
	AnnotationDataType
	AnnotationKnownValue
	AnnotationChar
	AnnotationLifetimeSpecifier
	AnnotationComment
	AnnotationString
	AnnotationFunction
	AnnotationOperator
)

var annotationTypeNames = map[AnnotationType]string{
	AnnotationNone:              "none",
	AnnotationMatch:             "match",
	AnnotationSelectedMatch:     "selected-match",
	AnnotationNumber:            "number",
	AnnotationKeyword:           "keyword",
	AnnotationDataType:          "type",
	AnnotationKnownValue:        "known-value",
	AnnotationChar:              "char",
	AnnotationLifetimeSpecifier: "lifetime",
	AnnotationComment:           "comment",
	AnnotationString:            "string",
	AnnotationFunction:          "function",
	AnnotationOperator:          "operator",
}

func (t AnnotationType) String() string {
	if name, ok := annotationTypeNames[t]; ok {
		return name
	}
	return "unknown"
}

// Annotation tags the half-open byte range [Start, End) with a category.
type Annotation struct {
	Type  AnnotationType
	Start int
	End   int
}

// Len returns the number of bytes covered by the annotation.
func (a Annotation) Len() int {
	return a.End - a.Start
}

// Covers reports whether byteIdx lies inside the annotation.
func (a Annotation) Covers(byteIdx int) bool {
	return a.Start <= byteIdx && byteIdx < a.End
}

// ParseAnnotationType returns the type with the given name.
func ParseAnnotationType(name string) (AnnotationType, bool) {
	for t, n := range annotationTypeNames {
		if n == name {
			return t, true
		}
	}
	return AnnotationNone, false
}
