package core

import (
	"slices"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/rivo/uniseg"
)

var rustKeywords = []string{
	"break", "const", "continue", "crate", "else", "enum", "extern", "false",
	"fn", "for", "if", "impl", "in", "let", "loop", "match", "mod", "move",
	"mut", "pub", "ref", "return", "self", "Self", "static", "struct", "super",
	"trait", "true", "type", "unsafe", "use", "where", "while", "async",
	"await", "dyn", "abstract", "become", "box", "do", "final", "macro",
	"override", "priv", "typeof", "unsized", "virtual", "yield", "try",
	"macro_rules", "union",
}

var rustTypes = []string{
	"i8", "i16", "i32", "i64", "i128", "isize",
	"u8", "u16", "u32", "u64", "u128", "usize",
	"f32", "f64", "bool", "char",
	"Option", "Result", "String", "str", "Vec", "HashMap",
}

var rustKnownValues = []string{"Some", "None", "true", "false", "Ok", "Err"}

// RustSyntaxHighlighter annotates Rust source one line at a time.
// Multi-line constructs such as block comments are not tracked.
type RustSyntaxHighlighter struct {
	highlights map[int][]Annotation
}

func NewRustSyntaxHighlighter() *RustSyntaxHighlighter {
	return &RustSyntaxHighlighter{highlights: make(map[int][]Annotation)}
}

// Highlight tokenizes the line on word boundaries and classifies every
// token. A construct spanning several tokens, like a string or an escaped
// char literal, becomes one annotation and the tokens it covers are skipped.
func (h *RustSyntaxHighlighter) Highlight(idx int, line *Line) {
	text := line.String()
	var result []Annotation

	consumed := 0
	state := -1
	for offset, rest := 0, text; rest != ""; {
		var word string
		word, rest, state = uniseg.FirstWordInString(rest, state)
		start := offset
		offset += len(word)
		if start < consumed {
			continue
		}

		annotationType, end, ok := classifyRustToken(text, start, word)
		if !ok {
			continue
		}
		result = append(result, Annotation{Type: annotationType, Start: start, End: end})
		consumed = end
	}
	h.highlights[idx] = result
}

func (h *RustSyntaxHighlighter) Annotations(idx int) ([]Annotation, bool) {
	annotations, ok := h.highlights[idx]
	return annotations, ok
}

func classifyRustToken(text string, start int, word string) (AnnotationType, int, bool) {
	rest := text[start:]
	switch {
	case strings.HasPrefix(rest, "//"):
		return AnnotationComment, len(text), true
	case strings.HasPrefix(rest, `"`):
		return AnnotationString, start + stringLiteralLen(rest), true
	case strings.HasPrefix(rest, "'"):
		if n := charLiteralLen(rest); n > 0 {
			return AnnotationChar, start + n, true
		}
		if n := lifetimeLen(rest); n > 0 {
			return AnnotationLifetimeSpecifier, start + n, true
		}
		return AnnotationNone, 0, false
	}

	end := start + len(word)
	switch {
	case IsValidNumber(word):
		return AnnotationNumber, end, true
	case slices.Contains(rustKeywords, word):
		return AnnotationKeyword, end, true
	case slices.Contains(rustTypes, word):
		return AnnotationDataType, end, true
	case slices.Contains(rustKnownValues, word):
		return AnnotationKnownValue, end, true
	}
	return AnnotationNone, 0, false
}

// stringLiteralLen returns the length of the string literal at the start of
// s, or len(s) when it is not terminated on this line.
func stringLiteralLen(s string) int {
	for i := 1; i < len(s); i++ {
		switch s[i] {
		case '\\':
			i++
		case '"':
			return i + 1
		}
	}
	return len(s)
}

// charLiteralLen returns the length of the char literal at the start of s,
// or 0 if there is none. Accepted forms are 'x', '\n', '\x7f' and '\u{1F600}'.
func charLiteralLen(s string) int {
	if len(s) < 3 || s[0] != '\'' {
		return 0
	}

	n := 1
	if s[1] == '\\' {
		n = escapeLen(s[1:])
		if n == 0 {
			return 0
		}
		n++
	} else {
		r, size := utf8.DecodeRuneInString(s[1:])
		if r == utf8.RuneError || r == '\'' {
			return 0
		}
		n += size
	}

	if n >= len(s) || s[n] != '\'' {
		return 0
	}
	return n + 1
}

// escapeLen returns the length of the escape sequence at the start of s,
// which begins with a backslash.
func escapeLen(s string) int {
	if len(s) < 2 {
		return 0
	}
	switch s[1] {
	case 'n', 'r', 't', '\\', '0', '\'', '"':
		return 2
	case 'x':
		if len(s) >= 4 && isDigitInBase(rune(s[2]), 16) && isDigitInBase(rune(s[3]), 16) {
			return 4
		}
	case 'u':
		if len(s) < 4 || s[2] != '{' {
			return 0
		}
		closing := strings.IndexByte(s[3:], '}')
		if closing < 1 || closing > 6 {
			return 0
		}
		for _, r := range s[3 : 3+closing] {
			if !isDigitInBase(r, 16) {
				return 0
			}
		}
		return 3 + closing + 1
	}
	return 0
}

// lifetimeLen returns the length of the lifetime specifier at the start of
// s, or 0 if there is none. A quote closing the identifier makes it a char
// literal candidate instead.
func lifetimeLen(s string) int {
	if len(s) < 2 || s[0] != '\'' {
		return 0
	}
	n := 1
	for i, r := range s[1:] {
		valid := r == '_' || unicode.IsLetter(r) || (i > 0 && unicode.IsDigit(r))
		if !valid {
			break
		}
		n += utf8.RuneLen(r)
	}
	if n == 1 || (n < len(s) && s[n] == '\'') {
		return 0
	}
	return n
}

// IsValidNumber reports whether word is a Rust numeric literal: either a
// prefixed literal (see IsNumericLiteral) or a decimal number with optional
// digit separators, one fraction dot and one exponent marker.
func IsValidNumber(word string) bool {
	if word == "" {
		return false
	}
	if IsNumericLiteral(word) {
		return true
	}
	if word[0] < '0' || word[0] > '9' {
		return false
	}

	seenDot := false
	seenExp := false
	prevWasDigit := true
	for _, r := range word[1:] {
		switch {
		case r >= '0' && r <= '9':
			prevWasDigit = true
		case r == '_':
			if !prevWasDigit {
				return false
			}
			prevWasDigit = false
		case r == '.':
			if seenDot || seenExp || !prevWasDigit {
				return false
			}
			seenDot = true
			prevWasDigit = false
		case r == 'e' || r == 'E':
			if seenExp || !prevWasDigit {
				return false
			}
			seenExp = true
			prevWasDigit = false
		default:
			return false
		}
	}
	return prevWasDigit
}

// IsNumericLiteral reports whether word is a binary, octal or hexadecimal
// literal: "0", a base marker and at least one digit valid in that base.
func IsNumericLiteral(word string) bool {
	if len(word) < 3 || word[0] != '0' {
		return false
	}

	var base int
	switch word[1] {
	case 'b', 'B':
		base = 2
	case 'o', 'O':
		base = 8
	case 'x', 'X':
		base = 16
	default:
		return false
	}

	for _, r := range word[2:] {
		if !isDigitInBase(r, base) {
			return false
		}
	}
	return true
}

func isDigitInBase(r rune, base int) bool {
	var v int
	switch {
	case r >= '0' && r <= '9':
		v = int(r - '0')
	case r >= 'a' && r <= 'z':
		v = int(r-'a') + 10
	case r >= 'A' && r <= 'Z':
		v = int(r-'A') + 10
	default:
		return false
	}
	return v < base
}
