// Package highlighter provides chroma based syntax highlighting for every
// language the core editor has no built-in highlighter for.
package highlighter

import (
	"time"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/charmbracelet/lipgloss"
	"github.com/patrickmn/go-cache"

	"github.com/ionut-t/gotext/core"
	"github.com/ionut-t/gotext/internal/log"
)

const (
	tokenCacheExpiration = 5 * time.Minute
	tokenCacheCleanup    = 10 * time.Minute
)

// Highlighter annotates lines using a chroma lexer. Lines are lexed one at
// a time, so constructs spanning several lines are not recognised.
type Highlighter struct {
	lexer      chroma.Lexer
	tokens     *cache.Cache // Line text -> []chroma.Token
	highlights map[int][]core.Annotation
}

// New creates a highlighter for the given chroma language name or alias.
func New(language string) *Highlighter {
	lexer := lexers.Get(language)
	if lexer == nil {
		lexer = lexers.Fallback
	}
	return newWithLexer(lexer)
}

func newWithLexer(lexer chroma.Lexer) *Highlighter {
	return &Highlighter{
		lexer:      chroma.Coalesce(lexer),
		tokens:     cache.New(tokenCacheExpiration, tokenCacheCleanup),
		highlights: make(map[int][]core.Annotation),
	}
}

// Factory returns a core.SyntaxHighlighterFactory that uses the built-in
// Rust highlighter for Rust files and chroma for any other file chroma has
// a lexer for. Unnamed and unrecognised files get no highlighting.
func Factory() core.SyntaxHighlighterFactory {
	return func(info core.FileInfo) core.SyntaxHighlighter {
		if h := core.NewSyntaxHighlighter(info.FileType()); h != nil {
			return h
		}
		if !info.HasPath() {
			return nil
		}
		lexer := lexers.Match(info.Path())
		if lexer == nil {
			return nil
		}
		log.Debug(log.CatHighlight, "using chroma lexer", "file", info.String(), "lexer", lexer.Config().Name)
		return newWithLexer(lexer)
	}
}

func (h *Highlighter) Highlight(idx int, line *core.Line) {
	var result []core.Annotation
	offset := 0
	for _, token := range h.tokenize(line.String()) {
		// Lexers may append a newline that is not part of the line.
		if offset >= line.Len() {
			break
		}
		end := min(offset+len(token.Value), line.Len())
		if annotationType := annotationFor(token.Type); annotationType != core.AnnotationNone {
			result = append(result, core.Annotation{Type: annotationType, Start: offset, End: end})
		}
		offset = end
	}
	h.highlights[idx] = result
}

func (h *Highlighter) Annotations(idx int) ([]core.Annotation, bool) {
	annotations, ok := h.highlights[idx]
	return annotations, ok
}

// tokenize lexes text, reusing the tokens of an identical line.
func (h *Highlighter) tokenize(text string) []chroma.Token {
	if text == "" {
		return nil
	}
	if cached, ok := h.tokens.Get(text); ok {
		return cached.([]chroma.Token)
	}

	iterator, err := h.lexer.Tokenise(nil, text)
	if err != nil {
		log.ErrorErr(log.CatHighlight, "tokenise failed", err)
		// Cache the miss to avoid re-tokenising on every render
		h.tokens.Set(text, []chroma.Token(nil), cache.DefaultExpiration)
		return nil
	}

	tokens := iterator.Tokens()
	h.tokens.Set(text, tokens, cache.DefaultExpiration)
	return tokens
}

// annotationFor maps a chroma token type onto the editor's categories.
func annotationFor(tokenType chroma.TokenType) core.AnnotationType {
	switch {
	case tokenType == chroma.KeywordType:
		return core.AnnotationDataType
	case tokenType == chroma.KeywordConstant:
		return core.AnnotationKnownValue
	case tokenType.InCategory(chroma.Keyword):
		return core.AnnotationKeyword
	case tokenType == chroma.NameFunction || tokenType == chroma.NameBuiltin:
		return core.AnnotationFunction
	case tokenType == chroma.NameClass:
		return core.AnnotationDataType
	case tokenType == chroma.LiteralStringChar:
		return core.AnnotationChar
	case tokenType.InSubCategory(chroma.LiteralString):
		return core.AnnotationString
	case tokenType.InSubCategory(chroma.LiteralNumber):
		return core.AnnotationNumber
	case tokenType.InCategory(chroma.Comment):
		return core.AnnotationComment
	case tokenType.InCategory(chroma.Operator):
		return core.AnnotationOperator
	}
	return core.AnnotationNone
}

// representative chroma token for every syntax annotation type, used to
// derive colours from a chroma style.
var representative = map[core.AnnotationType]chroma.TokenType{
	core.AnnotationNumber:            chroma.LiteralNumber,
	core.AnnotationKeyword:           chroma.Keyword,
	core.AnnotationDataType:          chroma.KeywordType,
	core.AnnotationKnownValue:        chroma.KeywordConstant,
	core.AnnotationChar:              chroma.LiteralStringChar,
	core.AnnotationLifetimeSpecifier: chroma.NameLabel,
	core.AnnotationComment:           chroma.Comment,
	core.AnnotationString:            chroma.LiteralString,
	core.AnnotationFunction:          chroma.NameFunction,
	core.AnnotationOperator:          chroma.Operator,
}

// Styles converts the chroma style with the given name into lipgloss styles
// for the syntax annotation types. Unknown names use chroma's fallback.
func Styles(theme string) map[core.AnnotationType]lipgloss.Style {
	style := styles.Get(theme)
	result := make(map[core.AnnotationType]lipgloss.Style, len(representative))
	for annotationType, tokenType := range representative {
		result[annotationType] = styleForEntry(style.Get(tokenType))
	}
	return result
}

func styleForEntry(entry chroma.StyleEntry) lipgloss.Style {
	style := lipgloss.NewStyle()
	if entry.Colour.IsSet() {
		style = style.Foreground(lipgloss.Color(entry.Colour.String()))
	}
	if entry.Bold == chroma.Yes {
		style = style.Bold(true)
	}
	if entry.Italic == chroma.Yes {
		style = style.Italic(true)
	}
	if entry.Underline == chroma.Yes {
		style = style.Underline(true)
	}
	return style
}
