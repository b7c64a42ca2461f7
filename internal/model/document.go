package model

import (
	"github.com/aidanlsb/agentsync/internal/parser"
)

// Frontmatter is implemented by every rule header type.
type Frontmatter interface {
	CanonicalRule | CursorRule | WindsurfRule | CopilotRule
	Fields() []parser.Field
}

// Document is one rule file: a typed header and the raw markdown body.
// Documents are rebuilt rather than modified.
type Document[T Frontmatter] struct {
	Frontmatter T
	Content     string
}

// Serialize renders the document as rule-file text.
func (d Document[T]) Serialize() string {
	return parser.Serialize(d.Frontmatter.Fields(), d.Content)
}

// Decoder turns a scanned header into a typed frontmatter value.
type Decoder[T Frontmatter] func(*parser.Header) (T, error)

// ParseDocument parses text with decode. file is used in error messages.
func ParseDocument[T Frontmatter](file, text string, decode Decoder[T]) (Document[T], error) {
	h, body, err := parser.Parse(file, text)
	if err != nil {
		return Document[T]{}, err
	}
	fm, err := decode(h)
	if err != nil {
		return Document[T]{}, err
	}
	return Document[T]{Frontmatter: fm, Content: body}, nil
}

func ParseCanonical(file, text string) (Document[CanonicalRule], error) {
	return ParseDocument(file, text, DecodeCanonical)
}

func ParseCursor(file, text string) (Document[CursorRule], error) {
	return ParseDocument(file, text, DecodeCursor)
}

func ParseWindsurf(file, text string) (Document[WindsurfRule], error) {
	return ParseDocument(file, text, DecodeWindsurf)
}

func ParseCopilot(file, text string) (Document[CopilotRule], error) {
	return ParseDocument(file, text, DecodeCopilot)
}
