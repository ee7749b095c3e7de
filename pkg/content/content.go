// Package content defines the two shapes a feed post body can take and the
// mapping between them and the schema-flexible documents they are stored as.
package content

import "fmt"

// Type is the discriminator stored next to a post body.
type Type string

const (
	TypeCode  Type = "code"
	TypeImage Type = "image"
)

func ParseType(s string) (Type, error) {
	switch t := Type(s); t {
	case TypeCode, TypeImage:
		return t, nil
	}
	return "", fmt.Errorf("content: unknown content type %q", s)
}

// Highlight is the syntax class of a code segment.
type Highlight string

const (
	HighlightKeyword  Highlight = "keyword"
	HighlightFunction Highlight = "function"
	HighlightComment  Highlight = "comment"
	HighlightValue    Highlight = "value"
	HighlightPlain    Highlight = "plain"
)

func ParseHighlight(s string) (Highlight, error) {
	switch h := Highlight(s); h {
	case HighlightKeyword, HighlightFunction, HighlightComment, HighlightValue, HighlightPlain:
		return h, nil
	}
	return "", fmt.Errorf("content: unknown highlight kind %q", s)
}

func (h Highlight) MarshalText() ([]byte, error) {
	return []byte(h), nil
}

func (h *Highlight) UnmarshalText(b []byte) error {
	parsed, err := ParseHighlight(string(b))
	if err != nil {
		return err
	}
	*h = parsed
	return nil
}

// Variant is a post body. Only *CodeSnippet and *ImageCard implement it.
type Variant interface {
	Type() Type
	isVariant()
}

type (
	CodeSnippet struct {
		Lines []CodeLine `json:"lines" validate:"required,dive"`
	}

	CodeLine struct {
		Segments []CodeSegment `json:"segments" validate:"required,dive"`
	}

	CodeSegment struct {
		Text string    `json:"text"`
		Kind Highlight `json:"type" validate:"required"`
	}

	// ImageCard is an illustrated card; Variant is a free-form style tag.
	ImageCard struct {
		Emoji   string `json:"emoji"`
		Title   string `json:"title"`
		Variant string `json:"variant"`
	}
)

func (*CodeSnippet) Type() Type { return TypeCode }
func (*CodeSnippet) isVariant() {}

func (*ImageCard) Type() Type { return TypeImage }
func (*ImageCard) isVariant() {}
