package content

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Document is the untyped JSON tree a variant is persisted as.
type Document map[string]interface{}

// Encode converts a variant into its storage document. A nil variant encodes
// to a nil document.
func Encode(v Variant) Document {
	switch c := v.(type) {
	case *CodeSnippet:
		if c == nil {
			return nil
		}
		lines := make([]interface{}, 0, len(c.Lines))
		for _, l := range c.Lines {
			segments := make([]interface{}, 0, len(l.Segments))
			for _, s := range l.Segments {
				segments = append(segments, map[string]interface{}{
					"text": s.Text,
					"type": string(s.Kind),
				})
			}
			lines = append(lines, map[string]interface{}{"segments": segments})
		}
		return Document{"lines": lines}
	case *ImageCard:
		if c == nil {
			return nil
		}
		return Document{
			"emoji":   c.Emoji,
			"title":   c.Title,
			"variant": c.Variant,
		}
	}
	return nil
}

// Decode is the inverse of Encode. A nil document decodes to a nil variant.
func Decode(doc Document, t Type) (Variant, error) {
	if doc == nil {
		return nil, nil
	}
	switch t {
	case TypeCode:
		return decodeSnippet(doc)
	case TypeImage:
		return decodeImage(doc)
	}
	return nil, malformed(t, "", "unknown content type")
}

func decodeSnippet(doc Document) (*CodeSnippet, error) {
	rawLines, err := array(doc, TypeCode, "lines", "lines")
	if err != nil {
		return nil, err
	}

	snippet := &CodeSnippet{Lines: make([]CodeLine, 0, len(rawLines))}
	for i, rl := range rawLines {
		linePath := fmt.Sprintf("lines[%d]", i)
		line, ok := rl.(map[string]interface{})
		if !ok {
			return nil, malformed(TypeCode, linePath, "expected object")
		}
		rawSegments, err := array(line, TypeCode, "segments", linePath+".segments")
		if err != nil {
			return nil, err
		}

		segments := make([]CodeSegment, 0, len(rawSegments))
		for j, rs := range rawSegments {
			segPath := fmt.Sprintf("%s.segments[%d]", linePath, j)
			seg, ok := rs.(map[string]interface{})
			if !ok {
				return nil, malformed(TypeCode, segPath, "expected object")
			}
			text, err := str(seg, TypeCode, "text", segPath+".text")
			if err != nil {
				return nil, err
			}
			kind, err := str(seg, TypeCode, "type", segPath+".type")
			if err != nil {
				return nil, err
			}
			h, err := ParseHighlight(kind)
			if err != nil {
				return nil, &MalformedContentError{Type: TypeCode, Path: segPath + ".type", Err: err}
			}
			segments = append(segments, CodeSegment{Text: text, Kind: h})
		}
		snippet.Lines = append(snippet.Lines, CodeLine{Segments: segments})
	}
	return snippet, nil
}

func decodeImage(doc Document) (*ImageCard, error) {
	card := new(ImageCard)
	fields := []struct {
		key string
		dst *string
	}{
		{"emoji", &card.Emoji},
		{"title", &card.Title},
		{"variant", &card.Variant},
	}
	for _, f := range fields {
		v, err := str(doc, TypeImage, f.key, f.key)
		if err != nil {
			return nil, err
		}
		*f.dst = v
	}
	return card, nil
}

func array(m map[string]interface{}, t Type, key, path string) ([]interface{}, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return nil, malformed(t, path, "missing")
	}
	arr, ok := raw.([]interface{})
	if !ok {
		return nil, malformed(t, path, fmt.Sprintf("expected array, got %T", raw))
	}
	return arr, nil
}

func str(m map[string]interface{}, t Type, key, path string) (string, error) {
	raw, ok := m[key]
	if !ok || raw == nil {
		return "", malformed(t, path, "missing")
	}
	s, ok := raw.(string)
	if !ok {
		return "", malformed(t, path, fmt.Sprintf("expected string, got %T", raw))
	}
	return s, nil
}

// Marshal encodes a variant straight to JSON bytes for a document column.
func Marshal(v Variant) ([]byte, error) {
	doc := Encode(v)
	if doc == nil {
		return nil, nil
	}
	return json.Marshal(doc)
}

// Unmarshal parses a document column and decodes it as t. Empty input and
// JSON null yield a nil variant.
func Unmarshal(raw []byte, t Type) (Variant, error) {
	doc, err := ParseDocument(raw, t)
	if err != nil || doc == nil {
		return nil, err
	}
	return Decode(doc, t)
}

// ParseDocument turns raw JSON into a Document without interpreting it.
func ParseDocument(raw []byte, t Type) (Document, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 {
		return nil, nil
	}

	var tree interface{}
	if err := json.Unmarshal(raw, &tree); err != nil {
		return nil, &MalformedContentError{Type: t, Err: err}
	}
	if tree == nil {
		return nil, nil
	}
	m, ok := tree.(map[string]interface{})
	if !ok {
		return nil, malformed(t, "", fmt.Sprintf("expected object, got %T", tree))
	}
	return Document(m), nil
}

// Clone deep-copies the document tree.
func (d Document) Clone() Document {
	if d == nil {
		return nil
	}
	return Document(cloneValue(map[string]interface{}(d)).(map[string]interface{}))
}

func cloneValue(v interface{}) interface{} {
	switch t := v.(type) {
	case map[string]interface{}:
		m := make(map[string]interface{}, len(t))
		for k, x := range t {
			m[k] = cloneValue(x)
		}
		return m
	case []interface{}:
		s := make([]interface{}, len(t))
		for i, x := range t {
			s[i] = cloneValue(x)
		}
		return s
	}
	return v
}
