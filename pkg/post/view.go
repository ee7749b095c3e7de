package post

import (
	"bytes"
	"encoding/json"
	"fmt"

	"stream/pkg/content"
)

// View is the public shape of a post, the PostView of the HTTP API.
type View struct {
	Id        string
	Author    string
	Avatar    string
	Timestamp string
	Location  *string
	Content   content.Variant
	Caption   string
	Hashtags  []string
	SortOrder int
}

func (v *View) ContentType() content.Type {
	if v.Content == nil {
		return ""
	}
	return v.Content.Type()
}

type wireView struct {
	Id           wireId               `json:"id,omitempty"`
	Author       string               `json:"author" validate:"required,max=100"`
	Avatar       string               `json:"avatar" validate:"required,max=10"`
	Timestamp    string               `json:"timestamp" validate:"required,max=100"`
	Location     *string              `json:"location" validate:"omitempty,max=100"`
	ContentType  string               `json:"contentType" validate:"required,oneof=code image"`
	CodeSnippet  *content.CodeSnippet `json:"codeSnippet"`
	ImageContent *content.ImageCard   `json:"imageContent"`
	Caption      string               `json:"caption" validate:"required"`
	Hashtags     []string             `json:"hashtags"`
	SortOrder    int                  `json:"sortOrder"`
}

// wireId accepts the id as a JSON string or number. Clients may echo back
// either form; the server never trusts it.
type wireId string

func (id *wireId) UnmarshalJSON(b []byte) error {
	b = bytes.TrimSpace(b)
	if bytes.Equal(b, []byte("null")) {
		*id = ""
		return nil
	}
	if len(b) > 0 && b[0] == '"' {
		var s string
		if err := json.Unmarshal(b, &s); err != nil {
			return err
		}
		*id = wireId(s)
		return nil
	}
	var n json.Number
	if err := json.Unmarshal(b, &n); err != nil {
		return fmt.Errorf("post: id must be a string or a number")
	}
	*id = wireId(n.String())
	return nil
}

func (v View) MarshalJSON() ([]byte, error) {
	w := wireView{
		Id:          wireId(v.Id),
		Author:      v.Author,
		Avatar:      v.Avatar,
		Timestamp:   v.Timestamp,
		Location:    v.Location,
		ContentType: string(v.ContentType()),
		Caption:     v.Caption,
		Hashtags:    v.Hashtags,
		SortOrder:   v.SortOrder,
	}
	switch c := v.Content.(type) {
	case *content.CodeSnippet:
		w.CodeSnippet = c
	case *content.ImageCard:
		w.ImageContent = c
	}
	if w.Hashtags == nil {
		w.Hashtags = []string{}
	}
	return json.Marshal(w)
}

// UnmarshalJSON parses and validates an incoming PostView. The populated
// content field has to agree with contentType.
func (v *View) UnmarshalJSON(b []byte) error {
	var w wireView
	if err := json.Unmarshal(b, &w); err != nil {
		return err
	}
	if fields := validateStruct(&w); len(fields) > 0 {
		return &ValidationError{Fields: fields}
	}

	variant, err := w.variant()
	if err != nil {
		return err
	}

	*v = View{
		Id:        string(w.Id),
		Author:    w.Author,
		Avatar:    w.Avatar,
		Timestamp: w.Timestamp,
		Location:  w.Location,
		Content:   variant,
		Caption:   w.Caption,
		Hashtags:  w.Hashtags,
		SortOrder: w.SortOrder,
	}
	if v.Hashtags == nil {
		v.Hashtags = []string{}
	}
	return nil
}

func (w *wireView) variant() (content.Variant, error) {
	t, err := content.ParseType(w.ContentType)
	if err != nil {
		return nil, &ValidationError{Fields: map[string]string{"contentType": err.Error()}}
	}

	fields := map[string]string{}
	var v content.Variant
	switch t {
	case content.TypeCode:
		if w.CodeSnippet == nil {
			fields["codeSnippet"] = "The field 'codeSnippet' is required when contentType is 'code'."
		}
		if w.ImageContent != nil {
			fields["imageContent"] = "The field 'imageContent' must be null when contentType is 'code'."
		}
		v = w.CodeSnippet
	case content.TypeImage:
		if w.ImageContent == nil {
			fields["imageContent"] = "The field 'imageContent' is required when contentType is 'image'."
		}
		if w.CodeSnippet != nil {
			fields["codeSnippet"] = "The field 'codeSnippet' must be null when contentType is 'image'."
		}
		v = w.ImageContent
	}
	if len(fields) > 0 {
		return nil, &ValidationError{Fields: fields}
	}
	return v, nil
}
