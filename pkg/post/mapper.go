package post

import (
	"stream/pkg/content"
)

// ToRecord converts a view into the stored shape. The view id is ignored;
// storage assigns ids and paths carry them.
func ToRecord(v *View) (*Post, error) {
	if v.Content == nil {
		return nil, &ValidationError{Fields: map[string]string{
			"contentType": "The post has no content.",
		}}
	}

	p := &Post{
		Author:      v.Author,
		Avatar:      v.Avatar,
		Timestamp:   v.Timestamp,
		Location:    copyString(v.Location),
		ContentType: v.Content.Type(),
		Caption:     v.Caption,
		Hashtags:    copyStrings(v.Hashtags),
		SortOrder:   v.SortOrder,
	}
	switch p.ContentType {
	case content.TypeCode:
		p.CodeSnippet = content.Encode(v.Content)
	case content.TypeImage:
		p.ImageContent = content.Encode(v.Content)
	}
	return p, nil
}

// ToView converts a stored post into its public shape. A record whose
// columns disagree with its content type is reported as malformed.
func ToView(p *Post) (*View, error) {
	if _, err := content.ParseType(string(p.ContentType)); err != nil {
		return nil, &content.MalformedContentError{Type: p.ContentType, Reason: "unknown content type", Err: err}
	}

	body, other := p.documents()
	if other != nil {
		return nil, &content.MalformedContentError{
			Type:   p.ContentType,
			Reason: "post " + p.Id.String() + " has both content documents set",
		}
	}
	if body == nil {
		return nil, &content.MalformedContentError{
			Type:   p.ContentType,
			Reason: "post " + p.Id.String() + " has no content document",
		}
	}

	variant, err := content.Decode(body, p.ContentType)
	if err != nil {
		return nil, err
	}

	return &View{
		Id:        p.Id.String(),
		Author:    p.Author,
		Avatar:    p.Avatar,
		Timestamp: p.Timestamp,
		Location:  copyString(p.Location),
		Content:   variant,
		Caption:   p.Caption,
		Hashtags:  copyStrings(p.Hashtags),
		SortOrder: p.SortOrder,
	}, nil
}

func ToViews(posts []*Post) ([]*View, error) {
	views := make([]*View, 0, len(posts))
	for _, p := range posts {
		v, err := ToView(p)
		if err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, nil
}

func copyString(s *string) *string {
	if s == nil {
		return nil
	}
	c := *s
	return &c
}

func copyStrings(s []string) []string {
	c := make([]string, len(s))
	copy(c, s)
	return c
}
