package post

import (
	"strconv"

	"stream/pkg/content"
)

type PostId int64

func (id PostId) String() string {
	return strconv.FormatInt(int64(id), 10)
}

func ParsePostId(s string) (PostId, error) {
	id, err := strconv.ParseInt(s, 10, 64)
	if err != nil {
		return 0, err
	}
	return PostId(id), nil
}

// Post is the stored feed entry. Its body lives in exactly one of the two
// document columns, selected by ContentType.
type Post struct {
	Id          PostId
	Author      string
	Avatar      string
	Timestamp   string // display string, e.g. "2h ago"
	Location    *string
	ContentType content.Type

	CodeSnippet  content.Document
	ImageContent content.Document

	Caption   string
	Hashtags  []string
	SortOrder int
}

// documents returns the column that should hold the body and the one that
// must stay empty.
func (p *Post) documents() (body, other content.Document) {
	if p.ContentType == content.TypeImage {
		return p.ImageContent, p.CodeSnippet
	}
	return p.CodeSnippet, p.ImageContent
}
