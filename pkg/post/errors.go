package post

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned by repositories when no post has the given id.
var ErrNotFound = errors.New("post: not found")

type NotFoundError struct {
	Id PostId
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("Feed post not found with id: %d", e.Id)
}

func (e *NotFoundError) Is(target error) bool {
	return target == ErrNotFound
}

// ValidationError lists the problems found in an incoming PostView.
type ValidationError struct {
	Fields map[string]string
}

func (e *ValidationError) Error() string {
	msgs := make([]string, 0, len(e.Fields))
	for _, f := range sortedKeys(e.Fields) {
		msgs = append(msgs, e.Fields[f])
	}
	return "post: invalid post: " + strings.Join(msgs, " ")
}

func IsValidation(err error) bool {
	var vErr *ValidationError
	return errors.As(err, &vErr)
}
