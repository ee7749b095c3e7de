package content

import (
	"errors"
	"fmt"
)

// MalformedContentError reports a stored document that does not have the
// shape its content type declares.
type MalformedContentError struct {
	Type   Type
	Path   string
	Reason string
	Err    error
}

func (e *MalformedContentError) Error() string {
	msg := fmt.Sprintf("content: malformed %s document", e.Type)
	if e.Path != "" {
		msg += " at " + e.Path
	}
	if e.Reason != "" {
		msg += ": " + e.Reason
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *MalformedContentError) Unwrap() error {
	return e.Err
}

func IsMalformed(err error) bool {
	var mErr *MalformedContentError
	return errors.As(err, &mErr)
}

func malformed(t Type, path, reason string) *MalformedContentError {
	return &MalformedContentError{Type: t, Path: path, Reason: reason}
}
