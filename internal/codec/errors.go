package codec

import (
	"fmt"

	"cuelang.org/go/cue/token"
)

// DecodeError reports why a persisted document was rejected.
type DecodeError struct {
	Format Format
	Field  string    // path of the offending field; empty for syntax errors
	Pos    token.Pos // source position, when the parser reports one
	Err    error
}

func (e *DecodeError) Error() string {
	prefix := fmt.Sprintf("decode %s", e.Format)
	if e.Pos.IsValid() {
		prefix = fmt.Sprintf("%s:%d:%d", prefix, e.Pos.Line(), e.Pos.Column())
	}
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %v", prefix, e.Field, e.Err)
	}
	return fmt.Sprintf("%s: %v", prefix, e.Err)
}

func (e *DecodeError) Unwrap() error {
	return e.Err
}

func fieldError(field string, err error) *DecodeError {
	return &DecodeError{Field: field, Err: err}
}
