package shallow

import (
	"errors"
	"fmt"
)

var (
	// ErrTypeMismatch is returned when a value that is not a record is passed
	// where a record is expected.
	ErrTypeMismatch = errors.New("shallow: value is not a record")

	// ErrEncoding is wrapped by every *EncodingError.
	ErrEncoding = errors.New("shallow: encoding failed")
)

// EncodingError reports a simple value that the JSON encoder could not
// represent, such as a complex number, NaN, or a string with invalid UTF-8.
type EncodingError struct {
	Key string
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("shallow: encode value for key %q: %v", e.Key, e.Err)
}

func (e *EncodingError) Unwrap() []error {
	return []error{ErrEncoding, e.Err}
}

func typeMismatch(v any) error {
	return fmt.Errorf("%w (got %T)", ErrTypeMismatch, v)
}
