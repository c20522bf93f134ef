package lotus

import "github.com/pkg/errors"

// Error kinds reported by the codec. Errors returned by this package carry
// additional context, match them with errors.Is.
var (
	// ErrInvalidEncoding is returned for malformed input: a zero width, a
	// payload that does not fit its width or a magnitude that cannot exist.
	ErrInvalidEncoding = errors.New("invalid lotus encoding")

	// ErrInvalidConfig is returned for a Config that fails validation.
	// It is a kind of ErrInvalidEncoding.
	ErrInvalidConfig = errors.WithMessage(ErrInvalidEncoding, "invalid configuration")

	// ErrJumpstarterOverflow is returned when the topmost tier width of a
	// value cannot be named by the jumpstarter field.
	ErrJumpstarterOverflow = errors.New("payload length exceeds jumpstarter capacity")

	// ErrValueTooLarge is returned when a payload width is beyond what the
	// configuration (or the target integer type) can represent at all.
	ErrValueTooLarge = errors.New("value too large for configuration")

	// ErrUnexpectedEOF is returned by Reader when more bits are requested
	// than remain in the input.
	ErrUnexpectedEOF = errors.New("insufficient bits in input")

	errWriterClosed = errors.New("write to closed Writer")
)
