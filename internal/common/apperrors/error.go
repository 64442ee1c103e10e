// Package apperrors provides chainable error values that carry an HTTP
// status code alongside a stable reason string. Packages declare sentinel
// errors with New and derive more specific ones with Error.New; errors.Is
// walks the derivation chain.
package apperrors

type Error interface {
	Error() string
	// ErrorAll returns the reason string joined with the messages of all
	// wrapped errors. This is what goes on the wire.
	ErrorAll() string
	// New derives a child error that inherits the receiver's status code.
	New(msg string) Error
	// Msg returns a copy of the error with its message replaced.
	Msg(msg string) Error
	// MsgErr returns a copy with the message replaced and errs wrapped.
	MsgErr(msg string, errs ...error) Error
	// Err returns a copy of the error wrapping errs.
	Err(errs ...error) Error
	Unwrap() []error
	Is(target error) bool
	SetStatusCode(code int) Error
	StatusCode() int
}
