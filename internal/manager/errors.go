package manager

// notFoundError covers missing models, a missing config file, and unknown
// command reference types; the HTTP layer maps it to 404.
type notFoundError struct{ msg string }

func (e notFoundError) Error() string { return e.msg }

// ErrNotFound constructs a notFoundError.
func ErrNotFound(msg string) error { return notFoundError{msg: msg} }

// IsNotFound reports whether err indicates a missing resource.
func IsNotFound(err error) bool {
	_, ok := err.(notFoundError)
	return ok
}

// conflictError signals a duplicate target filename (return 409).
type conflictError struct{ msg string }

func (e conflictError) Error() string { return e.msg }

// ErrConflict constructs a conflictError.
func ErrConflict(msg string) error { return conflictError{msg: msg} }

// IsConflict reports whether err indicates a duplicate resource.
func IsConflict(err error) bool {
	_, ok := err.(conflictError)
	return ok
}

// payloadTooLargeError signals an upload over the size ceiling (return 413).
type payloadTooLargeError struct{ msg string }

func (e payloadTooLargeError) Error() string { return e.msg }

// ErrPayloadTooLarge constructs a payloadTooLargeError.
func ErrPayloadTooLarge(msg string) error { return payloadTooLargeError{msg: msg} }

// IsPayloadTooLarge reports whether err indicates an oversized payload.
func IsPayloadTooLarge(err error) bool {
	_, ok := err.(payloadTooLargeError)
	return ok
}

// validationError signals malformed input such as a non-.gguf upload (return 400).
type validationError struct{ msg string }

func (e validationError) Error() string { return e.msg }

// ErrValidation constructs a validationError.
func ErrValidation(msg string) error { return validationError{msg: msg} }

// IsValidation reports whether err indicates invalid input.
func IsValidation(err error) bool {
	_, ok := err.(validationError)
	return ok
}

// upstreamError signals that the swap service failed on an operation where the
// failure must surface (the explicit test call). Read paths never raise it;
// they degrade to a disconnected status instead.
type upstreamError struct{ msg string }

func (e upstreamError) Error() string { return e.msg }

// ErrUpstream constructs an upstreamError.
func ErrUpstream(msg string) error { return upstreamError{msg: msg} }

// IsUpstream reports whether err indicates a swap service failure.
func IsUpstream(err error) bool {
	_, ok := err.(upstreamError)
	return ok
}
