package growi

// Outcome is the typed result of a single wiki API operation, before it is
// rendered into an MCP reply. Exactly one of the success value or the failure
// message is populated; the constructors are the only way to build one.
type Outcome[T any] struct {
	ok      bool
	value   T
	message string
}

// Ok returns a successful outcome carrying value.
func Ok[T any](value T) Outcome[T] {
	return Outcome[T]{ok: true, value: value}
}

// Fail returns a failed outcome carrying a human-readable message.
// An empty message is replaced with "unknown error" so that a failure
// is never silently indistinguishable from success.
func Fail[T any](message string) Outcome[T] {
	if message == "" {
		message = "unknown error"
	}
	return Outcome[T]{message: message}
}

// OK reports whether the operation succeeded.
func (o Outcome[T]) OK() bool {
	return o.ok
}

// Value returns the success payload. Only meaningful when OK is true.
func (o Outcome[T]) Value() T {
	return o.value
}

// Message returns the failure message. Empty when OK is true.
func (o Outcome[T]) Message() string {
	return o.message
}
