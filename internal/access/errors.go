package access

// ForbiddenError is a policy violation. The reason string is part of the
// observable contract and must not be reworded.
type ForbiddenError struct {
	Reason string
}

func (e *ForbiddenError) Error() string {
	return "forbidden: " + e.Reason
}

func forbidden(reason string) error {
	return &ForbiddenError{Reason: reason}
}

// ValidationError is a structural or schema mismatch. It is handled like a
// Forbidden failure: surfaced to the caller, never retried.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return "validation failed: " + e.Message
}
