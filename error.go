package si70xx

// BusError is the only error kind the driver produces. It wraps the error
// reported by the bus transport without interpretation: the driver cannot
// tell a missing sensor from bus contention, and retry policy belongs to
// the caller.
type BusError struct {
	// Err is the transport's own error, unmodified.
	Err error
}

func (e *BusError) Error() string {
	return "si70xx: bus transport failure: " + e.Err.Error()
}

// Unwrap returns the transport error so errors.Is and errors.As reach it.
func (e *BusError) Unwrap() error {
	return e.Err
}
