package errs

// Failure classes shared by every layer. Specific errors are marked with one
// of these so the HTTP boundary can map them without knowing every sentinel.
var (
	ErrNotFound          = New("not found")
	ErrInsufficientStock = New("insufficient stock")
	ErrInvalidInput      = New("invalid input")
	ErrConflict          = New("conflict")
	ErrUpstreamFailure   = New("upstream failure")
	ErrFatal             = New("fatal")
	ErrUnavailable       = New("temporarily unavailable")
)

// Fatal wins over every other class when an error carries several marks.
var taxonomy = []error{
	ErrFatal,
	ErrUpstreamFailure,
	ErrInsufficientStock,
	ErrNotFound,
	ErrInvalidInput,
	ErrConflict,
	ErrUnavailable,
}
