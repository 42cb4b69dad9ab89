package apperror

// AppError is the structured error type surfaced to API callers.
// It carries an HTTP status code, a stable machine-readable kind,
// and a user-facing message. The wrapped error is never exposed.
type AppError struct {
	Status  int    // HTTP status code (e.g., 400, 404, 409)
	Kind    string // Stable error kind (e.g., "booking_conflict")
	Message string // User-facing error message
	Err     error  // The underlying error, if any (not exposed to user)
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// New creates a new AppError with a status code, kind and message.
func New(status int, kind, message string) *AppError {
	return &AppError{
		Status:  status,
		Kind:    kind,
		Message: message,
	}
}

// Wrap creates a new AppError wrapping an existing error.
func Wrap(err error, status int, kind, message string) *AppError {
	return &AppError{
		Status:  status,
		Kind:    kind,
		Message: message,
		Err:     err,
	}
}
