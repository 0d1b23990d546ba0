package errs

// ErrorKind identifies a kind of error.
// Wrapped kinds still match with errors.Is and errors.As.
type ErrorKind string

const (
	// InvalidArgument is returned when an argument supplied by the caller is not acceptable.
	InvalidArgument = ErrorKind("Invalid Argument")

	// NotFound is returned when a requested item is not found.
	NotFound = ErrorKind("Not Found")

	// Unsupported is returned when a feature, network or driver is not supported.
	Unsupported = ErrorKind("Unsupported")

	// InternalError is returned for failures that should never happen with well-typed inputs.
	InternalError = ErrorKind("Internal Error")

	// SomethingWentWrong is returned for unexpected local failures (filesystem, randomness, ...).
	SomethingWentWrong = ErrorKind("Something Went Wrong")

	// Unavailable is returned when the Tezos node can't be reached or answers with an error.
	Unavailable = ErrorKind("Unavailable")

	// Rejected is returned when the node refuses to apply an operation.
	Rejected = ErrorKind("Rejected")
)

// Error satisfies the error interface and prints human-readable errors.
func (e ErrorKind) Error() string {
	return string(e)
}
