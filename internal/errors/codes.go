package errors

// Code represents an error code
type Code string

// Error codes
const (
	CodeOK               Code = "OK"
	CodeCanceled         Code = "CANCELED"
	CodeInvalidArgument  Code = "INVALID_ARGUMENT"
	CodeDeadlineExceeded Code = "DEADLINE_EXCEEDED"
	CodeNotFound         Code = "NOT_FOUND"
	CodeAlreadyExists    Code = "ALREADY_EXISTS"
	CodeInternal         Code = "INTERNAL"
	CodeUnavailable      Code = "UNAVAILABLE"
	// CodeDataLoss marks a stored snapshot that can no longer be decoded
	CodeDataLoss Code = "DATA_LOSS"
)

// String returns the string representation of the code
func (c Code) String() string {
	return string(c)
}

// Reasons narrow a code down to one of the tracker's domain failures.
// They travel in the error's meta under MetaReason and in the gRPC ErrorInfo detail.
const (
	MetaReason = "reason"

	ReasonDuplicateCharacter = "DUPLICATE_CHARACTER"
	ReasonInvalidName        = "INVALID_CHARACTER_NAME"
	ReasonImportFormat       = "IMPORT_FORMAT"
)
