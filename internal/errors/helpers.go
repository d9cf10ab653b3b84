package errors

import (
	"errors"
)

// As finds the first *Error in err's chain
func As(err error, target **Error) bool {
	return errors.As(err, target)
}

// GetCode returns the code of err, CodeInternal for foreign errors and CodeOK for nil
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Code
	}

	return CodeInternal
}

// GetMeta extracts metadata from an error
func GetMeta(err error) map[string]interface{} {
	var customErr *Error
	if err != nil && errors.As(err, &customErr) {
		return customErr.Meta
	}
	return nil
}

// GetMessage returns the message meant for the user, without code or cause
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var customErr *Error
	if errors.As(err, &customErr) {
		return customErr.Message
	}

	return err.Error()
}

// GetReason extracts the domain reason, or "" when none was set
func GetReason(err error) string {
	reason, _ := GetMeta(err)[MetaReason].(string)
	return reason
}

// IsNotFound checks if an error is a not found error
func IsNotFound(err error) bool {
	return GetCode(err) == CodeNotFound
}

// IsInvalidArgument checks if an error is an invalid argument error
func IsInvalidArgument(err error) bool {
	return GetCode(err) == CodeInvalidArgument
}

// IsAlreadyExists checks if an error is an already exists error
func IsAlreadyExists(err error) bool {
	return GetCode(err) == CodeAlreadyExists
}

// IsInternal checks if an error is an internal error
func IsInternal(err error) bool {
	return GetCode(err) == CodeInternal
}

// IsUnavailable checks if an error is an unavailable error
func IsUnavailable(err error) bool {
	return GetCode(err) == CodeUnavailable
}

// IsDuplicate checks for a duplicate character error
func IsDuplicate(err error) bool {
	return IsAlreadyExists(err) && GetReason(err) == ReasonDuplicateCharacter
}

// IsInvalidName checks for an unknown character name error
func IsInvalidName(err error) bool {
	return IsInvalidArgument(err) && GetReason(err) == ReasonInvalidName
}

// IsImportFormat checks for a malformed import error
func IsImportFormat(err error) bool {
	return IsInvalidArgument(err) && GetReason(err) == ReasonImportFormat
}
