// Package errors provides the coded error type used across the tracker.
//
// Every error that crosses a layer boundary is an *Error carrying a Code,
// a user-facing Message, an optional Cause and free-form Meta:
//
//	err := errors.NotFoundf("character %s not found", name)
//	err := errors.AlreadyExists("character already added").WithMeta("name", name)
//
// Wrapping keeps the original code so callers can still classify it:
//
//	if _, err := repo.Save(ctx, input); err != nil {
//	    return errors.Wrap(err, "failed to save roster")
//	}
//
// The three domain failures of the tracker are coded errors with a reason:
//
//	errors.Duplicate(name)        // ALREADY_EXISTS + DUPLICATE_CHARACTER
//	errors.InvalidName(name, hint) // INVALID_ARGUMENT + INVALID_CHARACTER_NAME
//	errors.ImportFormat(msg)      // INVALID_ARGUMENT + IMPORT_FORMAT
//
// Use IsDuplicate, IsInvalidName and IsImportFormat to check for them, and
// ToGRPCError / FromGRPCError at the transport boundary.
package errors
