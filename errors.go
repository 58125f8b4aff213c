package zenvoice

import (
	"github.com/cockroachdb/errors"
)

// Sentinel errors. Concrete errors are marked with one of them, use errors.Is
// (or the Is* helpers) to classify.
var (
	// ErrValidation is a missing or malformed field on a user operation. The
	// operation is aborted with no state change.
	ErrValidation = errors.New("validation error")

	// ErrExportUnavailable means the document rendering capability is not
	// ready. Nothing is written.
	ErrExportUnavailable = errors.New("export unavailable")
)

// IsValidation reports whether err is a validation error.
func IsValidation(err error) bool { return errors.Is(err, ErrValidation) }

// IsExportUnavailable reports whether err is an export unavailable error.
func IsExportUnavailable(err error) bool { return errors.Is(err, ErrExportUnavailable) }

// validationError builds a validation error whose hint is the message to show
// to the user.
func validationError(hint string) error {
	err := errors.WithHint(errors.New(hint), hint)
	return errors.Mark(err, ErrValidation)
}

// Hint returns the user facing message of err, falling back to its text.
func Hint(err error) string {
	if hints := errors.GetAllHints(err); len(hints) > 0 {
		return hints[0]
	}
	return err.Error()
}
