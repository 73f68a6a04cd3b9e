package budget

import (
	"errors"
	"fmt"
)

// ErrBudgetNotFound is returned when the budget does not exist or is not
// owned by the current user.
var ErrBudgetNotFound = errors.New("budget not found")

// ValidationError reports a rejected creation or update field. Nothing
// is persisted when one is returned.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}
