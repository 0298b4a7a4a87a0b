package apperror

// Stable machine-readable codes carried in the error envelope. Handlers
// never invent codes inline; every service error maps to one of these.
const (
	// Client errors (4xx)
	CodeInvalidInput = "INVALID_INPUT"
	CodeUnauthorized = "UNAUTHORIZED"
	CodeForbidden    = "FORBIDDEN"
	CodeNotFound     = "NOT_FOUND"
	// CodeConflict covers uniqueness violations and overlapping pay periods.
	CodeConflict = "CONFLICT"
	// CodeInvalidState covers transition rules: editing locked hours,
	// re-approving a reviewed entry, deleting a non-pending payroll.
	CodeInvalidState = "INVALID_STATE"

	// Server errors (5xx)
	CodeInternalError      = "INTERNAL_ERROR"
	CodeServiceUnavailable = "SERVICE_UNAVAILABLE"
)
