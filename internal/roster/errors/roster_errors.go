package rostererrors

import (
	"net/http"

	"staffops/internal/shared/apperror"
)

var (
	ErrRosterNotFound = apperror.New(
		apperror.CodeNotFound,
		"roster entry not found",
		http.StatusNotFound,
	)
	ErrRosterLocked = apperror.New(
		apperror.CodeInvalidState,
		"cannot edit or delete: hours already approved",
		http.StatusConflict,
	)
	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
	ErrInvalidTimeFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid time format, expected HH:MM",
		http.StatusBadRequest,
	)
	ErrInvalidDateRange = apperror.New(
		apperror.CodeInvalidInput,
		"start_date must be before or equal end_date",
		http.StatusBadRequest,
	)
	ErrInvalidTimeRange = apperror.New(
		apperror.CodeInvalidInput,
		"end_time must be after start_time",
		http.StatusBadRequest,
	)
)
