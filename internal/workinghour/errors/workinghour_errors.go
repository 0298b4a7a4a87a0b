package workinghourerrors

import (
	"net/http"

	"staffops/internal/shared/apperror"
)

var (
	ErrWorkingHourNotFound = apperror.New(
		apperror.CodeNotFound,
		"working hour entry not found",
		http.StatusNotFound,
	)

	ErrWorkingHourLocked = apperror.New(
		apperror.CodeInvalidState,
		"cannot edit or delete: entry is approved or paid",
		http.StatusConflict,
	)

	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending entries can be approved or rejected",
		http.StatusConflict,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
