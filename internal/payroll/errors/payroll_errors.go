package payrollerrors

import (
	"net/http"

	"staffops/internal/shared/apperror"
)

var (
	ErrPayrollNotFound = apperror.New(
		apperror.CodeNotFound,
		"payroll not found",
		http.StatusNotFound,
	)

	ErrOverlappingPeriod = apperror.New(
		apperror.CodeConflict,
		"a payroll already covers part of this period",
		http.StatusConflict,
	)

	ErrNoEligibleHours = apperror.New(
		apperror.CodeInvalidState,
		"no approved unpaid working hours in the selected period",
		http.StatusConflict,
	)

	ErrNotPending = apperror.New(
		apperror.CodeInvalidState,
		"only pending payrolls can be modified or deleted",
		http.StatusConflict,
	)

	ErrInvalidPeriod = apperror.New(
		apperror.CodeInvalidInput,
		"pay_period_start must be before or equal pay_period_end",
		http.StatusBadRequest,
	)

	ErrInvalidDateFormat = apperror.New(
		apperror.CodeInvalidInput,
		"invalid date format, expected YYYY-MM-DD",
		http.StatusBadRequest,
	)
)
