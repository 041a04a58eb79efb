package appointment

import "github.com/BruksfildServices01/lab-scheduler/internal/httperr"

// ===============================
// Business error codes
// ===============================

const (
	CodeNotFound    = "appointment_not_found"
	CodeConflict    = "time_conflict"
	CodeDuplicateID = "duplicate_id"
)

func ErrNotFound() error {
	return httperr.ErrBusiness(CodeNotFound)
}

func ErrConflict() error {
	return httperr.ErrBusiness(CodeConflict)
}

func IsNotFound(err error) bool {
	return httperr.IsBusiness(err, CodeNotFound)
}

func IsConflict(err error) bool {
	return httperr.IsBusiness(err, CodeConflict)
}
