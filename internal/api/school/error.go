package school

import "ShuleGolang/pkg/response"

var (
	ErrStudentNotFound      = response.NewError(404, "student not found")
	ErrGuardianNotFound     = response.NewError(404, "guardian not found")
	ErrClassNotFound        = response.NewError(404, "class not found")
	ErrDuplicateAdmissionNo = response.NewError(409, "admission number already exists")
	ErrDuplicateClassName   = response.NewError(409, "class name already exists")
)
