package school

import "ShuleGolang/internal/entity"

type CreateStudentRequest struct {
	StudentName string `json:"student_name" validate:"required,min=3,max=100"`
	AdmissionNo string `json:"admission_no" validate:"required,max=30"`
	ClassName   string `json:"class_name" validate:"required,max=50"`
}

type CreateGuardianRequest struct {
	GuardianName string `json:"guardian_name" validate:"required,min=3,max=100"`
	Relationship string `json:"relationship" validate:"required,max=30"`
	Phone        string `json:"phone" validate:"required,min=7,max=20"`
	Email        string `json:"email" validate:"required,email"`
	StudentName  string `json:"student_name" validate:"required,min=3,max=100"`
}

type CreateClassRequest struct {
	ClassName string `json:"class_name" validate:"required,max=50"`
	Level     string `json:"level" validate:"required,max=30"`
	Stream    string `json:"stream" validate:"max=30"`
}

type StudentListResponse struct {
	Students []entity.Student `json:"students"`
	Total    int              `json:"total"`
}

type GuardianListResponse struct {
	Guardians []entity.Guardian `json:"guardians"`
	Total     int               `json:"total"`
}

type ClassListResponse struct {
	Classes []entity.SchoolClass `json:"classes"`
	Total   int                  `json:"total"`
}
