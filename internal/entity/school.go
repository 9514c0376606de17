package entity

import (
	"time"
)

type Student struct {
	ID          string    `json:"id"`
	StudentName string    `json:"student_name"`
	AdmissionNo string    `json:"admission_no"`
	ClassName   string    `json:"class_name"`
	CreatedAt   time.Time `json:"created_at"`
}

type Guardian struct {
	ID           string    `json:"id"`
	GuardianName string    `json:"guardian_name"`
	Relationship string    `json:"relationship"`
	Phone        string    `json:"phone"`
	Email        string    `json:"email"`
	StudentName  string    `json:"student_name"`
	CreatedAt    time.Time `json:"created_at"`
}

type SchoolClass struct {
	ID        string    `json:"id"`
	ClassName string    `json:"class_name"`
	Level     string    `json:"level"`
	Stream    string    `json:"stream,omitempty"`
	CreatedAt time.Time `json:"created_at"`
}
