package schoolService

import (
	"ShuleGolang/internal/api/school"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *schoolService) CreateStudent(ctx context.Context, req school.CreateStudentRequest) (entity.Student, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.schoolRepository.NewClient(false)
	if err != nil {
		return entity.Student{}, err
	}

	admissionNo := strings.TrimSpace(req.AdmissionNo)
	if strings.EqualFold(admissionNo, "AUTO") {
		id, err := s.utils.NewULIDFromTimestamp(time.Now())
		if err != nil {
			return entity.Student{}, err
		}
		admissionNo = fmt.Sprintf("ADM-%s", id[:8])
	} else {
		existing, err := repo.Students.GetStudentByAdmissionNo(ctx, admissionNo)
		if err == nil && existing.ID != "" {
			return entity.Student{}, school.ErrDuplicateAdmissionNo
		}
		if err != nil && !errors.Is(err, school.ErrStudentNotFound) {
			return entity.Student{}, err
		}
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Student{}, err
	}

	student := entity.Student{
		ID:          id,
		StudentName: strings.TrimSpace(req.StudentName),
		AdmissionNo: admissionNo,
		ClassName:   strings.TrimSpace(req.ClassName),
		CreatedAt:   time.Now(),
	}

	if err := repo.Students.CreateStudent(ctx, student); err != nil {
		return entity.Student{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":   requestID,
		"student_name": student.StudentName,
		"admission_no": student.AdmissionNo,
		"class_name":   student.ClassName,
	}).Info("Student created")

	return student, nil
}

func (s *schoolService) GetAllStudents(ctx context.Context, limit, offset int) ([]entity.Student, int, error) {
	repo, err := s.schoolRepository.NewClient(false)
	if err != nil {
		return nil, 0, err
	}

	if limit <= 0 || limit > 100 {
		limit = 50
	}
	if offset < 0 {
		offset = 0
	}

	return repo.Students.GetAllStudents(ctx, limit, offset)
}
