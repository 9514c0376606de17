package schoolRepository

import (
	"ShuleGolang/internal/api/school"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"context"
	"database/sql"
	"errors"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type StudentDB struct {
	ID          string    `db:"id"`
	StudentName string    `db:"student_name"`
	AdmissionNo string    `db:"admission_no"`
	ClassName   string    `db:"class_name"`
	CreatedAt   time.Time `db:"created_at"`
}

func (r *studentRepository) CreateStudent(ctx context.Context, student entity.Student) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":           student.ID,
		"student_name": student.StudentName,
		"admission_no": student.AdmissionNo,
		"class_name":   student.ClassName,
		"created_at":   student.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateStudent, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateStudent")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating student")
		return err
	}

	return nil
}

func (r *studentRepository) GetStudentByAdmissionNo(ctx context.Context, admissionNo string) (entity.Student, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var studentDB StudentDB

	argsKV := map[string]interface{}{
		"admission_no": admissionNo,
	}

	query, args, err := sqlx.Named(queryGetStudentByAdmissionNo, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStudentByAdmissionNo named query preparation err")
		return entity.Student{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&studentDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.Student{}, school.ErrStudentNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetStudentByAdmissionNo execution err")
		return entity.Student{}, err
	}

	return makeStudent(studentDB), nil
}

func (r *studentRepository) GetAllStudents(ctx context.Context, limit, offset int) ([]entity.Student, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var studentsDB []StudentDB

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetAllStudents, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllStudents named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &studentsDB, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllStudents execution err")
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(queryCountStudents)).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllStudents count err")
		return nil, 0, err
	}

	students := make([]entity.Student, 0, len(studentsDB))
	for _, studentDB := range studentsDB {
		students = append(students, makeStudent(studentDB))
	}

	return students, total, nil
}

func makeStudent(studentDB StudentDB) entity.Student {
	return entity.Student{
		ID:          studentDB.ID,
		StudentName: studentDB.StudentName,
		AdmissionNo: studentDB.AdmissionNo,
		ClassName:   studentDB.ClassName,
		CreatedAt:   studentDB.CreatedAt,
	}
}
