package schoolRepository

import (
	"ShuleGolang/internal/entity"
	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type SQLExecutor interface {
	sqlx.ExtContext
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	QueryRowxContext(ctx context.Context, query string, args ...interface{}) *sqlx.Row
	Rebind(query string) string
}

func New(db *sqlx.DB, log *logrus.Logger) Repository {
	return &repository{
		DB:  db,
		log: log,
	}
}

type repository struct {
	DB  *sqlx.DB
	log *logrus.Logger
}

type Repository interface {
	NewClient(tx bool) (Client, error)
}

func (r *repository) NewClient(tx bool) (Client, error) {
	var sqlExecutor SQLExecutor
	var commitFunc, rollbackFunc func() error

	sqlExecutor = r.DB

	if tx {
		var err error
		txx, err := r.DB.Beginx()
		if err != nil {
			return Client{}, err
		}

		sqlExecutor = txx
		commitFunc = txx.Commit
		rollbackFunc = txx.Rollback
	} else {
		commitFunc = func() error { return nil }
		rollbackFunc = func() error { return nil }
	}

	return Client{
		Students:  &studentRepository{q: sqlExecutor, log: r.log},
		Guardians: &guardianRepository{q: sqlExecutor, log: r.log},
		Classes:   &classRepository{q: sqlExecutor, log: r.log},
		Commit:    commitFunc,
		Rollback:  rollbackFunc,
	}, nil
}

type Client struct {
	Students interface {
		CreateStudent(ctx context.Context, student entity.Student) error
		GetStudentByAdmissionNo(ctx context.Context, admissionNo string) (entity.Student, error)
		GetAllStudents(ctx context.Context, limit, offset int) ([]entity.Student, int, error)
	}

	Guardians interface {
		CreateGuardian(ctx context.Context, guardian entity.Guardian) error
		GetAllGuardians(ctx context.Context, limit, offset int) ([]entity.Guardian, int, error)
	}

	Classes interface {
		CreateClass(ctx context.Context, class entity.SchoolClass) error
		GetClassByName(ctx context.Context, className string) (entity.SchoolClass, error)
		GetAllClasses(ctx context.Context) ([]entity.SchoolClass, error)
	}

	Commit   func() error
	Rollback func() error
}

type studentRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type guardianRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}

type classRepository struct {
	q   SQLExecutor
	log *logrus.Logger
}
