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

type ClassDB struct {
	ID        string    `db:"id"`
	ClassName string    `db:"class_name"`
	Level     string    `db:"level"`
	Stream    string    `db:"stream"`
	CreatedAt time.Time `db:"created_at"`
}

func (r *classRepository) CreateClass(ctx context.Context, class entity.SchoolClass) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":         class.ID,
		"class_name": class.ClassName,
		"level":      class.Level,
		"stream":     class.Stream,
		"created_at": class.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateClass, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateClass")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating class")
		return err
	}

	return nil
}

func (r *classRepository) GetClassByName(ctx context.Context, className string) (entity.SchoolClass, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var classDB ClassDB

	argsKV := map[string]interface{}{
		"class_name": className,
	}

	query, args, err := sqlx.Named(queryGetClassByName, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClassByName named query preparation err")
		return entity.SchoolClass{}, err
	}
	query = r.q.Rebind(query)

	if err := r.q.QueryRowxContext(ctx, query, args...).StructScan(&classDB); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return entity.SchoolClass{}, school.ErrClassNotFound
		}
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetClassByName execution err")
		return entity.SchoolClass{}, err
	}

	return makeClass(classDB), nil
}

func (r *classRepository) GetAllClasses(ctx context.Context) ([]entity.SchoolClass, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var classesDB []ClassDB

	if err := r.q.SelectContext(ctx, &classesDB, r.q.Rebind(queryGetAllClasses)); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllClasses execution err")
		return nil, err
	}

	classes := make([]entity.SchoolClass, 0, len(classesDB))
	for _, classDB := range classesDB {
		classes = append(classes, makeClass(classDB))
	}

	return classes, nil
}

func makeClass(classDB ClassDB) entity.SchoolClass {
	return entity.SchoolClass{
		ID:        classDB.ID,
		ClassName: classDB.ClassName,
		Level:     classDB.Level,
		Stream:    classDB.Stream,
		CreatedAt: classDB.CreatedAt,
	}
}
