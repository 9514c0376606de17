package schoolRepository

import (
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"context"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/sirupsen/logrus"
)

type GuardianDB struct {
	ID           string    `db:"id"`
	GuardianName string    `db:"guardian_name"`
	Relationship string    `db:"relationship"`
	Phone        string    `db:"phone"`
	Email        string    `db:"email"`
	StudentName  string    `db:"student_name"`
	CreatedAt    time.Time `db:"created_at"`
}

func (r *guardianRepository) CreateGuardian(ctx context.Context, guardian entity.Guardian) error {
	requestID := contextPkg.GetRequestID(ctx)

	argsKV := map[string]interface{}{
		"id":            guardian.ID,
		"guardian_name": guardian.GuardianName,
		"relationship":  guardian.Relationship,
		"phone":         guardian.Phone,
		"email":         guardian.Email,
		"student_name":  guardian.StudentName,
		"created_at":    guardian.CreatedAt,
	}

	query, args, err := sqlx.Named(queryCreateGuardian, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Failed to build SQL query for CreateGuardian")
		return err
	}
	query = r.q.Rebind(query)

	if _, err := r.q.ExecContext(ctx, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("Database error when creating guardian")
		return err
	}

	return nil
}

func (r *guardianRepository) GetAllGuardians(ctx context.Context, limit, offset int) ([]entity.Guardian, int, error) {
	requestID := contextPkg.GetRequestID(ctx)
	var guardiansDB []GuardianDB

	argsKV := map[string]interface{}{
		"limit":  limit,
		"offset": offset,
	}

	query, args, err := sqlx.Named(queryGetAllGuardians, argsKV)
	if err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllGuardians named query preparation err")
		return nil, 0, err
	}
	query = r.q.Rebind(query)

	if err := r.q.SelectContext(ctx, &guardiansDB, query, args...); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllGuardians execution err")
		return nil, 0, err
	}

	var total int
	if err := r.q.QueryRowxContext(ctx, r.q.Rebind(queryCountGuardians)).Scan(&total); err != nil {
		r.log.WithFields(logrus.Fields{
			"request_id": requestID,
			"error":      err.Error(),
		}).Error("GetAllGuardians count err")
		return nil, 0, err
	}

	guardians := make([]entity.Guardian, 0, len(guardiansDB))
	for _, guardianDB := range guardiansDB {
		guardians = append(guardians, makeGuardian(guardianDB))
	}

	return guardians, total, nil
}

func makeGuardian(guardianDB GuardianDB) entity.Guardian {
	return entity.Guardian{
		ID:           guardianDB.ID,
		GuardianName: guardianDB.GuardianName,
		Relationship: guardianDB.Relationship,
		Phone:        guardianDB.Phone,
		Email:        guardianDB.Email,
		StudentName:  guardianDB.StudentName,
		CreatedAt:    guardianDB.CreatedAt,
	}
}
