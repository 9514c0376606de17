package schoolService

import (
	"ShuleGolang/internal/api/school"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *schoolService) CreateGuardian(ctx context.Context, req school.CreateGuardianRequest) (entity.Guardian, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.schoolRepository.NewClient(false)
	if err != nil {
		return entity.Guardian{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.Guardian{}, err
	}

	guardian := entity.Guardian{
		ID:           id,
		GuardianName: strings.TrimSpace(req.GuardianName),
		Relationship: strings.ToLower(strings.TrimSpace(req.Relationship)),
		Phone:        strings.TrimSpace(req.Phone),
		Email:        strings.ToLower(strings.TrimSpace(req.Email)),
		StudentName:  strings.TrimSpace(req.StudentName),
		CreatedAt:    time.Now(),
	}

	if err := repo.Guardians.CreateGuardian(ctx, guardian); err != nil {
		return entity.Guardian{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id":    requestID,
		"guardian_name": guardian.GuardianName,
		"student_name":  guardian.StudentName,
	}).Info("Guardian created")

	return guardian, nil
}

func (s *schoolService) GetAllGuardians(ctx context.Context, limit, offset int) ([]entity.Guardian, int, error) {
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

	return repo.Guardians.GetAllGuardians(ctx, limit, offset)
}
