package schoolService

import (
	"ShuleGolang/internal/api/school"
	"ShuleGolang/internal/entity"
	contextPkg "ShuleGolang/pkg/context"
	"errors"
	"strings"
	"time"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

func (s *schoolService) CreateClass(ctx context.Context, req school.CreateClassRequest) (entity.SchoolClass, error) {
	requestID := contextPkg.GetRequestID(ctx)

	repo, err := s.schoolRepository.NewClient(false)
	if err != nil {
		return entity.SchoolClass{}, err
	}

	className := strings.TrimSpace(req.ClassName)

	existing, err := repo.Classes.GetClassByName(ctx, className)
	if err == nil && existing.ID != "" {
		return entity.SchoolClass{}, school.ErrDuplicateClassName
	}
	if err != nil && !errors.Is(err, school.ErrClassNotFound) {
		return entity.SchoolClass{}, err
	}

	id, err := s.utils.NewULIDFromTimestamp(time.Now())
	if err != nil {
		return entity.SchoolClass{}, err
	}

	class := entity.SchoolClass{
		ID:        id,
		ClassName: className,
		Level:     strings.TrimSpace(req.Level),
		Stream:    strings.TrimSpace(req.Stream),
		CreatedAt: time.Now(),
	}

	if err := repo.Classes.CreateClass(ctx, class); err != nil {
		return entity.SchoolClass{}, err
	}

	s.log.WithFields(logrus.Fields{
		"request_id": requestID,
		"class_name": class.ClassName,
		"level":      class.Level,
	}).Info("Class created")

	return class, nil
}

func (s *schoolService) GetAllClasses(ctx context.Context) ([]entity.SchoolClass, error) {
	repo, err := s.schoolRepository.NewClient(false)
	if err != nil {
		return nil, err
	}

	return repo.Classes.GetAllClasses(ctx)
}
