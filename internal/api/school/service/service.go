package schoolService

import (
	"ShuleGolang/internal/api/school"
	schoolRepository "ShuleGolang/internal/api/school/repository"
	"ShuleGolang/internal/entity"
	"ShuleGolang/pkg/utils"
	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

type ISchoolService interface {
	CreateStudent(ctx context.Context, req school.CreateStudentRequest) (entity.Student, error)
	GetAllStudents(ctx context.Context, limit, offset int) ([]entity.Student, int, error)
	CreateGuardian(ctx context.Context, req school.CreateGuardianRequest) (entity.Guardian, error)
	GetAllGuardians(ctx context.Context, limit, offset int) ([]entity.Guardian, int, error)
	CreateClass(ctx context.Context, req school.CreateClassRequest) (entity.SchoolClass, error)
	GetAllClasses(ctx context.Context) ([]entity.SchoolClass, error)
}

type schoolService struct {
	log              *logrus.Logger
	schoolRepository schoolRepository.Repository
	utils            utils.IUtils
}

func NewSchoolService(log *logrus.Logger, sr schoolRepository.Repository, utils utils.IUtils) ISchoolService {
	return &schoolService{
		log:              log,
		schoolRepository: sr,
		utils:            utils,
	}
}
