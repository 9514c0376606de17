package assistantService

import (
	"ShuleGolang/internal/api/school"
	"fmt"
	"os"
	"strings"

	"github.com/sirupsen/logrus"
	"golang.org/x/net/context"
)

// dispatch routes a completed action into the school domain and returns a
// reply summarizing what happened. An empty summary keeps the model's own
// response.
func (s *assistantService) dispatch(ctx context.Context, action string, slots map[string]string) (string, error) {
	switch action {
	case "create_student":
		student, err := s.schoolService.CreateStudent(ctx, school.CreateStudentRequest{
			StudentName: slots["student_name"],
			AdmissionNo: slots["admission_no"],
			ClassName:   slots["class_name"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created student %s (%s) in %s.", student.StudentName, student.AdmissionNo, student.ClassName), nil

	case "add_guardian":
		guardian, err := s.schoolService.CreateGuardian(ctx, school.CreateGuardianRequest{
			GuardianName: slots["guardian_name"],
			Relationship: slots["relationship"],
			Phone:        slots["phone"],
			Email:        slots["email"],
			StudentName:  slots["student_name"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Added guardian %s (%s) for %s.", guardian.GuardianName, guardian.Relationship, guardian.StudentName), nil

	case "create_class":
		class, err := s.schoolService.CreateClass(ctx, school.CreateClassRequest{
			ClassName: slots["class_name"],
			Level:     slots["level"],
			Stream:    slots["stream"],
		})
		if err != nil {
			return "", err
		}
		return fmt.Sprintf("Created class %s at level %s.", class.ClassName, class.Level), nil

	case "list_students":
		students, total, err := s.schoolService.GetAllStudents(ctx, 50, 0)
		if err != nil {
			return "", err
		}
		if total == 0 {
			return "There are no students registered yet.", nil
		}
		names := make([]string, 0, len(students))
		for _, student := range students {
			names = append(names, fmt.Sprintf("%s (%s)", student.StudentName, student.ClassName))
		}
		return fmt.Sprintf("We have %d students: %s.", total, strings.Join(names, ", ")), nil

	case "list_classes":
		classes, err := s.schoolService.GetAllClasses(ctx)
		if err != nil {
			return "", err
		}
		if len(classes) == 0 {
			return "No classes have been set up yet.", nil
		}
		names := make([]string, 0, len(classes))
		for _, class := range classes {
			names = append(names, class.ClassName)
		}
		return fmt.Sprintf("We have %d classes: %s.", len(classes), strings.Join(names, ", ")), nil

	case "list_guardians":
		guardians, total, err := s.schoolService.GetAllGuardians(ctx, 50, 0)
		if err != nil {
			return "", err
		}
		if total == 0 {
			return "No guardians have been added yet.", nil
		}
		names := make([]string, 0, len(guardians))
		for _, guardian := range guardians {
			names = append(names, fmt.Sprintf("%s (%s of %s)", guardian.GuardianName, guardian.Relationship, guardian.StudentName))
		}
		return fmt.Sprintf("We have %d guardians: %s.", total, strings.Join(names, ", ")), nil

	case "check_academic_setup":
		classes, err := s.schoolService.GetAllClasses(ctx)
		if err != nil {
			return "", err
		}
		_, studentTotal, err := s.schoolService.GetAllStudents(ctx, 1, 0)
		if err != nil {
			return "", err
		}
		if len(classes) == 0 {
			return "The academic setup is incomplete: no classes exist yet. Create a class to get started.", nil
		}
		return fmt.Sprintf("The academic setup looks good: %d classes and %d students registered.", len(classes), studentTotal), nil

	case "get_school_info":
		name := os.Getenv("SCHOOL_NAME")
		if name == "" {
			name = "this school"
		}
		return fmt.Sprintf("You are managing %s. I can help with students, guardians, and classes.", name), nil
	}

	// Unknown actions are logged and ignored; the model's own response
	// stands.
	s.log.WithFields(logrus.Fields{
		"action": action,
	}).Warn("Unknown action ignored")
	return "", nil
}
