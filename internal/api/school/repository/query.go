package schoolRepository

const (
	queryCreateStudent = `
		INSERT INTO students (
			id,
			student_name,
			admission_no,
			class_name,
			created_at
		) VALUES (
			:id,
			:student_name,
			:admission_no,
			:class_name,
			:created_at
		)
	`

	queryGetStudentByAdmissionNo = `
		SELECT
			id,
			student_name,
			admission_no,
			class_name,
			created_at
		FROM students
		WHERE admission_no = :admission_no
	`

	queryGetAllStudents = `
		SELECT
			id,
			student_name,
			admission_no,
			class_name,
			created_at
		FROM students
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountStudents = `
		SELECT COUNT(*) FROM students
	`

	queryCreateGuardian = `
		INSERT INTO guardians (
			id,
			guardian_name,
			relationship,
			phone,
			email,
			student_name,
			created_at
		) VALUES (
			:id,
			:guardian_name,
			:relationship,
			:phone,
			:email,
			:student_name,
			:created_at
		)
	`

	queryGetAllGuardians = `
		SELECT
			id,
			guardian_name,
			relationship,
			phone,
			email,
			student_name,
			created_at
		FROM guardians
		ORDER BY created_at DESC
		LIMIT :limit OFFSET :offset
	`

	queryCountGuardians = `
		SELECT COUNT(*) FROM guardians
	`

	queryCreateClass = `
		INSERT INTO classes (
			id,
			class_name,
			level,
			stream,
			created_at
		) VALUES (
			:id,
			:class_name,
			:level,
			:stream,
			:created_at
		)
	`

	queryGetClassByName = `
		SELECT
			id,
			class_name,
			level,
			stream,
			created_at
		FROM classes
		WHERE class_name = :class_name
	`

	queryGetAllClasses = `
		SELECT
			id,
			class_name,
			level,
			stream,
			created_at
		FROM classes
		ORDER BY class_name ASC
	`
)
