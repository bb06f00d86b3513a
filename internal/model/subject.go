package model

// Subject ("materia") belongs to a career and relates to users through the
// enrollment (with grade) and teaching join tables.
type Subject struct {
	ID       int    `json:"id"`
	Name     string `json:"name"`
	CareerID int    `json:"carer_id"`
}

// SubjectWithTeacher decorates a subject with its career name and, for
// student views, the assigned teacher.
type SubjectWithTeacher struct {
	ID         int             `json:"id"`
	Name       string          `json:"name"`
	CareerName string          `json:"career"`
	Teacher    *TeacherSummary `json:"profesor,omitempty"`
}

// TeacherSummary identifies the teacher assigned to a subject.
type TeacherSummary struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
}

// StudentGrade is one enrolled student with the optional grade ("nota").
type StudentGrade struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	FirstName string `json:"nombre"`
	LastName  string `json:"apellido"`
	DNI       int    `json:"dni"`
	Email     string `json:"email"`
	Grade     *int   `json:"nota"`
}

// TeachingAssignment is one row of the teacher-subject join table.
type TeachingAssignment struct {
	SubjectID int `json:"materia_id"`
	TeacherID int `json:"profesor_id"`
}

// CreateSubjectRequest is the payload for creating a subject under a career.
type CreateSubjectRequest struct {
	Name     string `json:"name" binding:"required,min=2,max=100"`
	CareerID int    `json:"carer_id" binding:"required,gt=0"`
}

// UpdateSubjectRequest is the payload for renaming a subject.
type UpdateSubjectRequest struct {
	Name string `json:"name" binding:"required,min=2,max=100"`
}

// AssignSubjectRequest links a user to a subject as student or teacher.
// Relation must match the user's role.
type AssignSubjectRequest struct {
	UserID    int    `json:"user_id" binding:"required,gt=0"`
	SubjectID int    `json:"materia_id" binding:"required,gt=0"`
	Relation  string `json:"tipo_relacion" binding:"required,oneof=estudiante profesor"`
}

// GradeEntry is one row of a bulk grade upload. A nil grade is skipped.
type GradeEntry struct {
	UserID int  `json:"user_id" binding:"required,gt=0"`
	Grade  *int `json:"nota" binding:"omitempty,gte=1,lte=10"`
}
