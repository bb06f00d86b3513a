package model

// Career ("carrera") groups subjects and students.
type Career struct {
	ID   int    `json:"id"`
	Name string `json:"name"`
}

// CreateCareerRequest is the payload for creating a career.
type CreateCareerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}

// UpdateCareerRequest is the payload for renaming a career.
type UpdateCareerRequest struct {
	Name string `json:"name" binding:"required,min=2,max=50"`
}
