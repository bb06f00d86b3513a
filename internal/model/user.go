package model

// User is an account row. Every user owns exactly one UserDetail.
type User struct {
	ID           int        `json:"id"`
	Username     string     `json:"username"`
	PasswordHash string     `json:"-"`
	Detail       UserDetail `json:"detail"`
}

// UserDetail is the 1:1 profile extension of a User.
type UserDetail struct {
	ID        int    `json:"id"`
	DNI       int    `json:"dni"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"type"`
	Email     string `json:"email"`
	CareerID  *int   `json:"carer_id,omitempty"` // students only
}

// UserWithDetail is the flattened listing row most user endpoints return.
type UserWithDetail struct {
	ID        int    `json:"id"`
	Username  string `json:"username"`
	Email     string `json:"email"`
	DNI       int    `json:"dni"`
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	Role      Role   `json:"type"`
	CareerID  *int   `json:"carer_id,omitempty"`
}

// Contact is a reduced user row for the messaging contact picker.
type Contact struct {
	ID       int    `json:"id"`
	FullName string `json:"nombre"`
	Role     Role   `json:"type"`
}

// RegisterUserRequest creates a User together with its UserDetail.
type RegisterUserRequest struct {
	Username  string `json:"username" binding:"required,min=3,max=50"`
	Password  string `json:"password" binding:"required,min=4,max=72"`
	Email     string `json:"email" binding:"required,email"`
	DNI       int    `json:"dni" binding:"required,gt=0"`
	FirstName string `json:"firstName" binding:"required,max=50"`
	LastName  string `json:"lastName" binding:"required,max=50"`
	Type      string `json:"type" binding:"required"`
	CareerID  *int   `json:"carer_id"`
}

// LoginRequest authenticates a user by username.
type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

// UpdatePasswordRequest changes only the password.
type UpdatePasswordRequest struct {
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// UpdateProfileRequest renames a user and resets the password in one call.
type UpdateProfileRequest struct {
	ID       int    `json:"id" binding:"required,gt=0"`
	Username string `json:"username" binding:"required,min=3,max=50"`
	Password string `json:"password" binding:"required,min=4,max=72"`
}

// UserFilter is the structured filter set of the filtered user listings.
// Username and Email match case-insensitive substrings, Role matches exactly,
// Search matches a substring across first name, last name and email.
type UserFilter struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Role     string `json:"type"`
	Search   string `json:"search"`
}
