package handler

// messageResponse is the plain acknowledgement envelope used by deletes.
type messageResponse struct {
	Message string `json:"message"`
}

// --- Request / Response types ---

type createUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// updateUserRequest is a full profile replacement, not a patch: all three
// fields are mandatory and the password is always re-hashed.
type updateUserRequest struct {
	Username string `json:"username" validate:"required,min=3"`
	Email    string `json:"email"    validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// userResponse deliberately carries no password field in any form.
type userResponse struct {
	ID       int64  `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

type userListResponse struct {
	Users []userResponse `json:"users"`
}

type listUsersQuery struct {
	Skip  int `query:"skip"  validate:"gte=0"`
	Limit int `query:"limit" validate:"gte=0"`
}
