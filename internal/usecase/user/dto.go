package user

// CreateUserRequest represents the request payload for creating a new user.
type CreateUserRequest struct {
	Name string `validate:"required,min=1,max=100"`
}

// CreateUserResponse represents the response payload after creating a user.
// Name carries the canonical (trimmed) value that was stored.
type CreateUserResponse struct {
	ID   int64
	Name string
}

// GetUserRequest represents the request payload for retrieving a user.
type GetUserRequest struct {
	ID int64 `validate:"required,gt=0"`
}

// GetUserResponse represents the response payload for a single user.
type GetUserResponse struct {
	ID   int64
	Name string
}

// DeleteUserRequest represents the request payload for deleting a user.
type DeleteUserRequest struct {
	ID int64 `validate:"required,gt=0"`
}

// DeleteUserResponse represents the response payload after deleting a user.
type DeleteUserResponse struct {
	ID int64
}

// User represents a user in listing responses.
type User struct {
	ID   int64
	Name string
}

// ListUsersResponse represents the response payload for the users listing.
type ListUsersResponse struct {
	Users []User
}
