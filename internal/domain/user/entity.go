package user

// User represents a row in the users table.
type User struct {
	ID   int64  // ID is the auto-assigned unique identifier
	Name string // Name is the user's display name (required)
}
