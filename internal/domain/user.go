package domain

import "context"

// User is the display read model used when assembling case summaries
// and dossiers for the admin dashboard.
type User struct {
	ID        string
	FullName  string
	AvatarURL string
}

type UserRepository interface {
	GetByID(ctx context.Context, userID string) (*User, error)
}
