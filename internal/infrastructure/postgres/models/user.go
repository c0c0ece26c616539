package models

// UserModel maps the marketplace users table, read-only, for display
// enrichment in the admin queue and dossier.
type UserModel struct {
	ID        string `gorm:"primaryKey"`
	FullName  string
	AvatarURL string
}

func (UserModel) TableName() string {
	return "users"
}
