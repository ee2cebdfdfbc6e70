package auth

import "time"

// User is a row of the users table. The password column only ever holds a
// bcrypt hash.
type User struct {
	ID           uint   `gorm:"primaryKey" json:"id"`
	Username     string `gorm:"uniqueIndex;not null" json:"username"`
	PasswordHash string `gorm:"column:password;not null" json:"-"`
}

// Session binds an opaque token to an authenticated user.
type Session struct {
	Token     string    `gorm:"primaryKey" json:"-"`
	UserID    uint      `gorm:"not null;index" json:"-"`
	ExpiresAt time.Time `gorm:"not null"`
	CreatedAt time.Time
}

func (User) TableName() string    { return "users" }
func (Session) TableName() string { return "sessions" }
