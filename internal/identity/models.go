package identity

import "time"

// User is created on first successful Google sign-in and looked up by the
// provider subject id thereafter.
type User struct {
	ID          uint64    `gorm:"primaryKey;autoIncrement" json:"-"`
	GoogleID    string    `gorm:"type:varchar(64);uniqueIndex;not null" json:"-"`
	DisplayName string    `gorm:"type:varchar(128)" json:"displayName"`
	Email       string    `gorm:"type:varchar(255);index" json:"email"`
	Picture     string    `gorm:"type:varchar(512)" json:"picture"`
	CreatedAt   time.Time `json:"-"`
	UpdatedAt   time.Time `json:"-"`
}

func (User) TableName() string { return "users" }

type Session struct {
	ID        string    `gorm:"primaryKey;size:26"` // ULID length
	UserID    uint64    `gorm:"index;not null"`
	ExpiresAt time.Time `gorm:"index;not null"`
	CreatedAt time.Time
}

func (Session) TableName() string { return "sessions" }
