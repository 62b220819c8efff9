package user

import (
	"time"

	domainuser "github.com/amirasaad/finhealth/pkg/domain/user"
	"github.com/google/uuid"
)

// User represents a user record in the database.
type User struct {
	ID          uuid.UUID              `gorm:"type:uuid;primaryKey"`
	Name        string                 `gorm:"size:255;not null"`
	Email       string                 `gorm:"uniqueIndex;size:255;not null"`
	Password    string                 `gorm:"not null"`
	Avatar      string                 `gorm:"size:512"`
	Preferences domainuser.Preferences `gorm:"serializer:json"`
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// TableName specifies the table name for the User model.
func (User) TableName() string {
	return "users"
}
