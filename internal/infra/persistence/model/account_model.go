package model

import (
	"time"

	"github.com/google/uuid"
)

// AccountModel mirrors the 'accounts' table. PostgreSQL generates UUIDs via uuid_generate_v7().
type AccountModel struct {
	ID           uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	Username     string    `gorm:"type:varchar(150);unique;not null"`
	PasswordHash string    `gorm:"column:password;type:varchar(128);not null"`
	IsActive     bool      `gorm:"not null;default:true"`
	IsSuperuser  bool      `gorm:"not null;default:false"`
	Type         string    `gorm:"type:varchar(20);not null"`
	LastLogin    *time.Time
	DateJoined   time.Time `gorm:"not null"`

	Company       *CompanyModel       `gorm:"foreignKey:AccountID"`
	Employee      *EmployeeModel      `gorm:"foreignKey:AccountID"`
	SessionTokens []SessionTokenModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (AccountModel) TableName() string {
	return "accounts"
}

// SessionTokenModel mirrors the 'session_tokens' table. Only the token hash
// is stored; the plaintext token never touches the database.
type SessionTokenModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;not null;index"`
	TokenHash string    `gorm:"type:varchar(64);unique;not null"`
	ExpiresAt time.Time `gorm:"not null;index"`
	CreatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (SessionTokenModel) TableName() string {
	return "session_tokens"
}
