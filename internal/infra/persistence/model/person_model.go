package model

import (
	"time"

	"github.com/google/uuid"
)

// PersonModel mirrors the 'persons' table. A person row is exclusively
// owned by either an employee or a client.
type PersonModel struct {
	ID        uuid.UUID  `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	FirstName string     `gorm:"type:varchar(100);not null"`
	LastName  string     `gorm:"type:varchar(100);not null"`
	Email     string     `gorm:"type:varchar(150)"`
	Phone     string     `gorm:"type:varchar(20)"`
	Address   string     `gorm:"type:varchar(200)"`
	Birth     *time.Time `gorm:"type:date"`
	Gender    string     `gorm:"type:varchar(1)"`
	Picture   string     `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time
}

// TableName explicitly sets the table name for GORM.
func (PersonModel) TableName() string {
	return "persons"
}

// ClientModel mirrors the 'clients' table. Clients own a person but have
// no account.
type ClientModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	PersonID  uuid.UUID `gorm:"type:uuid;unique;not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Person *PersonModel `gorm:"foreignKey:PersonID"`
}

// TableName explicitly sets the table name for GORM.
func (ClientModel) TableName() string {
	return "clients"
}
