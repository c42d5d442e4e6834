package model

import (
	"time"

	"github.com/google/uuid"
)

// CompanyModel mirrors the 'companies' table. AccountID references accounts.id (UUID).
type CompanyModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;unique;not null"`
	Name      string    `gorm:"type:varchar(100);unique;not null"`
	Phone     string    `gorm:"type:varchar(20)"`
	Address   string    `gorm:"type:varchar(200)"`
	Logo      string    `gorm:"type:varchar(255)"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
}

// TableName explicitly sets the table name for GORM.
func (CompanyModel) TableName() string {
	return "companies"
}

// EmployeeModel mirrors the 'employees' table. Every employee belongs to
// exactly one company, one account and one person.
type EmployeeModel struct {
	ID        uuid.UUID `gorm:"type:uuid;primary_key;default:uuid_generate_v7()"`
	AccountID uuid.UUID `gorm:"type:uuid;unique;not null"`
	PersonID  uuid.UUID `gorm:"type:uuid;unique;not null"`
	CompanyID uuid.UUID `gorm:"type:uuid;not null;index"`
	Role      string    `gorm:"type:varchar(20);not null"`
	CreatedAt time.Time
	UpdatedAt time.Time

	Account *AccountModel `gorm:"foreignKey:AccountID"`
	Person  *PersonModel  `gorm:"foreignKey:PersonID"`
	Company *CompanyModel `gorm:"foreignKey:CompanyID"`
}

// TableName explicitly sets the table name for GORM.
func (EmployeeModel) TableName() string {
	return "employees"
}
