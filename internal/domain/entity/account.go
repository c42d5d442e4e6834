package entity

import (
	"time"

	"github.com/google/uuid"
)

// Account is the credential record of the system: exactly one per company
// or employee identity that can authenticate. The role-specific data lives
// in the linked Company or Employee aggregate, selected by Type.
type Account struct {
	ID           uuid.UUID   // The unique identifier of the account.
	Username     string      // Globally unique login name.
	PasswordHash string      // One-way hash of the password. Never exposed to clients.
	IsActive     bool        // Inactive accounts cannot log in.
	IsSuperuser  bool        // Back-office flag, never client-writable.
	Type         AccountType // Selects which profile aggregate this account owns.
	LastLogin    *time.Time  // Timestamp of the most recent successful login.
	DateJoined   time.Time   // Timestamp of when the account was created.
}

// Profile is the tagged union over the two profile aggregates an account
// can own. Exactly one of Company/Employee is non-nil for a provisioned
// account; both nil means the account is unprovisioned (a data-integrity
// problem in practice).
type Profile struct {
	Type     AccountType
	Company  *Company
	Employee *Employee
}

// Provisioned reports whether the account has its matching profile aggregate.
func (p Profile) Provisioned() bool {
	switch p.Type {
	case AccountTypeCompany:
		return p.Company != nil
	case AccountTypeEmployee:
		return p.Employee != nil
	default:
		return false
	}
}

// Company is the profile aggregate for company accounts: the tenant root.
type Company struct {
	ID        uuid.UUID
	Account   *Account // The owning account (1:1, role COMPANY).
	Name      string   // Globally unique company name.
	Phone     string   // Optional contact phone.
	Address   string   // Optional street address.
	Logo      string   // Optional attachment reference of the company logo.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Employee is the profile aggregate for employee accounts. It always
// belongs to the company of the account that created it.
type Employee struct {
	ID        uuid.UUID
	Account   *Account     // The owning account (1:1, role EMPLOYE).
	Person    *Person      // Personal data record (1:1, exclusively owned).
	CompanyID uuid.UUID    // The tenant this employee belongs to.
	Company   *Company     // Loaded on reads; read-only on updates.
	Role      EmployeeRole // Role within the company.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// Person holds personal data owned by exactly one Employee or Client.
type Person struct {
	ID        uuid.UUID
	FirstName string
	LastName  string
	Email     string     // Optional.
	Phone     string     // Optional.
	Address   string     // Optional.
	Birth     *time.Time // Optional date of birth.
	Gender    Gender
	Picture   string // Optional attachment reference of the profile picture.
	CreatedAt time.Time
	UpdatedAt time.Time
}

// FullName returns the person's display name.
func (p *Person) FullName() string {
	return p.FirstName + " " + p.LastName
}

// Client is a walk-in customer record. It owns a Person but has no
// account and cannot authenticate.
type Client struct {
	ID        uuid.UUID
	Person    *Person
	CreatedAt time.Time
	UpdatedAt time.Time
}
