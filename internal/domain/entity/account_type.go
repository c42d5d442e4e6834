// Package entity contains the core business objects of the project.
package entity

// AccountType represents the kind of profile an account is linked to.
type AccountType string

const (
	// AccountTypeCompany indicates an account owned by a company.
	AccountTypeCompany AccountType = "COMPANY"
	// AccountTypeEmployee indicates an account owned by a company's employee.
	AccountTypeEmployee AccountType = "EMPLOYE"
)

// String returns the string representation of the AccountType.
func (t AccountType) String() string {
	return string(t)
}

// IsValid checks if the AccountType is a valid value.
func (t AccountType) IsValid() bool {
	switch t {
	case AccountTypeCompany, AccountTypeEmployee:
		return true
	default:
		return false
	}
}
