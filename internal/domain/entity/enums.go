package entity

// Gender is the gender of a person, stored with the single-letter codes
// the original schema uses.
type Gender string

const (
	GenderMale   Gender = "M"
	GenderFemale Gender = "F"
	GenderOther  Gender = "O"
)

// String returns the string representation of the Gender.
func (g Gender) String() string {
	return string(g)
}

// IsValid checks if the Gender is a valid value.
func (g Gender) IsValid() bool {
	switch g {
	case GenderMale, GenderFemale, GenderOther:
		return true
	default:
		return false
	}
}

// EmployeeRole is the role an employee plays within their company.
type EmployeeRole string

const (
	EmployeeRoleAdministrator EmployeeRole = "Administrador"
	EmployeeRoleCashier       EmployeeRole = "Cajero"
	EmployeeRoleWarehouse     EmployeeRole = "Almacén"
	EmployeeRoleNone          EmployeeRole = "Ninguno"
)

// String returns the string representation of the EmployeeRole.
func (r EmployeeRole) String() string {
	return string(r)
}

// IsValid checks if the EmployeeRole is a valid value.
func (r EmployeeRole) IsValid() bool {
	switch r {
	case EmployeeRoleAdministrator, EmployeeRoleCashier, EmployeeRoleWarehouse, EmployeeRoleNone:
		return true
	default:
		return false
	}
}
