package enums

import "fmt"

// EmployeeRole gates what an authenticated employee may do. The role is a
// column on the employee row and travels in the JWT claim set.
type EmployeeRole string

const (
	EmployeeRoleOwner   EmployeeRole = "owner"
	EmployeeRoleCashier EmployeeRole = "cashier"
)

var validEmployeeRoles = []EmployeeRole{
	EmployeeRoleOwner,
	EmployeeRoleCashier,
}

// String implements fmt.Stringer.
func (r EmployeeRole) String() string {
	return string(r)
}

// IsValid reports whether the value is a known EmployeeRole.
func (r EmployeeRole) IsValid() bool {
	for _, candidate := range validEmployeeRoles {
		if candidate == r {
			return true
		}
	}
	return false
}

// ParseEmployeeRole converts raw input into an EmployeeRole.
func ParseEmployeeRole(value string) (EmployeeRole, error) {
	for _, candidate := range validEmployeeRoles {
		if string(candidate) == value {
			return candidate, nil
		}
	}
	return "", fmt.Errorf("invalid employee role %q", value)
}
