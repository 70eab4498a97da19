package employees

import (
	"time"

	"github.com/google/uuid"

	"github.com/rainadr/kasirkopi-backend/pkg/db/models"
	"github.com/rainadr/kasirkopi-backend/pkg/enums"
)

// EmployeeDTO is the API shape of a staff account. The password hash
// never leaves the service.
type EmployeeDTO struct {
	ID        uuid.UUID          `json:"id"`
	Name      string             `json:"name"`
	Email     string             `json:"email"`
	Role      enums.EmployeeRole `json:"role"`
	IsActive  bool               `json:"is_active"`
	CreatedAt time.Time          `json:"created_at"`
}

// FromModel maps a stored employee to its API shape.
func FromModel(employee *models.Employee) EmployeeDTO {
	return EmployeeDTO{
		ID:        employee.ID,
		Name:      employee.Name,
		Email:     employee.Email,
		Role:      employee.Role,
		IsActive:  employee.IsActive,
		CreatedAt: employee.CreatedAt,
	}
}

// CreateEmployeeInput registers a staff account. When Password is empty
// a temporary one is generated and returned once.
type CreateEmployeeInput struct {
	Name     string
	Email    string
	Role     enums.EmployeeRole
	Password string
}

// CreateEmployeeResult carries the new account plus the temporary
// password when one was generated.
type CreateEmployeeResult struct {
	Employee     EmployeeDTO `json:"employee"`
	TempPassword string      `json:"temp_password,omitempty"`
}

// UpdateEmployeeInput carries optional staff account updates.
type UpdateEmployeeInput struct {
	Name     *string
	Role     *enums.EmployeeRole
	IsActive *bool
}
