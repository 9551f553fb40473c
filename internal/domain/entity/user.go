package entity

import "time"

// Roles válidos para User.
const (
	RoleSuperAdmin  = "SA" // super administrador
	RoleBranchAdmin = "AS" // administrador de sucursal
	RoleSeller      = "VE" // vendedor
	RoleCashier     = "CA" // cajero/a
	RoleCustomer    = "CL" // cliente
)

// User representa un usuario del sistema; el personal tiene una sucursal asignada.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, nunca plano en dominio después de persistir
	Name         string
	Role         string
	BranchID     string // vacío si no tiene sucursal asignada
	Status       string // active, inactive
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// ValidRole indica si el rol es uno de los conocidos.
func ValidRole(role string) bool {
	switch role {
	case RoleSuperAdmin, RoleBranchAdmin, RoleSeller, RoleCashier, RoleCustomer:
		return true
	}
	return false
}

// Actor identidad de quien ejecuta una operación (extraída del token).
type Actor struct {
	UserID   string
	BranchID string
	Role     string
}

// IsStaff verdadero para cualquier rol que no sea cliente.
func (a Actor) IsStaff() bool {
	return a.Role != "" && a.Role != RoleCustomer
}

// CanManageBranch verdadero si el actor puede operar sobre la sucursal indicada.
func (a Actor) CanManageBranch(branchID string) bool {
	if a.Role == RoleSuperAdmin {
		return true
	}
	return a.BranchID != "" && a.BranchID == branchID
}
