package entity

import "time"

// Roles válidos para User.
const (
	RoleAdmin   = "admin"
	RoleManager = "manager"
	RoleCashier = "cashier"
)

// ValidRole indica si el rol está dentro del conjunto soportado.
func ValidRole(r string) bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCashier:
		return true
	}
	return false
}

// User representa un actor del sistema. Referenciado por Sale.CashierID
// y StockMovement.CreatedBy.
type User struct {
	ID           string
	Username     string // único
	Email        string
	PasswordHash string // bcrypt hash, nunca plano después de persistir
	FullName     string
	Phone        string
	Role         string // admin, manager, cashier
	IsActive     bool
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
