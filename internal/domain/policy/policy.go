// Package policy centraliza la verificación de permisos por rol.
// Todos los puntos de entrada mutadores consultan Can en lugar de
// chequear roles dentro de handlers o casos de uso.
package policy

import "github.com/jhoicas/pos-api/internal/domain/entity"

// Action identifica una operación protegida del sistema.
type Action string

const (
	ActionManageUsers      Action = "users.manage"       // crear/editar/desactivar usuarios
	ActionManageCatalog    Action = "catalog.manage"     // crear/editar productos y categorías
	ActionAdjustStock      Action = "inventory.adjust"   // compras y ajustes manuales
	ActionCreateSale       Action = "sales.create"       // checkout en caja
	ActionViewReports      Action = "reports.view"       // dashboard y listados
	ActionViewStockLedger  Action = "inventory.ledger"   // consultar movimientos
)

// allowed mapea cada acción a los roles que pueden ejecutarla.
var allowed = map[Action][]string{
	ActionManageUsers:     {entity.RoleAdmin, entity.RoleManager},
	ActionManageCatalog:   {entity.RoleAdmin, entity.RoleManager},
	ActionAdjustStock:     {entity.RoleAdmin, entity.RoleManager},
	ActionCreateSale:      {entity.RoleAdmin, entity.RoleManager, entity.RoleCashier},
	ActionViewReports:     {entity.RoleAdmin, entity.RoleManager, entity.RoleCashier},
	ActionViewStockLedger: {entity.RoleAdmin, entity.RoleManager, entity.RoleCashier},
}

// Can responde si el rol puede ejecutar la acción. Roles o acciones
// desconocidos siempre devuelven false.
func Can(role string, action Action) bool {
	for _, r := range allowed[action] {
		if r == role {
			return true
		}
	}
	return false
}

// RolesFor devuelve los roles permitidos para una acción (para montar
// middleware RBAC en rutas).
func RolesFor(action Action) []string {
	roles := allowed[action]
	out := make([]string, len(roles))
	copy(out, roles)
	return out
}
