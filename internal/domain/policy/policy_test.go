package policy_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/pos-api/internal/domain/entity"
	"github.com/jhoicas/pos-api/internal/domain/policy"
)

func TestCan_MatrizDePermisos(t *testing.T) {
	cases := []struct {
		role   string
		action policy.Action
		want   bool
	}{
		{entity.RoleAdmin, policy.ActionManageUsers, true},
		{entity.RoleManager, policy.ActionManageUsers, true},
		{entity.RoleCashier, policy.ActionManageUsers, false},

		{entity.RoleAdmin, policy.ActionManageCatalog, true},
		{entity.RoleManager, policy.ActionManageCatalog, true},
		{entity.RoleCashier, policy.ActionManageCatalog, false},

		{entity.RoleAdmin, policy.ActionAdjustStock, true},
		{entity.RoleManager, policy.ActionAdjustStock, true},
		{entity.RoleCashier, policy.ActionAdjustStock, false},

		{entity.RoleAdmin, policy.ActionCreateSale, true},
		{entity.RoleManager, policy.ActionCreateSale, true},
		{entity.RoleCashier, policy.ActionCreateSale, true},

		{entity.RoleCashier, policy.ActionViewReports, true},
		{entity.RoleCashier, policy.ActionViewStockLedger, true},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, policy.Can(tc.role, tc.action),
			"rol %s acción %s", tc.role, tc.action)
	}
}

func TestCan_RolOAccionDesconocida(t *testing.T) {
	assert.False(t, policy.Can("superuser", policy.ActionManageUsers),
		"un rol desconocido nunca tiene permisos")
	assert.False(t, policy.Can(entity.RoleAdmin, policy.Action("nope.action")),
		"una acción desconocida no autoriza a nadie")
	assert.False(t, policy.Can("", policy.ActionCreateSale))
}

func TestRolesFor_DevuelveCopia(t *testing.T) {
	roles := policy.RolesFor(policy.ActionCreateSale)
	assert.ElementsMatch(t, []string{entity.RoleAdmin, entity.RoleManager, entity.RoleCashier}, roles)

	// Mutar el slice devuelto no debe afectar la matriz interna.
	roles[0] = "hacked"
	assert.True(t, policy.Can(entity.RoleAdmin, policy.ActionCreateSale))
}
