package authz_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/jhoicas/Manufactura-api/internal/application/authz"
	"github.com/jhoicas/Manufactura-api/internal/domain/entity"
)

func TestAllowed(t *testing.T) {
	cases := []struct {
		cap  authz.Capability
		role string
		want bool
	}{
		{authz.CatalogWrite, entity.RoleOwner, true},
		{authz.CatalogWrite, entity.RoleIncharge, false},
		{authz.BatchRead, entity.RoleShopkeeper, true},
		{authz.BatchWrite, entity.RoleIncharge, true},
		{authz.BatchWrite, entity.RoleShopkeeper, false},
		{authz.CostManage, entity.RoleShopkeeper, false},
		{authz.TransferCreate, entity.RoleShopkeeper, false},
		{authz.TransferConfirm, entity.RoleShopkeeper, true},
		{authz.TransferConfirm, entity.RoleIncharge, false},
		{authz.SaleManage, entity.RoleIncharge, false},
		{authz.ReportRead, entity.RoleIncharge, false},
		{authz.UserManage, entity.RoleOwner, true},
		{authz.Capability("desconocida"), entity.RoleOwner, false},
		{authz.InventoryRead, "admin", false},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, authz.Allowed(tc.cap, tc.role), "%s/%s", tc.cap, tc.role)
	}
}

func TestRoles_DevuelveCopia(t *testing.T) {
	r := authz.Roles(authz.ReportRead)
	r[0] = entity.RoleShopkeeper
	assert.False(t, authz.Allowed(authz.ReportRead, entity.RoleShopkeeper))
}
