// Package authz concentra la tabla de capacidades: qué roles pueden ejecutar cada operación.
package authz

import "github.com/jhoicas/Manufactura-api/internal/domain/entity"

// Capability operación protegida.
type Capability string

const (
	CatalogRead      Capability = "catalog:read"
	CatalogWrite     Capability = "catalog:write"
	InventoryRead    Capability = "inventory:read"
	InventoryAdjust  Capability = "inventory:adjust"
	BatchRead        Capability = "batch:read"
	BatchWrite       Capability = "batch:write"
	CostManage       Capability = "cost:manage"
	TransferCreate   Capability = "transfer:create"
	TransferConfirm  Capability = "transfer:confirm"
	NotificationRead Capability = "notification:read"
	PurchaseManage   Capability = "purchase:manage"
	SaleManage       Capability = "sale:manage"
	ReportRead       Capability = "report:read"
	ActivityRead     Capability = "activity:read"
	UserManage       Capability = "user:manage"
)

var (
	allRoles   = []string{entity.RoleOwner, entity.RoleIncharge, entity.RoleShopkeeper}
	production = []string{entity.RoleOwner, entity.RoleIncharge}
	shop       = []string{entity.RoleOwner, entity.RoleShopkeeper}
	ownerOnly  = []string{entity.RoleOwner}
)

var policy = map[Capability][]string{
	CatalogRead:      allRoles,
	CatalogWrite:     ownerOnly,
	InventoryRead:    allRoles,
	InventoryAdjust:  production,
	BatchRead:        allRoles,
	BatchWrite:       production,
	CostManage:       production,
	TransferCreate:   production,
	TransferConfirm:  shop,
	NotificationRead: shop,
	PurchaseManage:   production,
	SaleManage:       shop,
	ReportRead:       ownerOnly,
	ActivityRead:     ownerOnly,
	UserManage:       ownerOnly,
}

// Allowed indica si role puede ejecutar la operación. Una capacidad no declarada se niega.
func Allowed(c Capability, role string) bool {
	for _, r := range policy[c] {
		if r == role {
			return true
		}
	}
	return false
}

// Roles devuelve una copia de los roles permitidos para c.
func Roles(c Capability) []string {
	out := make([]string, len(policy[c]))
	copy(out, policy[c])
	return out
}
