package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de costo de manufactura reconocidos.
const (
	CostTypeLabor       = "labor"
	CostTypeOverhead    = "overhead"
	CostTypePackaging   = "packaging"
	CostTypeZipper      = "zipper"
	CostTypeSticker     = "sticker"
	CostTypeLogo        = "logo"
	CostTypeTag         = "tag"
	CostTypeElectricity = "electricity"
	CostTypeMaintenance = "maintenance"
	CostTypeOther       = "other"
	CostTypeMisc        = "misc"
)

// IsValidCostType indica si t es un tipo de costo reconocido.
func IsValidCostType(t string) bool {
	switch t {
	case CostTypeLabor, CostTypeOverhead, CostTypePackaging, CostTypeZipper, CostTypeSticker,
		CostTypeLogo, CostTypeTag, CostTypeElectricity, CostTypeMaintenance, CostTypeOther, CostTypeMisc:
		return true
	}
	return false
}

// ManufacturingCost costo registrado contra un lote (solo-anexo).
type ManufacturingCost struct {
	ID           string
	BatchID      string
	CostType     string
	Amount       decimal.Decimal
	RecordedDate time.Time
	Description  string
	RecordedBy   string
}
