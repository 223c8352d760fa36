package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Categorías de residuos registrables.
const (
	WasteCategoryOrganic    = "ORGANIC"
	WasteCategoryInorganic  = "INORGANIC"
	WasteCategoryRecyclable = "RECYCLABLE"
	WasteCategoryHazardous  = "HAZARDOUS"
)

// WasteRecord es el registro diario de residuos de un punto de recolección.
// CouponCost es el débito de cupones asociado al servicio; puede ser cero.
type WasteRecord struct {
	ID         string
	Category   string
	Weight     decimal.Decimal // kilogramos
	CouponCost int64
	Notes      string
	Date       time.Time
	CreatedAt  time.Time
	CreatedBy  string
}

// ValidCategory indica si la categoría es una de las conocidas.
func ValidCategory(c string) bool {
	switch c {
	case WasteCategoryOrganic, WasteCategoryInorganic, WasteCategoryRecyclable, WasteCategoryHazardous:
		return true
	}
	return false
}
