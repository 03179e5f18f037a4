package entity

import (
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Status estado de ciclo de vida de un ítem de inventario.
type Status string

const (
	StatusInStock       Status = "IN_STOCK"
	StatusOrdered       Status = "ORDERED"
	StatusInComposition Status = "IN_COMPOSITION"
	StatusSold          Status = "SOLD"
	StatusTraded        Status = "TRADED"
)

// Valid indica si el estado pertenece al conjunto conocido.
func (s Status) Valid() bool {
	switch s {
	case StatusInStock, StatusOrdered, StatusInComposition, StatusSold, StatusTraded:
		return true
	}
	return false
}

// Categorías y subcategorías que asigna el motor de composición.
const (
	CategoryPC             = "PC"
	CategoryBundle         = "Bundle"
	SubCategoryCustomBuild = "Custom Build"
	SubCategorySmartBundle = "Bundle"
	SubCategoryRetroBundle = "Retro Bundle"
	PaymentTypeTrade       = "Trade"
)

// InventoryItem es la entidad universal: pieza suelta, build (IsPC) o bundle (IsBundle).
// ComponentIDs es la única dirección autoritativa de la relación padre/hijo;
// ParentContainerID es la referencia inversa que el motor escribe junto con ella.
type InventoryItem struct {
	ID          string
	Name        string
	Category    string
	SubCategory string

	BuyPrice     decimal.Decimal
	BuyDate      time.Time
	SellPrice    *decimal.Decimal
	SellDate     *time.Time
	Profit       *decimal.Decimal
	FeeAmount    *decimal.Decimal
	PaymentType  string
	PlatformSold string

	Status      Status
	IsDefective bool
	IsDraft     bool
	Specs       Specs

	IsPC              bool
	IsBundle          bool
	ComponentIDs      []string
	ParentContainerID string

	TradedFromID string
	TradedForIDs []string
	CashOnTop    *decimal.Decimal

	Notes     string
	CreatedAt time.Time
	UpdatedAt time.Time
}

// IsComposite indica si el ítem es una build o un bundle.
func (i *InventoryItem) IsComposite() bool {
	return i.IsPC || i.IsBundle
}

// IsRetroBundle indica si el ítem se creó agrupando ventas ya registradas.
func (i *InventoryItem) IsRetroBundle() bool {
	return i.IsComposite() && strings.EqualFold(strings.TrimSpace(i.SubCategory), SubCategoryRetroBundle)
}

// IsDisposed indica si el ítem ya salió del inventario (vendido o intercambiado).
func (i *InventoryItem) IsDisposed() bool {
	return i.Status == StatusSold || i.Status == StatusTraded
}

// Spec busca un atributo sin distinguir mayúsculas (ver Specs.Get).
func (i *InventoryItem) Spec(key string) (any, bool) {
	return i.Specs.Get(key)
}

// SpecString devuelve el primer atributo no vacío entre las claves indicadas.
func (i *InventoryItem) SpecString(keys ...string) string {
	return i.Specs.First(keys...)
}

// ClearSale borra los campos de una venta previa.
func (i *InventoryItem) ClearSale() {
	i.SellPrice = nil
	i.SellDate = nil
	i.Profit = nil
	i.PaymentType = ""
	i.PlatformSold = ""
}

// Clone devuelve una copia profunda; el motor nunca muta el snapshot recibido.
func (i *InventoryItem) Clone() *InventoryItem {
	if i == nil {
		return nil
	}
	c := *i
	c.SellPrice = cloneDecimal(i.SellPrice)
	c.Profit = cloneDecimal(i.Profit)
	c.FeeAmount = cloneDecimal(i.FeeAmount)
	c.CashOnTop = cloneDecimal(i.CashOnTop)
	if i.SellDate != nil {
		d := *i.SellDate
		c.SellDate = &d
	}
	c.Specs = i.Specs.Clone()
	if i.ComponentIDs != nil {
		c.ComponentIDs = append([]string(nil), i.ComponentIDs...)
	}
	if i.TradedForIDs != nil {
		c.TradedForIDs = append([]string(nil), i.TradedForIDs...)
	}
	return &c
}

func cloneDecimal(d *decimal.Decimal) *decimal.Decimal {
	if d == nil {
		return nil
	}
	v := *d
	return &v
}

// DecimalOrZero devuelve el valor apuntado o cero si es nil.
func DecimalOrZero(d *decimal.Decimal) decimal.Decimal {
	if d == nil {
		return decimal.Zero
	}
	return *d
}

// DecimalPtr devuelve un puntero a una copia de d.
func DecimalPtr(d decimal.Decimal) *decimal.Decimal {
	return &d
}
