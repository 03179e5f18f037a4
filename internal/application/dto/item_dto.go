package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateItemRequest entrada para registrar una pieza suelta.
type CreateItemRequest struct {
	Name        string           `json:"name" validate:"required,min=1,max=200"`
	Category    string           `json:"category" validate:"required,max=100"`
	SubCategory string           `json:"sub_category" validate:"max=100"`
	BuyPrice    decimal.Decimal  `json:"buy_price"`
	BuyDate     *time.Time       `json:"buy_date"`
	Status      string           `json:"status" validate:"omitempty,oneof=IN_STOCK ORDERED"`
	IsDefective bool             `json:"is_defective"`
	IsDraft     bool             `json:"is_draft"`
	Specs       map[string]any   `json:"specs"`
	FeeAmount   *decimal.Decimal `json:"fee_amount"`
	Notes       string           `json:"notes" validate:"max=2000"`
}

// ItemListRequest filtros y paginación del listado.
type ItemListRequest struct {
	PageRequest
	Category    string `query:"category"`
	SubCategory string `query:"sub_category"`
	Status      string `query:"status" validate:"omitempty,oneof=IN_STOCK ORDERED IN_COMPOSITION SOLD TRADED"`
	Q           string `query:"q" validate:"max=100"`
}

// SellItemRequest registro de venta de una pieza o de un compuesto. SellPrice es obligatorio;
// un cero explícito es una venta regalada válida.
type SellItemRequest struct {
	SellPrice    *decimal.Decimal `json:"sell_price" validate:"required"`
	SellDate     *time.Time       `json:"sell_date"`
	FeeAmount    *decimal.Decimal `json:"fee_amount"`
	PaymentType  string           `json:"payment_type" validate:"max=50"`
	PlatformSold string           `json:"platform_sold" validate:"max=100"`
}

// ItemResponse salida de un ítem. Components solo se llena en el detalle de un compuesto.
type ItemResponse struct {
	ID                string           `json:"id"`
	Name              string           `json:"name"`
	Category          string           `json:"category"`
	SubCategory       string           `json:"sub_category"`
	BuyPrice          decimal.Decimal  `json:"buy_price"`
	BuyDate           time.Time        `json:"buy_date"`
	SellPrice         *decimal.Decimal `json:"sell_price,omitempty"`
	SellDate          *time.Time       `json:"sell_date,omitempty"`
	Profit            *decimal.Decimal `json:"profit,omitempty"`
	FeeAmount         *decimal.Decimal `json:"fee_amount,omitempty"`
	PaymentType       string           `json:"payment_type,omitempty"`
	PlatformSold      string           `json:"platform_sold,omitempty"`
	Status            string           `json:"status"`
	IsDefective       bool             `json:"is_defective"`
	IsDraft           bool             `json:"is_draft"`
	Specs             map[string]any   `json:"specs,omitempty"`
	IsPC              bool             `json:"is_pc"`
	IsBundle          bool             `json:"is_bundle"`
	ComponentIDs      []string         `json:"component_ids,omitempty"`
	ParentContainerID string           `json:"parent_container_id,omitempty"`
	TradedFromID      string           `json:"traded_from_id,omitempty"`
	TradedForIDs      []string         `json:"traded_for_ids,omitempty"`
	CashOnTop         *decimal.Decimal `json:"cash_on_top,omitempty"`
	Notes             string           `json:"notes,omitempty"`
	Components        []ItemResponse   `json:"components,omitempty"`
	CreatedAt         time.Time        `json:"created_at"`
	UpdatedAt         time.Time        `json:"updated_at"`
}

// ItemListResponse lista paginada de ítems.
type ItemListResponse struct {
	Items []ItemResponse `json:"items"`
	Page  PageResponse   `json:"page"`
}

// CompatibleGroupResponse grupo de sugerencias ("Compatible motherboards", ...).
type CompatibleGroupResponse struct {
	Name  string         `json:"name"`
	Items []ItemResponse `json:"items"`
}

// OperationResponse resultado de una operación de composición: el ítem principal
// y los ítems afectados tal como quedaron persistidos.
type OperationResponse struct {
	Item       *ItemResponse  `json:"item,omitempty"`
	Affected   []ItemResponse `json:"affected"`
	DeletedIDs []string       `json:"deleted_ids,omitempty"`
}
