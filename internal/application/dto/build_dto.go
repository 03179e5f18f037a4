package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AssembleRequest alta o reensamblado de una build o bundle con los ids seleccionados.
type AssembleRequest struct {
	Name         string   `json:"name" validate:"required,max=200"`
	ComponentIDs []string `json:"component_ids" validate:"required,min=1,dive,required"`
}

// RetroBundleRequest agrupación de ventas ya registradas. Name vacío usa el nombre sugerido.
type RetroBundleRequest struct {
	ItemIDs []string `json:"item_ids" validate:"required,min=2,dive,required"`
	Name    string   `json:"name" validate:"max=200"`
}

// RetroTotalsResponse totales agregados del bundle retroactivo.
type RetroTotalsResponse struct {
	TotalSell decimal.Decimal `json:"total_sell"`
	TotalBuy  decimal.Decimal `json:"total_buy"`
	TotalFees decimal.Decimal `json:"total_fees"`
	Margin    decimal.Decimal `json:"margin"`
}

// RetroBundleResponse bundle creado y sus totales.
type RetroBundleResponse struct {
	OperationResponse
	Totals RetroTotalsResponse `json:"totals"`
}

// StartDraftRequest inicia un borrador vacío o desde un compuesto existente.
type StartDraftRequest struct {
	EditingID string `json:"editing_id" validate:"omitempty,max=64"`
}

// RenameDraftRequest nombre manual; vacío vuelve al nombre automático.
type RenameDraftRequest struct {
	Name string `json:"name" validate:"max=200"`
}

// ToggleSlotRequest ítem a seleccionar o deseleccionar en un slot.
type ToggleSlotRequest struct {
	ItemID string `json:"item_id" validate:"required"`
}

// DraftSlotResponse estado de un slot del editor.
type DraftSlotResponse struct {
	ID       string         `json:"id"`
	Label    string         `json:"label"`
	Required bool           `json:"required"`
	Multiple bool           `json:"multiple"`
	Items    []ItemResponse `json:"items"`
}

// DraftResponse estado completo del editor de builds.
type DraftResponse struct {
	ID              string              `json:"id"`
	EditingID       string              `json:"editing_id,omitempty"`
	Name            string              `json:"name"`
	NameEdited      bool                `json:"name_edited"`
	Slots           []DraftSlotResponse `json:"slots"`
	Total           decimal.Decimal     `json:"total"`
	MissingRequired []string            `json:"missing_required,omitempty"`
	UpdatedAt       time.Time           `json:"updated_at"`
}

// CandidatesResponse ítems elegibles y compatibles para un slot.
type CandidatesResponse struct {
	Slot               string            `json:"slot"`
	Items              []ItemResponse    `json:"items"`
	HiddenIncompatible int               `json:"hidden_incompatible"`
	Reasons            map[string]string `json:"reasons,omitempty"`
}
