package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// TradeIncomingRequest ítem recibido con su valor estimado.
type TradeIncomingRequest struct {
	Name        string          `json:"name" validate:"required,max=200"`
	Category    string          `json:"category" validate:"max=100"`
	SubCategory string          `json:"sub_category" validate:"max=100"`
	Specs       map[string]any  `json:"specs"`
	Value       decimal.Decimal `json:"value"`
	IsDefective bool            `json:"is_defective"`
	Notes       string          `json:"notes" validate:"max=2000"`
}

// TradeRequest intercambio de un ítem propio. CashOnTop positivo = recibido, negativo = pagado.
type TradeRequest struct {
	OutgoingID string                 `json:"outgoing_id" validate:"required"`
	Incoming   []TradeIncomingRequest `json:"incoming" validate:"dive"`
	CashOnTop  decimal.Decimal        `json:"cash_on_top"`
	TradeDate  *time.Time             `json:"trade_date"`
	Note       string                 `json:"note" validate:"max=2000"`
}

// TradeSummaryResponse totales del trade.
type TradeSummaryResponse struct {
	TotalIncomingValue decimal.Decimal `json:"total_incoming_value"`
	TotalTradeValue    decimal.Decimal `json:"total_trade_value"`
	ProjectedProfit    decimal.Decimal `json:"projected_profit"`
}

// TradeResponse resultado del trade confirmado.
type TradeResponse struct {
	Outgoing ItemResponse         `json:"outgoing"`
	Received []ItemResponse       `json:"received"`
	Summary  TradeSummaryResponse `json:"summary"`
}
