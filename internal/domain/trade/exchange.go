// Package trade convierte la salida de un ítem en uno o más ítems recibidos más o menos dinero.
package trade

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Incoming ítem recibido en el trade con su valor estimado (su costo de entrada).
type Incoming struct {
	Name        string
	Category    string
	SubCategory string
	Specs       entity.Specs
	Value       decimal.Decimal
	IsDefective bool
	Notes       string
}

// Input datos del intercambio. Cash con signo: positivo = recibido, negativo = pagado.
type Input struct {
	Outgoing *entity.InventoryItem
	Incoming []Incoming
	Cash     decimal.Decimal
	Date     time.Time
	Note     string
	Now      time.Time
	NewID    func() string
}

// Summary valores derivados del trade.
type Summary struct {
	TotalIncomingValue decimal.Decimal
	TotalTradeValue    decimal.Decimal
	ProjectedProfit    decimal.Decimal
}

// Result estado resultante: el ítem entregado, los recibidos y el lote a persistir.
type Result struct {
	Outgoing *entity.InventoryItem
	Received []*entity.InventoryItem
	Summary  Summary
	Changes  entity.ChangeSet
	Missing  []string
}

// Summarize calcula los totales sin validar ni producir cambios (vista previa).
func Summarize(incoming []Incoming, cash, outgoingBuy decimal.Decimal) Summary {
	total := decimal.Zero
	for _, in := range incoming {
		total = total.Add(in.Value)
	}
	trade := total.Add(cash)
	return Summary{
		TotalIncomingValue: total,
		TotalTradeValue:    trade,
		ProjectedProfit:    trade.Sub(outgoingBuy),
	}
}

// Exchange aplica el trade: el ítem entregado pasa a TRADED con sellPrice = valor total del trade,
// y cada ítem recibido se crea IN_STOCK con buyPrice = su valor y tradedFromId al entregado.
// Si el entregado es un compuesto, sus componentes se dan de baja con la misma fecha.
func Exchange(idx *composition.Index, in Input) (Result, error) {
	out := in.Outgoing
	if out == nil {
		return Result{}, domain.ErrNotFound
	}
	if len(in.Incoming) == 0 && in.Cash.IsZero() {
		return Result{}, domain.ErrEmptyTrade
	}
	if out.IsDisposed() {
		return Result{}, domain.ErrAlreadyDisposed
	}
	if out.Status == entity.StatusInComposition {
		return Result{}, fmt.Errorf("%w: %s forma parte de %s", domain.ErrItemUnavailable, out.ID, out.ParentContainerID)
	}
	for i, d := range in.Incoming {
		if strings.TrimSpace(d.Name) == "" {
			return Result{}, fmt.Errorf("%w: ítem recibido #%d sin nombre", domain.ErrInvalidInput, i+1)
		}
		if d.Value.IsNegative() {
			return Result{}, fmt.Errorf("%w: ítem recibido #%d con valor negativo", domain.ErrInvalidInput, i+1)
		}
	}

	now := in.Now
	if now.IsZero() {
		now = time.Now()
	}
	date := in.Date
	if date.IsZero() {
		date = now
	}
	newID := in.NewID
	if newID == nil {
		newID = func() string { return uuid.New().String() }
	}
	sum := Summarize(in.Incoming, in.Cash, out.BuyPrice)

	res := Result{Summary: sum}
	received := make([]string, 0, len(in.Incoming))
	for _, d := range in.Incoming {
		it := &entity.InventoryItem{
			ID:           newID(),
			Name:         strings.TrimSpace(d.Name),
			Category:     strings.TrimSpace(d.Category),
			SubCategory:  strings.TrimSpace(d.SubCategory),
			BuyPrice:     d.Value,
			BuyDate:      date,
			Status:       entity.StatusInStock,
			IsDefective:  d.IsDefective,
			Specs:        d.Specs.Clone(),
			TradedFromID: out.ID,
			Notes:        d.Notes,
			CreatedAt:    now,
			UpdatedAt:    now,
		}
		received = append(received, it.ID)
		res.Received = append(res.Received, it)
	}

	traded := out.Clone()
	traded.Status = entity.StatusTraded
	traded.SellPrice = entity.DecimalPtr(sum.TotalTradeValue)
	d := date
	traded.SellDate = &d
	traded.Profit = entity.DecimalPtr(sum.ProjectedProfit)
	traded.PaymentType = entity.PaymentTypeTrade
	traded.TradedForIDs = received
	traded.CashOnTop = entity.DecimalPtr(in.Cash)
	if note := strings.TrimSpace(in.Note); note != "" {
		if traded.Notes != "" {
			traded.Notes += "\n"
		}
		traded.Notes += note
	}
	traded.UpdatedAt = now
	res.Outgoing = traded

	res.Changes.Created = res.Received
	res.Changes.Updated = []*entity.InventoryItem{traded}
	if out.IsComposite() && idx != nil {
		components, missing := composition.PropagateSale(idx, out, date, now)
		res.Changes.Updated = append(res.Changes.Updated, components...)
		res.Missing = missing
	}
	return res, nil
}
