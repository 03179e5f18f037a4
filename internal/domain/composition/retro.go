package composition

import (
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/parts"
)

const (
	retroNameMax   = build.DefaultMaxNameLength
	retroPartLen   = 28
	minRetroBundle = 2
)

// RetroTotals agregados de un grupo de ventas.
type RetroTotals struct {
	Sell   decimal.Decimal
	Buy    decimal.Decimal
	Fees   decimal.Decimal
	Margin decimal.Decimal
}

// TotalsOf suma venta, costo y comisiones; Margin = Sell - Buy - Fees (antes de impuestos).
func TotalsOf(items []*entity.InventoryItem) RetroTotals {
	t := RetroTotals{Sell: decimal.Zero, Buy: decimal.Zero, Fees: decimal.Zero}
	for _, it := range items {
		t.Sell = t.Sell.Add(entity.DecimalOrZero(it.SellPrice))
		t.Buy = t.Buy.Add(it.BuyPrice)
		t.Fees = t.Fees.Add(entity.DecimalOrZero(it.FeeAmount))
	}
	t.Margin = t.Sell.Sub(t.Buy).Sub(t.Fees)
	return t
}

// RetroInput ventas a agrupar. Name vacío usa el nombre sugerido por RetroName.
type RetroInput struct {
	Items []*entity.InventoryItem
	Name  string
	Now   time.Time
	NewID func() string
}

// RetroBundle agrupa ítems ya vendidos o intercambiados en un bundle SOLD con los totales agregados.
// Los originales pasan a IN_COMPOSITION bajo el bundle; Dismantle restaura sus ventas.
func RetroBundle(idx *Index, in RetroInput) (Result, error) {
	items := dedupe(in.Items)
	if len(items) < minRetroBundle {
		return Result{}, fmt.Errorf("%w: un bundle retroactivo necesita al menos %d ítems", domain.ErrInvalidInput, minRetroBundle)
	}
	for _, it := range items {
		if it.IsComposite() || !it.IsDisposed() || idx.Owner(it.ID) != "" {
			return Result{}, fmt.Errorf("%w: %s (%s)", domain.ErrItemUnavailable, it.ID, it.Status)
		}
	}
	now := nowOr(in.Now)
	totals := TotalsOf(items)
	name := strings.TrimSpace(in.Name)
	if name == "" {
		name = RetroName(items)
	}
	sellDate := unanimousSellDate(items, now)
	first := items[0]

	bundle := &entity.InventoryItem{
		ID:           idOr(in.NewID),
		Name:         build.Truncate(name, retroNameMax),
		Category:     entity.CategoryBundle,
		SubCategory:  entity.SubCategoryRetroBundle,
		BuyPrice:     totals.Buy,
		BuyDate:      earliestBuyDate(items, sellDate),
		SellPrice:    entity.DecimalPtr(totals.Sell),
		SellDate:     &sellDate,
		Profit:       entity.DecimalPtr(totals.Margin),
		PaymentType:  first.PaymentType,
		PlatformSold: first.PlatformSold,
		Status:       entity.StatusSold,
		IsBundle:     true,
		ComponentIDs: make([]string, 0, len(items)),
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if !totals.Fees.IsZero() {
		bundle.FeeAmount = entity.DecimalPtr(totals.Fees)
	}

	res := Result{Composite: bundle}
	res.Changes.Created = []*entity.InventoryItem{bundle}
	for _, it := range items {
		bundle.ComponentIDs = append(bundle.ComponentIDs, it.ID)
		linked := it.Clone()
		linked.Status = entity.StatusInComposition
		linked.ParentContainerID = bundle.ID
		linked.UpdatedAt = now
		res.Changes.Updated = append(res.Changes.Updated, linked)
	}
	return res, nil
}

// RetroName sugiere un nombre según el contenido: PC completa, upgrade CPU+placa,
// bundle multi-GPU o, en su defecto, los dos ítems más caros.
func RetroName(items []*entity.InventoryItem) string {
	byKind := map[parts.Kind][]*entity.InventoryItem{}
	for _, it := range items {
		k := parts.KindOf(it)
		byKind[k] = append(byKind[k], it)
	}
	cpus, gpus := byKind[parts.KindCPU], byKind[parts.KindGPU]
	boards, cases := byKind[parts.KindMotherboard], byKind[parts.KindCase]

	switch {
	case len(cases) > 0 && len(cpus) > 0 && len(gpus) > 0:
		return "Full PC " + parts.CPUToken(cpus[0].Name) + " / " + parts.GPUToken(gpus[0].Name)
	case len(cpus) > 0 && len(boards) > 0:
		return "Upgrade Bundle " + parts.CPUToken(cpus[0].Name) + " + " + parts.Bound(boards[0].Name)
	case len(gpus) >= 2:
		tokens := make([]string, 0, len(gpus))
		for _, g := range gpus {
			tokens = append(tokens, parts.GPUToken(g.Name))
		}
		return fmt.Sprintf("%dx GPU Bundle %s", len(gpus), strings.Join(tokens, ", "))
	}

	ranked := append([]*entity.InventoryItem(nil), items...)
	sort.SliceStable(ranked, func(i, j int) bool {
		return saleValue(ranked[i]).GreaterThan(saleValue(ranked[j]))
	})
	name := parts.Shorten(ranked[0].Name, retroPartLen)
	if len(ranked) > 1 {
		name += " + " + parts.Shorten(ranked[1].Name, retroPartLen)
	}
	if extra := len(ranked) - 2; extra > 0 {
		name += fmt.Sprintf(" + %d más", extra)
	}
	return name
}

// saleValue precio de venta o, si falta, el costo.
func saleValue(it *entity.InventoryItem) decimal.Decimal {
	if it.SellPrice != nil {
		return *it.SellPrice
	}
	return it.BuyPrice
}

// unanimousSellDate devuelve la fecha de venta común (mismo día) o now si difieren o falta alguna.
func unanimousSellDate(items []*entity.InventoryItem, now time.Time) time.Time {
	var common *time.Time
	for _, it := range items {
		if it.SellDate == nil {
			return now
		}
		if common == nil {
			common = it.SellDate
			continue
		}
		if !sameDay(*common, *it.SellDate) {
			return now
		}
	}
	if common == nil {
		return now
	}
	return *common
}

func sameDay(a, b time.Time) bool {
	ay, am, ad := a.UTC().Date()
	by, bm, bd := b.UTC().Date()
	return ay == by && am == bm && ad == bd
}

func earliestBuyDate(items []*entity.InventoryItem, fallback time.Time) time.Time {
	var out time.Time
	for _, it := range items {
		if it.BuyDate.IsZero() {
			continue
		}
		if out.IsZero() || it.BuyDate.Before(out) {
			out = it.BuyDate
		}
	}
	if out.IsZero() {
		return fallback
	}
	return out
}
