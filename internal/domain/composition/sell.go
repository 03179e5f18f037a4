package composition

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Sale datos de una venta registrada.
type Sale struct {
	Price       decimal.Decimal
	Date        time.Time
	Fee         *decimal.Decimal
	PaymentType string
	Platform    string
}

// Sell registra la venta de un ítem. Si es un compuesto, cada componente recibe la misma
// SellDate y pasa a SOLD; su BuyDate no se toca. Profit = precio - costo - comisión.
func Sell(idx *Index, item *entity.InventoryItem, sale Sale, now time.Time) (Result, error) {
	if item == nil {
		return Result{}, domain.ErrNotFound
	}
	if item.IsDisposed() {
		return Result{}, domain.ErrAlreadyDisposed
	}
	if item.Status == entity.StatusInComposition {
		return Result{}, fmt.Errorf("%w: %s forma parte de %s", domain.ErrItemUnavailable, item.ID, item.ParentContainerID)
	}
	if sale.Price.IsNegative() || (sale.Fee != nil && sale.Fee.IsNegative()) {
		return Result{}, fmt.Errorf("%w: precio y comisión deben ser >= 0", domain.ErrInvalidInput)
	}
	now = nowOr(now)
	date := sale.Date
	if date.IsZero() {
		date = now
	}

	sold := item.Clone()
	sold.Status = entity.StatusSold
	sold.SellPrice = entity.DecimalPtr(sale.Price)
	sold.SellDate = &date
	if sale.Fee != nil {
		sold.FeeAmount = entity.DecimalPtr(*sale.Fee)
	}
	sold.Profit = entity.DecimalPtr(sale.Price.Sub(sold.BuyPrice).Sub(entity.DecimalOrZero(sold.FeeAmount)))
	sold.PaymentType = strings.TrimSpace(sale.PaymentType)
	sold.PlatformSold = strings.TrimSpace(sale.Platform)
	sold.UpdatedAt = now

	res := Result{Composite: sold}
	res.Changes.Updated = []*entity.InventoryItem{sold}
	if item.IsComposite() {
		components, missing := idx.ComponentsOf(item)
		res.Missing = missing
		res.Changes.Updated = append(res.Changes.Updated, propagateSale(components, date, now)...)
	}
	return res, nil
}

// propagateSale marca los componentes como vendidos con la fecha del compuesto.
func propagateSale(components []*entity.InventoryItem, date, now time.Time) []*entity.InventoryItem {
	out := make([]*entity.InventoryItem, 0, len(components))
	for _, c := range components {
		cc := c.Clone()
		d := date
		cc.SellDate = &d
		cc.Status = entity.StatusSold
		cc.UpdatedAt = now
		out = append(out, cc)
	}
	return out
}

// PropagateSale expone la propagación para otros motores que dan de baja un compuesto (trade).
func PropagateSale(idx *Index, composite *entity.InventoryItem, date, now time.Time) (updated []*entity.InventoryItem, missing []string) {
	components, missing := idx.ComponentsOf(composite)
	return propagateSale(components, date, nowOr(now)), missing
}
