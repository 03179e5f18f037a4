package composition

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// Kind tipo de compuesto creado por ensamblado directo.
type Kind int

const (
	KindPC Kind = iota
	KindBundle
)

// AssembleInput datos para crear o editar un compuesto.
// Existing nil crea uno nuevo; si no, se reensambla ese compuesto con la nueva selección.
type AssembleInput struct {
	Name       string
	Components []*entity.InventoryItem
	Existing   *entity.InventoryItem
	Kind       Kind
	Now        time.Time
	NewID      func() string
}

// Assemble crea o actualiza el compuesto: BuyPrice = suma de componentes, estado IN_STOCK,
// cada componente pasa a IN_COMPOSITION apuntando al compuesto. En edición, los componentes
// que salen vuelven a IN_STOCK sin padre, todo en el mismo ChangeSet.
func Assemble(idx *Index, in AssembleInput) (Result, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return Result{}, domain.ErrEmptyBuildName
	}
	components := dedupe(in.Components)
	if len(components) == 0 {
		return Result{}, domain.ErrEmptySelection
	}
	existingID := ""
	if in.Existing != nil {
		if !in.Existing.IsComposite() {
			return Result{}, domain.ErrNotComposite
		}
		if in.Existing.IsDisposed() {
			return Result{}, domain.ErrAlreadyDisposed
		}
		if in.Existing.IsRetroBundle() {
			return Result{}, fmt.Errorf("%w: un bundle retroactivo no se reensambla", domain.ErrConflict)
		}
		existingID = in.Existing.ID
	}
	for _, c := range components {
		if err := checkAssemblable(idx, c, existingID); err != nil {
			return Result{}, err
		}
	}

	now := nowOr(in.Now)
	var composite *entity.InventoryItem
	if in.Existing != nil {
		composite = in.Existing.Clone()
	} else {
		composite = newComposite(in.Kind, in.NewID, now)
	}
	composite.Name = name
	composite.Status = entity.StatusInStock
	composite.ComponentIDs = make([]string, 0, len(components))
	composite.UpdatedAt = now

	total := decimal.Zero
	var latest time.Time
	keep := make(map[string]bool, len(components))
	var res Result
	for _, c := range components {
		keep[c.ID] = true
		total = total.Add(c.BuyPrice)
		if c.BuyDate.After(latest) {
			latest = c.BuyDate
		}
		composite.ComponentIDs = append(composite.ComponentIDs, c.ID)

		linked := c.Clone()
		linked.Status = entity.StatusInComposition
		linked.ParentContainerID = composite.ID
		linked.UpdatedAt = now
		res.Changes.Updated = append(res.Changes.Updated, linked)
	}
	composite.BuyPrice = total
	if in.Existing == nil {
		if latest.IsZero() {
			latest = now
		}
		composite.BuyDate = latest
	}

	if in.Existing != nil {
		previous, missing := idx.ComponentsOf(in.Existing)
		res.Missing = missing
		for _, st := range idx.Stale(in.Existing) {
			previous = append(previous, st)
			res.Healed = append(res.Healed, st.ID)
		}
		for _, p := range previous {
			if keep[p.ID] {
				continue
			}
			freed := p.Clone()
			freed.Status = entity.StatusInStock
			freed.ParentContainerID = ""
			freed.UpdatedAt = now
			res.Changes.Updated = append(res.Changes.Updated, freed)
		}
		res.Changes.Updated = append([]*entity.InventoryItem{composite}, res.Changes.Updated...)
	} else {
		res.Changes.Created = []*entity.InventoryItem{composite}
	}
	res.Composite = composite
	return res, nil
}

func checkAssemblable(idx *Index, c *entity.InventoryItem, existingID string) error {
	if c.IsComposite() || c.IsDefective {
		return fmt.Errorf("%w: %s", domain.ErrItemUnavailable, c.ID)
	}
	owner := idx.Owner(c.ID)
	if owner != "" && owner != existingID {
		return fmt.Errorf("%w: %s pertenece a %s", domain.ErrItemUnavailable, c.ID, owner)
	}
	if c.Status == entity.StatusInStock {
		return nil
	}
	if existingID != "" && (owner == existingID || c.ParentContainerID == existingID) && c.Status == entity.StatusInComposition {
		return nil
	}
	return fmt.Errorf("%w: %s (%s)", domain.ErrItemUnavailable, c.ID, c.Status)
}

func newComposite(kind Kind, newID func() string, now time.Time) *entity.InventoryItem {
	c := &entity.InventoryItem{
		ID:        idOr(newID),
		CreatedAt: now,
	}
	switch kind {
	case KindBundle:
		c.IsBundle = true
		c.Category = entity.CategoryBundle
		c.SubCategory = entity.SubCategorySmartBundle
	default:
		c.IsPC = true
		c.Category = entity.CategoryPC
		c.SubCategory = entity.SubCategoryCustomBuild
	}
	return c
}

func dedupe(items []*entity.InventoryItem) []*entity.InventoryItem {
	seen := make(map[string]bool, len(items))
	out := make([]*entity.InventoryItem, 0, len(items))
	for _, it := range items {
		if it == nil || seen[it.ID] {
			continue
		}
		seen[it.ID] = true
		out = append(out, it)
	}
	return out
}

func idOr(newID func() string) string {
	if newID != nil {
		return newID()
	}
	return uuid.New().String()
}

func nowOr(t time.Time) time.Time {
	if t.IsZero() {
		return time.Now()
	}
	return t
}
