package composition_test

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

var now = time.Date(2026, 3, 10, 12, 0, 0, 0, time.UTC)

func fixedID(id string) func() string { return func() string { return id } }

func part(id, name, sub string, buy int64) *entity.InventoryItem {
	return &entity.InventoryItem{
		ID:          id,
		Name:        name,
		Category:    "Components",
		SubCategory: sub,
		BuyPrice:    decimal.NewFromInt(buy),
		BuyDate:     now.AddDate(0, -1, 0),
		Status:      entity.StatusInStock,
	}
}

func sold(id, name, sub string, buy, sell int64, date time.Time) *entity.InventoryItem {
	it := part(id, name, sub, buy)
	it.Status = entity.StatusSold
	it.SellPrice = entity.DecimalPtr(decimal.NewFromInt(sell))
	it.SellDate = &date
	it.Profit = entity.DecimalPtr(decimal.NewFromInt(sell - buy))
	it.PaymentType = "Cash"
	it.PlatformSold = "Marketplace"
	return it
}

// apply aplica el ChangeSet sobre el snapshot como lo haría la capa de persistencia.
func apply(items []*entity.InventoryItem, cs entity.ChangeSet) []*entity.InventoryItem {
	byID := map[string]*entity.InventoryItem{}
	for _, u := range cs.Updated {
		byID[u.ID] = u
	}
	deleted := map[string]bool{}
	for _, id := range cs.Deleted {
		deleted[id] = true
	}
	var out []*entity.InventoryItem
	for _, it := range items {
		if deleted[it.ID] {
			continue
		}
		if u, ok := byID[it.ID]; ok {
			out = append(out, u)
			continue
		}
		out = append(out, it)
	}
	return append(out, cs.Created...)
}

func find(items []*entity.InventoryItem, id string) *entity.InventoryItem {
	for _, it := range items {
		if it.ID == id {
			return it
		}
	}
	return nil
}

func decEq(t *testing.T, want int64, got *decimal.Decimal) {
	t.Helper()
	require.NotNil(t, got)
	assert.True(t, decimal.NewFromInt(want).Equal(*got), "esperado %d, obtenido %s", want, got.String())
}

// ──────────────────────────────────────────────────────────────────────────────
// Index
// ──────────────────────────────────────────────────────────────────────────────

func TestIndex_ComponentesYReferenciasHuerfanas(t *testing.T) {
	pc := &entity.InventoryItem{ID: "pc", IsPC: true, ComponentIDs: []string{"a", "ghost"}}
	a := part("a", "CPU", "Processor", 100)
	a.ParentContainerID = "pc"
	b := part("b", "GPU", "Graphics Card", 200)
	b.ParentContainerID = "pc"

	idx := composition.NewIndex([]*entity.InventoryItem{pc, a, b})
	comps, missing := idx.ComponentsOf(pc)
	require.Len(t, comps, 1)
	assert.Equal(t, "a", comps[0].ID)
	assert.Equal(t, []string{"ghost"}, missing)
	assert.Equal(t, "pc", idx.Owner("a"))
	assert.Empty(t, idx.Owner("b"))

	stale := idx.Stale(pc)
	require.Len(t, stale, 1)
	assert.Equal(t, "b", stale[0].ID)
}

// Un ítem que apunta a c1 pero figura en ComponentIDs de c2 pertenece a c2.
func TestIndex_ReferenciaInversaCedeAnteOtroDueno(t *testing.T) {
	a := part("a", "CPU", "Processor", 100)
	a.Status = entity.StatusInComposition
	a.ParentContainerID = "c1"
	c1 := &entity.InventoryItem{ID: "c1", Name: "Uno", IsPC: true, Category: entity.CategoryPC, Status: entity.StatusInStock}
	c2 := &entity.InventoryItem{ID: "c2", Name: "Dos", IsPC: true, Category: entity.CategoryPC,
		Status: entity.StatusInStock, ComponentIDs: []string{"a"}}
	catalog := []*entity.InventoryItem{a, c1, c2}
	idx := composition.NewIndex(catalog)

	assert.Equal(t, "c2", idx.Owner("a"))
	assert.Empty(t, idx.Stale(c1))

	res, err := composition.Dismantle(idx, c1, now)
	require.NoError(t, err)
	assert.Empty(t, res.Healed)
	assert.Empty(t, res.Changes.Updated)
	assert.Equal(t, []string{"c1"}, res.Changes.Deleted)

	b := part("b", "GPU", "Graphics Card", 200)
	catalog = append(catalog, b)
	res, err = composition.Assemble(composition.NewIndex(catalog), composition.AssembleInput{
		Name: "Uno", Components: []*entity.InventoryItem{b}, Existing: c1, Now: now,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Healed)
	for _, u := range res.Changes.Updated {
		assert.NotEqual(t, "a", u.ID)
	}
	after := apply(catalog, res.Changes)
	assert.Equal(t, entity.StatusInComposition, find(after, "a").Status)
	assert.Equal(t, "c1", find(after, "a").ParentContainerID)
}

// ──────────────────────────────────────────────────────────────────────────────
// Assemble
// ──────────────────────────────────────────────────────────────────────────────

func TestAssemble_NuevaBuild(t *testing.T) {
	cpu := part("cpu", "Ryzen 5 5600X", "Processor", 120)
	gpu := part("gpu", "RTX 3060", "Graphics Card", 250)
	gpu.BuyDate = now.AddDate(0, 0, -2)
	idx := composition.NewIndex([]*entity.InventoryItem{cpu, gpu})

	res, err := composition.Assemble(idx, composition.AssembleInput{
		Name:       "Gamer 1080p",
		Components: []*entity.InventoryItem{cpu, gpu},
		Now:        now,
		NewID:      fixedID("pc-1"),
	})
	require.NoError(t, err)

	pc := res.Composite
	assert.Equal(t, "pc-1", pc.ID)
	assert.True(t, pc.IsPC)
	assert.Equal(t, entity.SubCategoryCustomBuild, pc.SubCategory)
	assert.Equal(t, entity.StatusInStock, pc.Status)
	assert.True(t, decimal.NewFromInt(370).Equal(pc.BuyPrice))
	assert.Equal(t, []string{"cpu", "gpu"}, pc.ComponentIDs)
	assert.Equal(t, gpu.BuyDate, pc.BuyDate)

	require.Len(t, res.Changes.Created, 1)
	require.Len(t, res.Changes.Updated, 2)
	for _, c := range res.Changes.Updated {
		assert.Equal(t, entity.StatusInComposition, c.Status)
		assert.Equal(t, "pc-1", c.ParentContainerID)
	}
	// el snapshot no se muta
	assert.Equal(t, entity.StatusInStock, cpu.Status)
	assert.Empty(t, cpu.ParentContainerID)
}

func TestAssemble_SmartBundle(t *testing.T) {
	a := part("a", "Monitor", "Monitors", 90)
	b := part("b", "Keyboard", "Peripherals", 30)
	idx := composition.NewIndex([]*entity.InventoryItem{a, b})

	res, err := composition.Assemble(idx, composition.AssembleInput{
		Name: "Setup oficina", Components: []*entity.InventoryItem{a, b, a}, Kind: composition.KindBundle, Now: now,
	})
	require.NoError(t, err)
	assert.True(t, res.Composite.IsBundle)
	assert.False(t, res.Composite.IsPC)
	assert.Equal(t, entity.CategoryBundle, res.Composite.Category)
	assert.Len(t, res.Composite.ComponentIDs, 2)
	assert.NotEmpty(t, res.Composite.ID)
}

func TestAssemble_EdicionLiberaLosQueSalen(t *testing.T) {
	a := part("a", "CPU", "Processor", 100)
	b := part("b", "GPU", "Graphics Card", 200)
	c := part("c", "RAM", "RAM", 50)
	pc := &entity.InventoryItem{ID: "pc", Name: "Vieja", IsPC: true, Category: entity.CategoryPC,
		Status: entity.StatusInStock, ComponentIDs: []string{"a", "b"}, BuyPrice: decimal.NewFromInt(300), CreatedAt: now.AddDate(0, -1, 0)}
	for _, it := range []*entity.InventoryItem{a, b} {
		it.Status = entity.StatusInComposition
		it.ParentContainerID = "pc"
	}
	catalog := []*entity.InventoryItem{pc, a, b, c}
	idx := composition.NewIndex(catalog)

	res, err := composition.Assemble(idx, composition.AssembleInput{
		Name: "Nueva", Components: []*entity.InventoryItem{b, c}, Existing: pc, Now: now,
	})
	require.NoError(t, err)
	assert.Empty(t, res.Changes.Created)
	assert.Equal(t, "pc", res.Composite.ID)
	assert.Equal(t, pc.CreatedAt, res.Composite.CreatedAt)

	after := apply(catalog, res.Changes)
	assert.Equal(t, entity.StatusInStock, find(after, "a").Status)
	assert.Empty(t, find(after, "a").ParentContainerID)
	assert.Equal(t, entity.StatusInComposition, find(after, "c").Status)
	assert.Equal(t, "pc", find(after, "c").ParentContainerID)
	assert.Equal(t, []string{"b", "c"}, find(after, "pc").ComponentIDs)
	assert.True(t, decimal.NewFromInt(250).Equal(find(after, "pc").BuyPrice))
}

func TestAssemble_Validaciones(t *testing.T) {
	free := part("free", "CPU", "Processor", 100)
	gone := sold("gone", "GPU", "Graphics Card", 100, 150, now)
	defective := part("bad", "RAM", "RAM", 20)
	defective.IsDefective = true
	other := &entity.InventoryItem{ID: "other", IsPC: true, ComponentIDs: []string{"taken"}}
	taken := part("taken", "SSD", "Storage", 40)
	taken.Status = entity.StatusInComposition
	taken.ParentContainerID = "other"
	idx := composition.NewIndex([]*entity.InventoryItem{free, gone, defective, other, taken})

	_, err := composition.Assemble(idx, composition.AssembleInput{Name: "  ", Components: []*entity.InventoryItem{free}})
	assert.ErrorIs(t, err, domain.ErrEmptyBuildName)

	_, err = composition.Assemble(idx, composition.AssembleInput{Name: "X"})
	assert.ErrorIs(t, err, domain.ErrEmptySelection)

	for _, bad := range []*entity.InventoryItem{gone, defective, taken, other} {
		_, err = composition.Assemble(idx, composition.AssembleInput{Name: "X", Components: []*entity.InventoryItem{free, bad}})
		assert.ErrorIs(t, err, domain.ErrItemUnavailable, bad.ID)
	}

	_, err = composition.Assemble(idx, composition.AssembleInput{Name: "X", Components: []*entity.InventoryItem{free}, Existing: free})
	assert.ErrorIs(t, err, domain.ErrNotComposite)
}

// ──────────────────────────────────────────────────────────────────────────────
// Sell
// ──────────────────────────────────────────────────────────────────────────────

func TestSell_CompuestoPropagaFechaYEstado(t *testing.T) {
	a := part("a", "CPU", "Processor", 300)
	b := part("b", "GPU", "Graphics Card", 500)
	pc := &entity.InventoryItem{ID: "pc", IsPC: true, Status: entity.StatusInStock,
		ComponentIDs: []string{"a", "b"}, BuyPrice: decimal.NewFromInt(800)}
	for _, it := range []*entity.InventoryItem{a, b} {
		it.Status = entity.StatusInComposition
		it.ParentContainerID = "pc"
	}
	idx := composition.NewIndex([]*entity.InventoryItem{pc, a, b})
	fee := decimal.NewFromInt(50)
	date := now.AddDate(0, 0, -1)

	res, err := composition.Sell(idx, pc, composition.Sale{
		Price: decimal.NewFromInt(1000), Date: date, Fee: &fee, PaymentType: "Cash", Platform: "Local",
	}, now)
	require.NoError(t, err)
	assert.Equal(t, entity.StatusSold, res.Composite.Status)
	decEq(t, 150, res.Composite.Profit)
	require.Len(t, res.Changes.Updated, 3)
	for _, c := range res.Changes.Updated[1:] {
		assert.Equal(t, entity.StatusSold, c.Status)
		require.NotNil(t, c.SellDate)
		assert.Equal(t, date, *c.SellDate)
		assert.Equal(t, now.AddDate(0, -1, 0), c.BuyDate)
		assert.Equal(t, "pc", c.ParentContainerID)
	}

	_, err = composition.Sell(idx, res.Composite, composition.Sale{Price: decimal.NewFromInt(1)}, now)
	assert.ErrorIs(t, err, domain.ErrAlreadyDisposed)
	_, err = composition.Sell(idx, a, composition.Sale{Price: decimal.NewFromInt(1)}, now)
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestSell_PiezaSuelta(t *testing.T) {
	a := part("a", "CPU", "Processor", 100)
	idx := composition.NewIndex([]*entity.InventoryItem{a})

	res, err := composition.Sell(idx, a, composition.Sale{Price: decimal.NewFromInt(140)}, now)
	require.NoError(t, err)
	decEq(t, 40, res.Composite.Profit)
	assert.Equal(t, now, *res.Composite.SellDate)
	assert.Len(t, res.Changes.Updated, 1)

	_, err = composition.Sell(idx, a, composition.Sale{Price: decimal.NewFromInt(-1)}, now)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// Dismantle
// ──────────────────────────────────────────────────────────────────────────────

func TestDismantle_BuildLimpiaVenta(t *testing.T) {
	a := part("a", "CPU", "Processor", 100)
	a.Status = entity.StatusSold
	a.SellPrice = entity.DecimalPtr(decimal.NewFromInt(90))
	a.SellDate = &now
	a.PaymentType = "Cash"
	a.FeeAmount = entity.DecimalPtr(decimal.NewFromInt(5))
	a.ParentContainerID = "pc"
	stray := part("stray", "Fan", "Fans", 10)
	stray.Status = entity.StatusInComposition
	stray.ParentContainerID = "pc"
	pc := &entity.InventoryItem{ID: "pc", IsPC: true, SubCategory: entity.SubCategoryCustomBuild,
		ComponentIDs: []string{"a", "missing"}}
	catalog := []*entity.InventoryItem{pc, a, stray}

	res, err := composition.Dismantle(composition.NewIndex(catalog), pc, now)
	require.NoError(t, err)
	assert.Equal(t, []string{"pc"}, res.Changes.Deleted)
	assert.Equal(t, []string{"missing"}, res.Missing)
	assert.Equal(t, []string{"stray"}, res.Healed)

	after := apply(catalog, res.Changes)
	assert.Nil(t, find(after, "pc"))
	got := find(after, "a")
	assert.Equal(t, entity.StatusInStock, got.Status)
	assert.Empty(t, got.ParentContainerID)
	assert.Nil(t, got.SellPrice)
	assert.Nil(t, got.SellDate)
	assert.Nil(t, got.Profit)
	assert.Empty(t, got.PaymentType)
	assert.NotNil(t, got.FeeAmount)
	assert.Equal(t, entity.StatusInStock, find(after, "stray").Status)
}

func TestDismantle_SinComponentesSoloBorra(t *testing.T) {
	pc := &entity.InventoryItem{ID: "pc", IsBundle: true}
	res, err := composition.Dismantle(composition.NewIndex([]*entity.InventoryItem{pc}), pc, now)
	require.NoError(t, err)
	assert.Empty(t, res.Changes.Updated)
	assert.Equal(t, []string{"pc"}, res.Changes.Deleted)

	_, err = composition.Dismantle(composition.NewIndex(nil), part("x", "CPU", "Processor", 1), now)
	assert.ErrorIs(t, err, domain.ErrNotComposite)
}

// ──────────────────────────────────────────────────────────────────────────────
// Bundle retroactivo
// ──────────────────────────────────────────────────────────────────────────────

func TestRetroBundle_TotalesYDesarmeInverso(t *testing.T) {
	day := time.Date(2026, 2, 1, 9, 0, 0, 0, time.UTC)
	a := sold("a", "Monitor LG 27", "Monitors", 60, 100, day)
	b := sold("b", "Teclado mecánico", "Peripherals", 20, 50, day.Add(3*time.Hour))
	catalog := []*entity.InventoryItem{a, b}

	res, err := composition.RetroBundle(composition.NewIndex(catalog), composition.RetroInput{
		Items: catalog, Now: now, NewID: fixedID("rb"),
	})
	require.NoError(t, err)
	bundle := res.Composite
	decEq(t, 150, bundle.SellPrice)
	assert.True(t, decimal.NewFromInt(80).Equal(bundle.BuyPrice))
	decEq(t, 70, bundle.Profit)
	assert.Equal(t, entity.StatusSold, bundle.Status)
	assert.True(t, bundle.IsBundle)
	assert.True(t, bundle.IsRetroBundle())
	assert.Equal(t, day, *bundle.SellDate)
	assert.Equal(t, "Cash", bundle.PaymentType)
	assert.Equal(t, "Marketplace", bundle.PlatformSold)
	assert.Equal(t, "Monitor LG 27 + Teclado mecánico", bundle.Name)

	bundled := apply(catalog, res.Changes)
	assert.Equal(t, entity.StatusInComposition, find(bundled, "a").Status)
	assert.Equal(t, "rb", find(bundled, "b").ParentContainerID)

	undo, err := composition.Dismantle(composition.NewIndex(bundled), find(bundled, "rb"), now)
	require.NoError(t, err)
	restored := apply(bundled, undo.Changes)
	require.Len(t, restored, 2)
	for _, orig := range catalog {
		got := find(restored, orig.ID)
		assert.Equal(t, entity.StatusSold, got.Status)
		assert.Empty(t, got.ParentContainerID)
		assert.True(t, orig.SellPrice.Equal(*got.SellPrice))
		assert.Equal(t, *orig.SellDate, *got.SellDate)
		assert.True(t, orig.BuyPrice.Equal(got.BuyPrice))
	}
}

func TestRetroBundle_RestauraTraded(t *testing.T) {
	a := sold("a", "GPU", "Graphics Card", 100, 150, now)
	a.Status = entity.StatusTraded
	a.PaymentType = entity.PaymentTypeTrade
	b := sold("b", "CPU", "Processor", 50, 70, now)
	catalog := []*entity.InventoryItem{a, b}

	res, err := composition.RetroBundle(composition.NewIndex(catalog), composition.RetroInput{Items: catalog, Now: now})
	require.NoError(t, err)
	bundled := apply(catalog, res.Changes)
	undo, err := composition.Dismantle(composition.NewIndex(bundled), res.Composite, now)
	require.NoError(t, err)
	restored := apply(bundled, undo.Changes)
	assert.Equal(t, entity.StatusTraded, find(restored, "a").Status)
	assert.Equal(t, entity.StatusSold, find(restored, "b").Status)
}

func TestRetroBundle_Validaciones(t *testing.T) {
	a := sold("a", "GPU", "Graphics Card", 100, 150, now)
	stock := part("s", "CPU", "Processor", 50)

	_, err := composition.RetroBundle(composition.NewIndex(nil), composition.RetroInput{Items: []*entity.InventoryItem{a, a}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = composition.RetroBundle(composition.NewIndex(nil), composition.RetroInput{Items: []*entity.InventoryItem{a}})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = composition.RetroBundle(composition.NewIndex(nil), composition.RetroInput{Items: []*entity.InventoryItem{a, stock}})
	assert.ErrorIs(t, err, domain.ErrItemUnavailable)
}

func TestRetroBundle_FechaNoUnanimeUsaNow(t *testing.T) {
	a := sold("a", "GPU", "Graphics Card", 100, 150, now.AddDate(0, 0, -3))
	b := sold("b", "CPU", "Processor", 50, 70, now.AddDate(0, 0, -1))
	res, err := composition.RetroBundle(composition.NewIndex(nil), composition.RetroInput{
		Items: []*entity.InventoryItem{a, b}, Name: "Lote marzo", Now: now,
	})
	require.NoError(t, err)
	assert.Equal(t, now, *res.Composite.SellDate)
	assert.Equal(t, "Lote marzo", res.Composite.Name)
}

func TestRetroName_Heuristicas(t *testing.T) {
	cpu := sold("cpu", "AMD Ryzen 5 5600X", "Processor", 1, 1, now)
	gpu := sold("gpu", "MSI RTX 3060 Ventus", "Graphics Card", 1, 1, now)
	gpu2 := sold("gpu2", "Sapphire RX 6700 XT", "Graphics Card", 1, 1, now)
	box := sold("case", "NZXT H510", "Case", 1, 1, now)
	board := sold("mb", "MSI B550 Tomahawk", "Motherboard", 1, 1, now)

	assert.True(t, strings.HasPrefix(composition.RetroName([]*entity.InventoryItem{cpu, gpu, box}), "Full PC "))
	assert.True(t, strings.HasPrefix(composition.RetroName([]*entity.InventoryItem{cpu, board}), "Upgrade Bundle "))
	assert.True(t, strings.HasPrefix(composition.RetroName([]*entity.InventoryItem{gpu, gpu2}), "2x GPU Bundle "))

	m := sold("m", "Monitor", "Monitors", 1, 300, now)
	k := sold("k", "Teclado", "Peripherals", 1, 50, now)
	r := sold("r", "Mouse", "Peripherals", 1, 80, now)
	assert.Equal(t, "Monitor + Mouse + 1 más", composition.RetroName([]*entity.InventoryItem{k, m, r}))
}

func TestTotalsOf_IncluyeComisiones(t *testing.T) {
	a := sold("a", "GPU", "Graphics Card", 100, 150, now)
	a.FeeAmount = entity.DecimalPtr(decimal.NewFromInt(10))
	b := sold("b", "CPU", "Processor", 50, 70, now)
	tot := composition.TotalsOf([]*entity.InventoryItem{a, b})
	assert.True(t, decimal.NewFromInt(220).Equal(tot.Sell))
	assert.True(t, decimal.NewFromInt(150).Equal(tot.Buy))
	assert.True(t, decimal.NewFromInt(10).Equal(tot.Fees))
	assert.True(t, decimal.NewFromInt(60).Equal(tot.Margin))
}
