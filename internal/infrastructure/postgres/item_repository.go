package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
)

var _ repository.ItemRepository = (*ItemRepo)(nil)

const itemColumns = `id, name, category, sub_category, buy_price, buy_date, sell_price, sell_date,
	profit, fee_amount, payment_type, platform_sold, status, is_defective, is_draft, specs,
	is_pc, is_bundle, component_ids, parent_container_id, traded_from_id, traded_for_ids,
	cash_on_top, notes, created_at, updated_at`

const insertItemSQL = `INSERT INTO inventory_items (` + itemColumns + `)
	VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14,$15,$16,$17,$18,$19,$20,$21,$22,$23,$24,$25,$26)`

const updateItemSQL = `UPDATE inventory_items SET
	name=$2, category=$3, sub_category=$4, buy_price=$5, buy_date=$6, sell_price=$7, sell_date=$8,
	profit=$9, fee_amount=$10, payment_type=$11, platform_sold=$12, status=$13, is_defective=$14,
	is_draft=$15, specs=$16, is_pc=$17, is_bundle=$18, component_ids=$19, parent_container_id=$20,
	traded_from_id=$21, traded_for_ids=$22, cash_on_top=$23, notes=$24, created_at=$25, updated_at=$26
	WHERE id=$1`

// ItemRepo implementa repository.ItemRepository con PostgreSQL.
type ItemRepo struct {
	q Querier
}

// NewItemRepository construye un repositorio sobre un pool o una transacción.
func NewItemRepository(q Querier) *ItemRepo {
	return &ItemRepo{q: q}
}

func (r *ItemRepo) Create(ctx context.Context, item *entity.InventoryItem) error {
	_, err := r.q.Exec(ctx, insertItemSQL, itemArgs(item)...)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("insert item %s: %w", item.ID, domain.ErrConflict)
		}
		return fmt.Errorf("insert item: %w", err)
	}
	return nil
}

func (r *ItemRepo) GetByID(ctx context.Context, id string) (*entity.InventoryItem, error) {
	row := r.q.QueryRow(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = $1`, id)
	item, err := scanItem(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return item, nil
}

// GetByIDs devuelve los ítems encontrados en el orden de ids; los inexistentes se omiten.
func (r *ItemRepo) GetByIDs(ctx context.Context, ids []string) ([]*entity.InventoryItem, error) {
	if len(ids) == 0 {
		return nil, nil
	}
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items WHERE id = ANY($1)`, ids)
	if err != nil {
		return nil, fmt.Errorf("query items: %w", err)
	}
	found, err := collectItems(rows)
	if err != nil {
		return nil, err
	}
	byID := make(map[string]*entity.InventoryItem, len(found))
	for _, it := range found {
		byID[it.ID] = it
	}
	out := make([]*entity.InventoryItem, 0, len(found))
	for _, id := range ids {
		if it, ok := byID[id]; ok {
			out = append(out, it)
			delete(byID, id)
		}
	}
	return out, nil
}

func (r *ItemRepo) List(ctx context.Context, f repository.ItemFilter) ([]*entity.InventoryItem, int, error) {
	sql, args := listQuery(f)
	rows, err := r.q.Query(ctx, sql, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	defer rows.Close()

	var (
		out   []*entity.InventoryItem
		total int
	)
	for rows.Next() {
		item, err := scanItem(rows, &total)
		if err != nil {
			return nil, 0, err
		}
		out = append(out, item)
	}
	if err := rows.Err(); err != nil {
		return nil, 0, fmt.Errorf("list items: %w", err)
	}
	return out, total, nil
}

// listQuery construye el SELECT filtrado; el total sale de COUNT(*) OVER() en cada fila.
func listQuery(f repository.ItemFilter) (string, []any) {
	var (
		where []string
		args  []any
	)
	add := func(cond string, v any) {
		args = append(args, v)
		where = append(where, fmt.Sprintf(cond, len(args)))
	}
	if f.Category != "" {
		add("category ILIKE $%d", f.Category)
	}
	if f.SubCategory != "" {
		add("sub_category ILIKE $%d", f.SubCategory)
	}
	if f.Status != "" {
		add("status = $%d", string(f.Status))
	}
	if s := strings.TrimSpace(f.Search); s != "" {
		add("name ILIKE '%%' || $%d || '%%'", s)
	}

	var b strings.Builder
	b.WriteString(`SELECT ` + itemColumns + `, COUNT(*) OVER() FROM inventory_items`)
	if len(where) > 0 {
		b.WriteString(" WHERE " + strings.Join(where, " AND "))
	}
	b.WriteString(" ORDER BY created_at DESC, id")
	if f.Limit > 0 {
		args = append(args, f.Limit)
		fmt.Fprintf(&b, " LIMIT $%d", len(args))
	}
	if f.Offset > 0 {
		args = append(args, f.Offset)
		fmt.Fprintf(&b, " OFFSET $%d", len(args))
	}
	return b.String(), args
}

func (r *ItemRepo) Snapshot(ctx context.Context) ([]*entity.InventoryItem, error) {
	rows, err := r.q.Query(ctx, `SELECT `+itemColumns+` FROM inventory_items ORDER BY created_at DESC, id`)
	if err != nil {
		return nil, fmt.Errorf("snapshot items: %w", err)
	}
	return collectItems(rows)
}

// LockCatalog serializa las operaciones de composición hasta el fin de la transacción.
// Fuera de una transacción el lock se libera al terminar la sentencia.
func (r *ItemRepo) LockCatalog(ctx context.Context) error {
	if _, err := r.q.Exec(ctx, `SELECT pg_advisory_xact_lock(hashtext('inventory_items'))`); err != nil {
		return fmt.Errorf("lock catalog: %w", err)
	}
	return nil
}

// Apply escribe el lote en un solo batch: inserciones, actualizaciones y borrados en ese orden.
func (r *ItemRepo) Apply(ctx context.Context, cs entity.ChangeSet) error {
	if cs.IsEmpty() {
		return nil
	}
	b := &pgx.Batch{}
	for _, it := range cs.Created {
		b.Queue(insertItemSQL, itemArgs(it)...)
	}
	for _, it := range cs.Updated {
		b.Queue(updateItemSQL, itemArgs(it)...)
	}
	for _, id := range cs.Deleted {
		b.Queue(`DELETE FROM inventory_items WHERE id = $1`, id)
	}

	br := r.q.SendBatch(ctx, b)
	defer br.Close()

	for _, it := range cs.Created {
		if _, err := br.Exec(); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert item %s: %w", it.ID, domain.ErrConflict)
			}
			return fmt.Errorf("insert item %s: %w", it.ID, err)
		}
	}
	for _, it := range cs.Updated {
		tag, err := br.Exec()
		if err != nil {
			return fmt.Errorf("update item %s: %w", it.ID, err)
		}
		if tag.RowsAffected() == 0 {
			return fmt.Errorf("update item %s: %w", it.ID, domain.ErrNotFound)
		}
	}
	for _, id := range cs.Deleted {
		if _, err := br.Exec(); err != nil {
			return fmt.Errorf("delete item %s: %w", id, err)
		}
	}
	return br.Close()
}

func itemArgs(it *entity.InventoryItem) []any {
	specs := it.Specs
	if specs == nil {
		specs = entity.Specs{}
	}
	return []any{
		it.ID, it.Name, it.Category, it.SubCategory, it.BuyPrice, it.BuyDate, it.SellPrice, it.SellDate,
		it.Profit, it.FeeAmount, it.PaymentType, it.PlatformSold, string(it.Status), it.IsDefective, it.IsDraft, specs,
		it.IsPC, it.IsBundle, nonNil(it.ComponentIDs), it.ParentContainerID, it.TradedFromID, nonNil(it.TradedForIDs),
		it.CashOnTop, it.Notes, it.CreatedAt, it.UpdatedAt,
	}
}

func scanItem(row pgx.Row, extra ...any) (*entity.InventoryItem, error) {
	var (
		it     entity.InventoryItem
		status string
	)
	dest := []any{
		&it.ID, &it.Name, &it.Category, &it.SubCategory, &it.BuyPrice, &it.BuyDate, &it.SellPrice, &it.SellDate,
		&it.Profit, &it.FeeAmount, &it.PaymentType, &it.PlatformSold, &status, &it.IsDefective, &it.IsDraft, &it.Specs,
		&it.IsPC, &it.IsBundle, &it.ComponentIDs, &it.ParentContainerID, &it.TradedFromID, &it.TradedForIDs,
		&it.CashOnTop, &it.Notes, &it.CreatedAt, &it.UpdatedAt,
	}
	if err := row.Scan(append(dest, extra...)...); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, err
		}
		return nil, fmt.Errorf("scan item: %w", err)
	}
	it.Status = entity.Status(status)
	if len(it.ComponentIDs) == 0 {
		it.ComponentIDs = nil
	}
	if len(it.TradedForIDs) == 0 {
		it.TradedForIDs = nil
	}
	return &it, nil
}

func collectItems(rows pgx.Rows) ([]*entity.InventoryItem, error) {
	defer rows.Close()
	var out []*entity.InventoryItem
	for rows.Next() {
		it, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, it)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate items: %w", err)
	}
	return out, nil
}
