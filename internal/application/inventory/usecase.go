package inventory

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// ItemUseCase alta, consulta, sugerencias de compatibilidad y venta de ítems.
type ItemUseCase struct {
	repo    repository.ItemRepository
	tx      ports.TxRunner
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
}

// NewItemUseCase construye el caso de uso.
func NewItemUseCase(repo repository.ItemRepository, tx ports.TxRunner, log *logger.Logger, m *metrics.Metrics) *ItemUseCase {
	return &ItemUseCase{repo: repo, tx: tx, log: log.Component("items"), metrics: m, now: time.Now}
}

// Create registra una pieza suelta (IN_STOCK u ORDERED).
func (uc *ItemUseCase) Create(ctx context.Context, in dto.CreateItemRequest) (*dto.ItemResponse, error) {
	if in.BuyPrice.IsNegative() || (in.FeeAmount != nil && in.FeeAmount.IsNegative()) {
		return nil, fmt.Errorf("%w: buy_price y fee_amount deben ser >= 0", domain.ErrInvalidInput)
	}
	status := entity.Status(strings.TrimSpace(in.Status))
	if status == "" {
		status = entity.StatusInStock
	}
	if status != entity.StatusInStock && status != entity.StatusOrdered {
		return nil, fmt.Errorf("%w: estado inicial %q", domain.ErrInvalidInput, status)
	}
	now := uc.now()
	buyDate := now
	if in.BuyDate != nil {
		buyDate = *in.BuyDate
	}
	item := &entity.InventoryItem{
		ID:          uuid.New().String(),
		Name:        strings.TrimSpace(in.Name),
		Category:    strings.TrimSpace(in.Category),
		SubCategory: strings.TrimSpace(in.SubCategory),
		BuyPrice:    in.BuyPrice,
		BuyDate:     buyDate,
		FeeAmount:   in.FeeAmount,
		Status:      status,
		IsDefective: in.IsDefective,
		IsDraft:     in.IsDraft,
		Specs:       entity.Specs(in.Specs).Clone(),
		Notes:       in.Notes,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(ctx, item); err != nil {
		return nil, err
	}
	uc.log.Info().Str("item_id", item.ID).Str("sub_category", item.SubCategory).Msg("ítem creado")
	resp := ToItemResponse(item)
	return &resp, nil
}

// GetByID obtiene un ítem; si es un compuesto incluye sus componentes resueltos.
func (uc *ItemUseCase) GetByID(ctx context.Context, id string) (*dto.ItemResponse, error) {
	item, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if item == nil {
		return nil, domain.ErrNotFound
	}
	resp := ToItemResponse(item)
	if item.IsComposite() && len(item.ComponentIDs) > 0 {
		components, err := uc.repo.GetByIDs(ctx, item.ComponentIDs)
		if err != nil {
			return nil, err
		}
		if len(components) != len(item.ComponentIDs) {
			uc.log.Warn().Str("composite_id", id).Int("listed", len(item.ComponentIDs)).
				Int("found", len(components)).Msg("compuesto con componentes inexistentes")
		}
		resp.Components = ToItemResponses(components)
	}
	return &resp, nil
}

// List lista ítems con filtros y paginación.
func (uc *ItemUseCase) List(ctx context.Context, in dto.ItemListRequest) (*dto.ItemListResponse, error) {
	in.DefaultPage()
	items, total, err := uc.repo.List(ctx, repository.ItemFilter{
		Category:    strings.TrimSpace(in.Category),
		SubCategory: strings.TrimSpace(in.SubCategory),
		Status:      entity.Status(in.Status),
		Search:      strings.TrimSpace(in.Q),
		Limit:       in.Limit,
		Offset:      in.Offset,
	})
	if err != nil {
		return nil, err
	}
	return &dto.ItemListResponse{
		Items: ToItemResponses(items),
		Page:  dto.PageResponse{Limit: in.Limit, Offset: in.Offset, Total: total},
	}, nil
}

// Compatible devuelve los grupos de piezas compatibles del catálogo para el ítem.
func (uc *ItemUseCase) Compatible(ctx context.Context, id string) ([]dto.CompatibleGroupResponse, error) {
	catalog, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	item := composition.NewIndex(catalog).Get(id)
	if item == nil {
		return nil, domain.ErrNotFound
	}
	groups := compat.Suggest(item, catalog)
	out := make([]dto.CompatibleGroupResponse, 0, len(groups))
	for _, g := range groups {
		out = append(out, dto.CompatibleGroupResponse{Name: g.Name, Items: ToItemResponses(g.Items)})
	}
	return out, nil
}

// Sell registra la venta. Para un compuesto, la fecha y el estado se propagan a los componentes.
func (uc *ItemUseCase) Sell(ctx context.Context, id string, in dto.SellItemRequest) (*dto.OperationResponse, error) {
	if in.SellPrice == nil {
		return nil, fmt.Errorf("%w: sell_price es obligatorio", domain.ErrInvalidInput)
	}
	var res composition.Result
	err := WithCatalog(ctx, uc.tx, func(idx *composition.Index) (entity.ChangeSet, error) {
		item := idx.Get(id)
		if item == nil {
			return entity.ChangeSet{}, domain.ErrNotFound
		}
		sale := composition.Sale{
			Price:       *in.SellPrice,
			Fee:         in.FeeAmount,
			PaymentType: in.PaymentType,
			Platform:    in.PlatformSold,
		}
		if in.SellDate != nil {
			sale.Date = *in.SellDate
		}
		r, err := composition.Sell(idx, item, sale, uc.now())
		if err != nil {
			return entity.ChangeSet{}, err
		}
		res = r
		return r.Changes, nil
	})
	components := len(res.Changes.Updated) - 1
	if err != nil {
		Record(uc.metrics, "sell", err, 0)
		return nil, err
	}
	Record(uc.metrics, "sell", nil, components)
	WarnInconsistencies(uc.log, "sell", res)
	uc.log.Info().Str("item_id", id).Str("sell_price", res.Composite.SellPrice.String()).
		Int("components", components).Msg("venta registrada")
	return ToOperationResponse(res.Composite, res.Changes), nil
}

// Record cuenta la operación según su resultado: rechazo de dominio o error de infraestructura.
func Record(m *metrics.Metrics, operation string, err error, components int) {
	switch {
	case err == nil:
		m.RecordOperation(operation, metrics.OutcomeOK, components)
	case IsRejection(err):
		m.RecordOperation(operation, metrics.OutcomeRejected, 0)
	default:
		m.RecordOperation(operation, metrics.OutcomeError, 0)
	}
}

// IsRejection indica si el error es una validación de dominio y no un fallo de infraestructura.
func IsRejection(err error) bool {
	for _, target := range []error{
		domain.ErrNotFound, domain.ErrInvalidInput, domain.ErrConflict,
		domain.ErrEmptyBuildName, domain.ErrEmptySelection, domain.ErrRequiredSlotEmpty,
		domain.ErrUnknownSlot, domain.ErrNotComposite, domain.ErrItemUnavailable,
		domain.ErrAlreadyDisposed, domain.ErrEmptyTrade, domain.ErrIncompatible,
	} {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// WarnInconsistencies registra las inconsistencias toleradas que detectó el motor.
func WarnInconsistencies(log *logger.Logger, operation string, res composition.Result) {
	if len(res.Missing) == 0 && len(res.Healed) == 0 {
		return
	}
	ev := log.Warn().Str("operation", operation)
	if res.Composite != nil {
		ev = ev.Str("composite_id", res.Composite.ID)
	}
	ev.Strs("missing_components", res.Missing).Strs("healed_back_references", res.Healed).
		Msg("inconsistencia de vínculos tolerada")
}
