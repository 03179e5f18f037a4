package builds

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// Config reglas del editor y vida de los borradores.
type Config struct {
	Options  build.Options
	DraftTTL time.Duration
}

// BuildUseCase ensamblado, edición, desarme y bundles (incluido el retroactivo),
// más las sesiones del editor de slots persistidas como borradores.
type BuildUseCase struct {
	repo    repository.ItemRepository
	tx      ports.TxRunner
	drafts  ports.DraftStore
	slots   []build.Slot
	cfg     Config
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NewBuildUseCase construye el caso de uso con el esquema de slots por defecto.
func NewBuildUseCase(
	repo repository.ItemRepository,
	tx ports.TxRunner,
	drafts ports.DraftStore,
	cfg Config,
	log *logger.Logger,
	m *metrics.Metrics,
) *BuildUseCase {
	if cfg.DraftTTL <= 0 {
		cfg.DraftTTL = 12 * time.Hour
	}
	return &BuildUseCase{
		repo:    repo,
		tx:      tx,
		drafts:  drafts,
		slots:   build.DefaultSlots(),
		cfg:     cfg,
		log:     log.Component("builds"),
		metrics: m,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Assemble crea una build (isPC) con los componentes indicados.
func (uc *BuildUseCase) Assemble(ctx context.Context, in dto.AssembleRequest) (*dto.OperationResponse, error) {
	return uc.assemble(ctx, "assemble", in.Name, in.ComponentIDs, "", composition.KindPC)
}

// CreateBundle crea un bundle (isBundle) a partir de ítems en stock.
func (uc *BuildUseCase) CreateBundle(ctx context.Context, in dto.AssembleRequest) (*dto.OperationResponse, error) {
	return uc.assemble(ctx, "bundle", in.Name, in.ComponentIDs, "", composition.KindBundle)
}

// Edit reensambla un compuesto existente con la nueva selección.
func (uc *BuildUseCase) Edit(ctx context.Context, id string, in dto.AssembleRequest) (*dto.OperationResponse, error) {
	return uc.assemble(ctx, "edit", in.Name, in.ComponentIDs, id, composition.KindPC)
}

func (uc *BuildUseCase) assemble(ctx context.Context, op, name string, ids []string, existingID string, kind composition.Kind) (*dto.OperationResponse, error) {
	var res composition.Result
	err := inventory.WithCatalog(ctx, uc.tx, func(idx *composition.Index) (entity.ChangeSet, error) {
		var existing *entity.InventoryItem
		if existingID != "" {
			if existing = idx.Get(existingID); existing == nil {
				return entity.ChangeSet{}, domain.ErrNotFound
			}
		}
		components, err := resolve(idx, ids)
		if err != nil {
			return entity.ChangeSet{}, err
		}
		r, err := composition.Assemble(idx, composition.AssembleInput{
			Name:       name,
			Components: components,
			Existing:   existing,
			Kind:       kind,
			Now:        uc.now(),
			NewID:      uc.newID,
		})
		if err != nil {
			return entity.ChangeSet{}, err
		}
		res = r
		return r.Changes, nil
	})
	if err != nil {
		inventory.Record(uc.metrics, op, err, 0)
		uc.log.Debug().Err(err).Str("operation", op).Msg("operación rechazada")
		return nil, err
	}
	inventory.Record(uc.metrics, op, nil, len(res.Composite.ComponentIDs))
	inventory.WarnInconsistencies(uc.log, op, res)
	uc.log.Info().Str("operation", op).Str("composite_id", res.Composite.ID).
		Int("components", len(res.Composite.ComponentIDs)).Str("buy_price", res.Composite.BuyPrice.String()).
		Msg("compuesto ensamblado")
	return inventory.ToOperationResponse(res.Composite, res.Changes), nil
}

// Dismantle desarma el compuesto y devuelve sus componentes a su estado previo.
func (uc *BuildUseCase) Dismantle(ctx context.Context, id string) (*dto.OperationResponse, error) {
	var res composition.Result
	err := inventory.WithCatalog(ctx, uc.tx, func(idx *composition.Index) (entity.ChangeSet, error) {
		composite := idx.Get(id)
		if composite == nil {
			return entity.ChangeSet{}, domain.ErrNotFound
		}
		r, err := composition.Dismantle(idx, composite, uc.now())
		if err != nil {
			return entity.ChangeSet{}, err
		}
		res = r
		return r.Changes, nil
	})
	if err != nil {
		inventory.Record(uc.metrics, "dismantle", err, 0)
		return nil, err
	}
	inventory.Record(uc.metrics, "dismantle", nil, len(res.Changes.Updated))
	inventory.WarnInconsistencies(uc.log, "dismantle", res)
	uc.log.Info().Str("composite_id", id).Bool("retro", res.Composite.IsRetroBundle()).
		Int("components", len(res.Changes.Updated)).Msg("compuesto desarmado")
	return inventory.ToOperationResponse(nil, res.Changes), nil
}

// RetroBundle agrupa ventas ya registradas en un bundle retroactivo.
func (uc *BuildUseCase) RetroBundle(ctx context.Context, in dto.RetroBundleRequest) (*dto.RetroBundleResponse, error) {
	var (
		res    composition.Result
		totals composition.RetroTotals
	)
	err := inventory.WithCatalog(ctx, uc.tx, func(idx *composition.Index) (entity.ChangeSet, error) {
		items, err := resolve(idx, in.ItemIDs)
		if err != nil {
			return entity.ChangeSet{}, err
		}
		r, err := composition.RetroBundle(idx, composition.RetroInput{
			Items: items,
			Name:  in.Name,
			Now:   uc.now(),
			NewID: uc.newID,
		})
		if err != nil {
			return entity.ChangeSet{}, err
		}
		res, totals = r, composition.TotalsOf(items)
		return r.Changes, nil
	})
	if err != nil {
		inventory.Record(uc.metrics, "retro_bundle", err, 0)
		return nil, err
	}
	inventory.Record(uc.metrics, "retro_bundle", nil, len(res.Composite.ComponentIDs))
	uc.log.Info().Str("bundle_id", res.Composite.ID).Int("items", len(res.Composite.ComponentIDs)).
		Str("total_sell", totals.Sell.String()).Str("margin", totals.Margin.String()).Msg("bundle retroactivo creado")
	return &dto.RetroBundleResponse{
		OperationResponse: *inventory.ToOperationResponse(res.Composite, res.Changes),
		Totals: dto.RetroTotalsResponse{
			TotalSell: totals.Sell,
			TotalBuy:  totals.Buy,
			TotalFees: totals.Fees,
			Margin:    totals.Margin,
		},
	}, nil
}

// resolve busca los ítems por id; un id inexistente es ErrNotFound.
func resolve(idx *composition.Index, ids []string) ([]*entity.InventoryItem, error) {
	out := make([]*entity.InventoryItem, 0, len(ids))
	for _, id := range ids {
		it := idx.Get(id)
		if it == nil {
			return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, id)
		}
		out = append(out, it)
	}
	return out, nil
}
