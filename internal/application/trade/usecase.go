package trade

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/application/ports"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
	"github.com/jhoicas/inventario-hardware/internal/domain/repository"
	domaintrade "github.com/jhoicas/inventario-hardware/internal/domain/trade"
	"github.com/jhoicas/inventario-hardware/pkg/logger"
	"github.com/jhoicas/inventario-hardware/pkg/metrics"
)

// TradeUseCase confirma intercambios y calcula su vista previa.
type TradeUseCase struct {
	repo    repository.ItemRepository
	tx      ports.TxRunner
	log     *logger.Logger
	metrics *metrics.Metrics
	now     func() time.Time
	newID   func() string
}

// NewTradeUseCase construye el caso de uso.
func NewTradeUseCase(repo repository.ItemRepository, tx ports.TxRunner, log *logger.Logger, m *metrics.Metrics) *TradeUseCase {
	return &TradeUseCase{
		repo:    repo,
		tx:      tx,
		log:     log.Component("trades"),
		metrics: m,
		now:     time.Now,
		newID:   func() string { return uuid.New().String() },
	}
}

// Preview calcula los totales del trade sin persistir nada.
func (uc *TradeUseCase) Preview(ctx context.Context, in dto.TradeRequest) (*dto.TradeSummaryResponse, error) {
	out, err := uc.repo.GetByID(ctx, in.OutgoingID)
	if err != nil {
		return nil, err
	}
	if out == nil {
		return nil, domain.ErrNotFound
	}
	s := domaintrade.Summarize(incoming(in), in.CashOnTop, out.BuyPrice)
	return toSummary(s), nil
}

// Execute confirma el trade en una sola transacción.
func (uc *TradeUseCase) Execute(ctx context.Context, in dto.TradeRequest) (*dto.TradeResponse, error) {
	var res domaintrade.Result
	err := inventory.WithCatalog(ctx, uc.tx, func(idx *composition.Index) (entity.ChangeSet, error) {
		out := idx.Get(in.OutgoingID)
		if out == nil {
			return entity.ChangeSet{}, domain.ErrNotFound
		}
		input := domaintrade.Input{
			Outgoing: out,
			Incoming: incoming(in),
			Cash:     in.CashOnTop,
			Note:     in.Note,
			Now:      uc.now(),
			NewID:    uc.newID,
		}
		if in.TradeDate != nil {
			input.Date = *in.TradeDate
		}
		r, err := domaintrade.Exchange(idx, input)
		if err != nil {
			return entity.ChangeSet{}, err
		}
		res = r
		return r.Changes, nil
	})
	if err != nil {
		inventory.Record(uc.metrics, "trade", err, 0)
		return nil, err
	}
	inventory.Record(uc.metrics, "trade", nil, len(res.Received))
	uc.metrics.RecordTradeValue(res.Summary.TotalTradeValue.InexactFloat64())
	if len(res.Missing) > 0 {
		uc.log.Warn().Str("outgoing_id", in.OutgoingID).Strs("missing_components", res.Missing).
			Msg("compuesto intercambiado con componentes inexistentes")
	}
	uc.log.Info().Str("outgoing_id", in.OutgoingID).Int("received", len(res.Received)).
		Str("cash_on_top", in.CashOnTop.String()).Str("total_trade_value", res.Summary.TotalTradeValue.String()).
		Msg("trade confirmado")
	return &dto.TradeResponse{
		Outgoing: inventory.ToItemResponse(res.Outgoing),
		Received: inventory.ToItemResponses(res.Received),
		Summary:  *toSummary(res.Summary),
	}, nil
}

func incoming(in dto.TradeRequest) []domaintrade.Incoming {
	out := make([]domaintrade.Incoming, 0, len(in.Incoming))
	for _, d := range in.Incoming {
		out = append(out, domaintrade.Incoming{
			Name:        d.Name,
			Category:    d.Category,
			SubCategory: d.SubCategory,
			Specs:       entity.Specs(d.Specs),
			Value:       d.Value,
			IsDefective: d.IsDefective,
			Notes:       d.Notes,
		})
	}
	return out
}

func toSummary(s domaintrade.Summary) *dto.TradeSummaryResponse {
	return &dto.TradeSummaryResponse{
		TotalIncomingValue: s.TotalIncomingValue,
		TotalTradeValue:    s.TotalTradeValue,
		ProjectedProfit:    s.ProjectedProfit,
	}
}
