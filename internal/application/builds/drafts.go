package builds

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/application/inventory"
	"github.com/jhoicas/inventario-hardware/internal/domain"
	"github.com/jhoicas/inventario-hardware/internal/domain/build"
	"github.com/jhoicas/inventario-hardware/internal/domain/compat"
	"github.com/jhoicas/inventario-hardware/internal/domain/composition"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// session editor restaurado junto al índice del catálogo con el que se resolvió.
type session struct {
	id      string
	builder *build.Builder
	idx     *composition.Index
	catalog []*entity.InventoryItem
}

// StartDraft abre un borrador vacío o, con EditingID, cargado con los componentes del compuesto.
func (uc *BuildUseCase) StartDraft(ctx context.Context, in dto.StartDraftRequest) (*dto.DraftResponse, error) {
	catalog, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	idx := composition.NewIndex(catalog)
	b := build.NewBuilder(uc.slots, uc.cfg.Options)
	if id := strings.TrimSpace(in.EditingID); id != "" {
		composite := idx.Get(id)
		if composite == nil {
			return nil, domain.ErrNotFound
		}
		if !composite.IsComposite() {
			return nil, domain.ErrNotComposite
		}
		if composite.IsDisposed() || composite.IsRetroBundle() {
			return nil, fmt.Errorf("%w: el compuesto no es editable", domain.ErrConflict)
		}
		components, missing := idx.ComponentsOf(composite)
		if len(missing) > 0 {
			uc.log.Warn().Str("composite_id", id).Strs("missing_components", missing).Msg("compuesto con componentes inexistentes")
		}
		b = build.FromComposite(uc.slots, uc.cfg.Options, composite, components)
	}
	s := &session{id: uc.newID(), builder: b, idx: idx, catalog: catalog}
	if err := uc.persist(ctx, s); err != nil {
		return nil, err
	}
	return uc.draftResponse(s), nil
}

// GetDraft devuelve el estado actual del borrador.
func (uc *BuildUseCase) GetDraft(ctx context.Context, id string) (*dto.DraftResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	return uc.draftResponse(s), nil
}

// DeleteDraft descarta el borrador.
func (uc *BuildUseCase) DeleteDraft(ctx context.Context, id string) error {
	return uc.drafts.Delete(ctx, id)
}

// RenameDraft fija un nombre manual; vacío vuelve al nombre derivado de la selección.
func (uc *BuildUseCase) RenameDraft(ctx context.Context, id string, in dto.RenameDraftRequest) (*dto.DraftResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	s.builder.SetName(in.Name)
	if err := uc.persist(ctx, s); err != nil {
		return nil, err
	}
	return uc.draftResponse(s), nil
}

// ToggleSlot selecciona o quita un ítem del slot. Al agregar se exige que sea elegible,
// del tipo del slot y compatible con la selección actual.
func (uc *BuildUseCase) ToggleSlot(ctx context.Context, id, slotID string, in dto.ToggleSlotRequest) (*dto.DraftResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	slot, ok := s.builder.Slot(slotID)
	if !ok {
		return nil, fmt.Errorf("%w: %s", domain.ErrUnknownSlot, slotID)
	}
	item := s.idx.Get(in.ItemID)
	if item == nil {
		return nil, fmt.Errorf("%w: %s", domain.ErrNotFound, in.ItemID)
	}
	if !selected(s.builder.Selected(slotID), item.ID) {
		if !s.builder.Eligible(item) {
			return nil, fmt.Errorf("%w: %s (%s)", domain.ErrItemUnavailable, item.ID, item.Status)
		}
		if !slot.Accepts(item) {
			return nil, fmt.Errorf("%w: %s no corresponde al slot %s", domain.ErrInvalidInput, item.Name, slot.Label)
		}
		if v := compat.Check(slot.ID, item, s.builder.Context()); !v.Compatible {
			return nil, fmt.Errorf("%w: %s", domain.ErrIncompatible, v.Reason)
		}
	}
	if err := s.builder.Toggle(slotID, item); err != nil {
		return nil, err
	}
	if err := uc.persist(ctx, s); err != nil {
		return nil, err
	}
	return uc.draftResponse(s), nil
}

// Candidates ítems elegibles y compatibles para el slot, filtrados por texto libre.
func (uc *BuildUseCase) Candidates(ctx context.Context, id, slotID, query string) (*dto.CandidatesResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	c, err := s.builder.Candidates(slotID, s.catalog, query)
	if err != nil {
		return nil, err
	}
	return &dto.CandidatesResponse{
		Slot:               slotID,
		Items:              inventory.ToItemResponses(c.Items),
		HiddenIncompatible: c.HiddenIncompatible,
		Reasons:            c.Rejected,
	}, nil
}

// SaveDraft valida el borrador, ensambla (o reensambla) el compuesto y descarta el borrador.
func (uc *BuildUseCase) SaveDraft(ctx context.Context, id string) (*dto.OperationResponse, error) {
	s, err := uc.load(ctx, id)
	if err != nil {
		return nil, err
	}
	if err := s.builder.Validate(); err != nil {
		inventory.Record(uc.metrics, "save_draft", err, 0)
		return nil, err
	}
	selection := s.builder.Flatten()
	ids := make([]string, 0, len(selection))
	for _, it := range selection {
		ids = append(ids, it.ID)
	}
	op := "assemble"
	if s.builder.EditingID() != "" {
		op = "edit"
	}
	resp, err := uc.assemble(ctx, op, s.builder.Name(), ids, s.builder.EditingID(), composition.KindPC)
	if err != nil {
		return nil, err
	}
	if err := uc.drafts.Delete(ctx, id); err != nil {
		uc.log.Warn().Err(err).Str("draft_id", id).Msg("no se pudo borrar el borrador guardado")
	}
	return resp, nil
}

func (uc *BuildUseCase) load(ctx context.Context, id string) (*session, error) {
	d, err := uc.drafts.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if d == nil {
		return nil, domain.ErrNotFound
	}
	catalog, err := uc.repo.Snapshot(ctx)
	if err != nil {
		return nil, err
	}
	idx := composition.NewIndex(catalog)
	b := build.Restore(uc.slots, uc.cfg.Options, *d, idx.Get)
	return &session{id: d.ID, builder: b, idx: idx, catalog: catalog}, nil
}

func (uc *BuildUseCase) persist(ctx context.Context, s *session) error {
	if err := uc.drafts.Save(ctx, s.builder.Snapshot(s.id, uc.now()), uc.cfg.DraftTTL); err != nil {
		return fmt.Errorf("save draft: %w", err)
	}
	return nil
}

func (uc *BuildUseCase) draftResponse(s *session) *dto.DraftResponse {
	b := s.builder
	resp := &dto.DraftResponse{
		ID:              s.id,
		EditingID:       b.EditingID(),
		Name:            b.Name(),
		NameEdited:      b.NameEdited(),
		Slots:           make([]dto.DraftSlotResponse, 0, len(b.Slots())),
		Total:           b.Total(),
		MissingRequired: b.MissingRequired(),
		UpdatedAt:       uc.now(),
	}
	for _, slot := range b.Slots() {
		resp.Slots = append(resp.Slots, dto.DraftSlotResponse{
			ID:       slot.ID,
			Label:    slot.Label,
			Required: slot.Required,
			Multiple: slot.Multiple,
			Items:    inventory.ToItemResponses(b.Selected(slot.ID)),
		})
	}
	return resp
}

func selected(items []*entity.InventoryItem, id string) bool {
	for _, it := range items {
		if it.ID == id {
			return true
		}
	}
	return false
}
