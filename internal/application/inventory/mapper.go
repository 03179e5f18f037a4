package inventory

import (
	"github.com/jhoicas/inventario-hardware/internal/application/dto"
	"github.com/jhoicas/inventario-hardware/internal/domain/entity"
)

// ToItemResponse convierte la entidad a su DTO de salida.
func ToItemResponse(it *entity.InventoryItem) dto.ItemResponse {
	return dto.ItemResponse{
		ID:                it.ID,
		Name:              it.Name,
		Category:          it.Category,
		SubCategory:       it.SubCategory,
		BuyPrice:          it.BuyPrice,
		BuyDate:           it.BuyDate,
		SellPrice:         it.SellPrice,
		SellDate:          it.SellDate,
		Profit:            it.Profit,
		FeeAmount:         it.FeeAmount,
		PaymentType:       it.PaymentType,
		PlatformSold:      it.PlatformSold,
		Status:            string(it.Status),
		IsDefective:       it.IsDefective,
		IsDraft:           it.IsDraft,
		Specs:             it.Specs,
		IsPC:              it.IsPC,
		IsBundle:          it.IsBundle,
		ComponentIDs:      it.ComponentIDs,
		ParentContainerID: it.ParentContainerID,
		TradedFromID:      it.TradedFromID,
		TradedForIDs:      it.TradedForIDs,
		CashOnTop:         it.CashOnTop,
		Notes:             it.Notes,
		CreatedAt:         it.CreatedAt,
		UpdatedAt:         it.UpdatedAt,
	}
}

// ToItemResponses convierte una lista (nunca devuelve nil).
func ToItemResponses(items []*entity.InventoryItem) []dto.ItemResponse {
	out := make([]dto.ItemResponse, 0, len(items))
	for _, it := range items {
		out = append(out, ToItemResponse(it))
	}
	return out
}

// ToOperationResponse arma la respuesta de una operación que ya se persistió.
func ToOperationResponse(primary *entity.InventoryItem, cs entity.ChangeSet) *dto.OperationResponse {
	resp := &dto.OperationResponse{Affected: []dto.ItemResponse{}, DeletedIDs: cs.Deleted}
	if primary != nil {
		p := ToItemResponse(primary)
		resp.Item = &p
	}
	for _, list := range [][]*entity.InventoryItem{cs.Created, cs.Updated} {
		for _, it := range list {
			if primary != nil && it.ID == primary.ID {
				continue
			}
			resp.Affected = append(resp.Affected, ToItemResponse(it))
		}
	}
	return resp
}
