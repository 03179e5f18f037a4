package entity

// ChangeSet es el lote de registros que produce una operación del motor.
// El llamador debe aplicarlo completo en una sola transacción.
type ChangeSet struct {
	Created []*InventoryItem
	Updated []*InventoryItem
	Deleted []string
}

// IsEmpty indica si el lote no contiene cambios.
func (cs ChangeSet) IsEmpty() bool {
	return len(cs.Created) == 0 && len(cs.Updated) == 0 && len(cs.Deleted) == 0
}

// Merge añade los cambios de other al lote.
func (cs *ChangeSet) Merge(other ChangeSet) {
	cs.Created = append(cs.Created, other.Created...)
	cs.Updated = append(cs.Updated, other.Updated...)
	cs.Deleted = append(cs.Deleted, other.Deleted...)
}
