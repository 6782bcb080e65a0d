package models

import "time"

// EventKind determines the sign an event's amount contributes to its
// account balance: RECEITA adds, DESPESA subtracts.
type EventKind string

const (
	EventKindReceita EventKind = "RECEITA"
	EventKindDespesa EventKind = "DESPESA"
)

// Event is a single income or expense record in the ledger. Amount is
// always stored positive, in centavos; the kind carries the sign.
//
// Only events with Effective set count toward account balances and period
// aggregates. A non-effective event is pending or scheduled.
type Event struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Description string    `gorm:"not null" json:"description"`
	Amount      int64     `gorm:"not null" json:"amount"`
	Kind        EventKind `gorm:"not null;index" json:"kind"`
	Date        time.Time `gorm:"not null;index" json:"date"`
	AccountID   uint      `gorm:"not null;index" json:"account_id"`
	CategoryID  *uint     `gorm:"index" json:"category_id,omitempty"`
	Note        string    `json:"note,omitempty"`
	Effective   bool      `gorm:"not null;default:true" json:"effective"`
	CreatedAt   time.Time `json:"created_at"`
	Account     Account   `gorm:"foreignKey:AccountID;constraint:OnDelete:CASCADE" json:"account,omitempty"`
	Category    *Category `gorm:"foreignKey:CategoryID;constraint:OnDelete:SET NULL" json:"category,omitempty"`
}

// SignedAmount returns the amount with the sign implied by the kind.
// It does not consider the effective flag.
func (e *Event) SignedAmount() int64 {
	if e.Kind == EventKindDespesa {
		return -e.Amount
	}
	return e.Amount
}

// EffectiveDelta returns the event's contribution to its account balance:
// the signed amount when effective, zero otherwise.
func (e *Event) EffectiveDelta() int64 {
	if !e.Effective {
		return 0
	}
	return e.SignedAmount()
}
