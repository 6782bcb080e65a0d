package models

import "time"

// Account is a named financial container (a bank account, a wallet, an
// investment pot). All amounts are stored in centavos.
//
// CurrentBalance is a cached value maintained by the event service: it must
// always equal InitialBalance plus the sum of signed amounts of all
// effective events referencing the account. Nothing else writes to it.
type Account struct {
	ID             uint        `gorm:"primaryKey" json:"id"`
	Name           string      `gorm:"not null" json:"name"`
	AccountTypeID  uint        `gorm:"not null;index" json:"account_type_id"`
	InitialBalance int64       `gorm:"not null;default:0" json:"initial_balance"`
	CurrentBalance int64       `gorm:"not null;default:0" json:"current_balance"`
	Color          string      `gorm:"default:'#4CAF50'" json:"color"`
	Icon           string      `gorm:"default:'account_balance_wallet'" json:"icon"`
	BankID         *string     `json:"bank_id,omitempty"`
	IncludeInTotal bool        `gorm:"not null;default:true" json:"include_in_total"`
	Active         bool        `gorm:"not null;default:true" json:"active"`
	CreatedAt      time.Time   `json:"created_at"`
	AccountType    AccountType `gorm:"foreignKey:AccountTypeID;constraint:OnDelete:RESTRICT" json:"account_type,omitempty"`
	Events         []Event     `gorm:"foreignKey:AccountID" json:"events,omitempty"`
}
