package models

// AccountType is a user-extensible lookup for classifying accounts
// (checking, savings, wallet, and so on). A default set is seeded by the
// initial migration. Types referenced by accounts cannot be deleted.
type AccountType struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	Name        string `gorm:"not null" json:"name"`
	Description string `json:"description"`
	Active      bool   `gorm:"not null;default:true" json:"active"`
}
