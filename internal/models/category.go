package models

// CategoryKind scopes a category to income or expense events.
type CategoryKind string

const (
	CategoryKindReceita CategoryKind = "RECEITA"
	CategoryKindDespesa CategoryKind = "DESPESA"
)

// Category labels events. Defaults per kind are seeded by the initial
// migration; users can add their own. Deleting a category leaves its events
// in place with a NULL category reference.
type Category struct {
	ID     uint         `gorm:"primaryKey" json:"id"`
	Name   string       `gorm:"not null" json:"name"`
	Kind   CategoryKind `gorm:"not null;index" json:"kind"`
	Icon   string       `gorm:"default:'category'" json:"icon"`
	Color  string       `gorm:"default:'#9E9E9E'" json:"color"`
	Active bool         `gorm:"not null;default:true" json:"active"`
}
