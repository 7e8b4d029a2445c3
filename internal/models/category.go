package models

// CategoryKind classifies a category as income or expense.
type CategoryKind string

const (
	CategoryKindIncome  CategoryKind = "income"
	CategoryKindExpense CategoryKind = "expense"
)

// Valid reports whether the kind is one of the known values.
func (k CategoryKind) Valid() bool {
	return k == CategoryKindIncome || k == CategoryKindExpense
}

// Category is a labeled income/expense classification shared across events.
// (Name, Kind) acts as a natural key: duplicates are rejected by the service
// layer, while storage only enforces uniqueness of the id.
type Category struct {
	Base
	Name  string       `gorm:"size:100;not null" json:"name"`
	Kind  CategoryKind `gorm:"size:10;not null" json:"kind"`
	Color string       `gorm:"size:7;not null" json:"color"`

	// Relationships
	Transactions []Transaction `gorm:"foreignKey:CategoryID" json:"transactions,omitempty"`
}
