package ledger

import "time"

// Record is a single expense as held in ledger state. ID is assigned by the
// remote store on creation and stays empty for a record not yet persisted.
type Record struct {
	ID         string    `json:"id"`
	Name       string    `json:"name"`
	Category   string    `json:"category"`
	Amount     float64   `json:"amount"`
	OccurredAt time.Time `json:"occurred_at"`
	Note       string    `json:"note,omitempty"`
	CreatedAt  time.Time `json:"created_at"`
}

// Patch carries the editable fields of a record. OccurredAt and CreatedAt are
// deliberately absent: an edit never moves an expense in time.
type Patch struct {
	Name     string
	Category string
	Amount   float64
	Note     string
}

// SuggestedCategories is the fixed set offered when adding an expense.
// It is a suggestion, not a constraint: records may carry any non-empty label.
var SuggestedCategories = []string{
	"Alimentación",
	"Transporte",
	"Entretenimiento",
	"Salud",
	"Educación",
	"Servicios",
	"Hogar",
	"Ropa",
	"Tecnología",
	"Otros",
}
