package session

import (
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
)

// ExpenseForm is the raw user input of the add/edit flows. Amount arrives as
// text straight from the input field and is parsed here; name, category and
// note are trimmed before anything else sees them.
type ExpenseForm struct {
	Name       string     `json:"name"`
	Category   string     `json:"category"`
	Amount     string     `json:"amount"`
	Note       string     `json:"note"`
	OccurredAt *time.Time `json:"occurred_at,omitempty"`
}

func (f ExpenseForm) parseAmount() (float64, error) {
	amount, err := strconv.ParseFloat(strings.TrimSpace(f.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return 0, internal.ErrInvalidAmount
	}
	return amount, nil
}

// ToRecord validates the form and builds a record ready for persistence.
// OccurredAt defaults to now when the form carries no explicit date.
func (f ExpenseForm) ToRecord(now time.Time) (ledger.Record, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ledger.Record{}, internal.ErrEmptyName
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return ledger.Record{}, internal.ErrEmptyCategory
	}
	amount, err := f.parseAmount()
	if err != nil {
		return ledger.Record{}, err
	}

	occurredAt := now
	if f.OccurredAt != nil {
		occurredAt = *f.OccurredAt
	}

	return ledger.Record{
		Name:       name,
		Category:   category,
		Amount:     amount,
		OccurredAt: occurredAt,
		Note:       strings.TrimSpace(f.Note),
		CreatedAt:  now,
	}, nil
}

// ToPatch validates the form's editable fields. Any OccurredAt in the form
// is ignored: edits never move an expense in time.
func (f ExpenseForm) ToPatch() (ledger.Patch, error) {
	name := strings.TrimSpace(f.Name)
	if name == "" {
		return ledger.Patch{}, internal.ErrEmptyName
	}
	category := strings.TrimSpace(f.Category)
	if category == "" {
		return ledger.Patch{}, internal.ErrEmptyCategory
	}
	amount, err := f.parseAmount()
	if err != nil {
		return ledger.Patch{}, err
	}

	return ledger.Patch{
		Name:     name,
		Category: category,
		Amount:   amount,
		Note:     strings.TrimSpace(f.Note),
	}, nil
}

// SetFilterDTO selects a category filter; a null category clears it.
type SetFilterDTO struct {
	Category *string `json:"category"`
}
