package postgres

import (
	"context"
	"time"

	expenseDatamodel "github.com/FabricioUDB/control-gastos/internal/core/datamodel/expense"
	"github.com/FabricioUDB/control-gastos/internal"
	"github.com/FabricioUDB/control-gastos/internal/ledger"
	"github.com/FabricioUDB/control-gastos/internal/session"
	"github.com/google/uuid"
	"gorm.io/gorm"
)

// LedgerRepository implements session.RemoteLedger using GORM. It plays the
// managed-store role: every operation is keyed by user identity and records
// get their ID here, on create.
type LedgerRepository struct {
	db *gorm.DB
}

func NewLedgerRepository(db *gorm.DB) session.RemoteLedger {
	return &LedgerRepository{db: db}
}

// LoadPeriod returns the user's records inside the inclusive [start, end]
// range, newest first.
func (r *LedgerRepository) LoadPeriod(ctx context.Context, userID string, start, end time.Time) ([]ledger.Record, error) {
	var rows []*expenseDatamodel.Expense
	err := r.db.WithContext(ctx).
		Where("user_id = ? AND occurred_at BETWEEN ? AND ?", userID, start, end).
		Order("occurred_at DESC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}

	records := make([]ledger.Record, len(rows))
	for i, row := range rows {
		records[i] = toRecord(row)
	}
	return records, nil
}

// Create persists the record and returns its assigned ID.
func (r *LedgerRepository) Create(ctx context.Context, userID string, record ledger.Record) (string, error) {
	row := &expenseDatamodel.Expense{
		ID:         uuid.NewString(),
		UserID:     userID,
		Name:       record.Name,
		Category:   record.Category,
		Amount:     record.Amount,
		OccurredAt: record.OccurredAt,
		Note:       record.Note,
		CreatedAt:  record.CreatedAt,
	}
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		return "", err
	}
	return row.ID, nil
}

// Update patches the mutable fields only; occurred_at and created_at stay
// as first written.
func (r *LedgerRepository) Update(ctx context.Context, userID, id string, patch ledger.Patch) error {
	result := r.db.WithContext(ctx).
		Model(&expenseDatamodel.Expense{}).
		Where("id = ? AND user_id = ?", id, userID).
		Updates(map[string]interface{}{
			"name":     patch.Name,
			"category": patch.Category,
			"amount":   patch.Amount,
			"note":     patch.Note,
		})
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return internal.ErrRecordNotFound
	}
	return nil
}

// Delete removes the record. Deleting an already-absent ID succeeds, so
// repeated delete intents stay idempotent.
func (r *LedgerRepository) Delete(ctx context.Context, userID, id string) error {
	return r.db.WithContext(ctx).
		Where("id = ? AND user_id = ?", id, userID).
		Delete(&expenseDatamodel.Expense{}).Error
}

func toRecord(row *expenseDatamodel.Expense) ledger.Record {
	return ledger.Record{
		ID:         row.ID,
		Name:       row.Name,
		Category:   row.Category,
		Amount:     row.Amount,
		OccurredAt: row.OccurredAt,
		Note:       row.Note,
		CreatedAt:  row.CreatedAt,
	}
}
