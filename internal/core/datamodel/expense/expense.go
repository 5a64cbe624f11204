package expense

import "time"

// Expense is the stored shape of an expense record. IDs are opaque UUID
// strings assigned on create; occurred_at carries the date the expense is
// attributed to and is never changed by updates.
type Expense struct {
	ID         string    `gorm:"primaryKey;column:id"`
	UserID     string    `gorm:"column:user_id;not null;index:idx_user_occurred"`
	Name       string    `gorm:"column:name;not null"`
	Category   string    `gorm:"column:category;not null"`
	Amount     float64   `gorm:"column:amount;not null"`
	OccurredAt time.Time `gorm:"column:occurred_at;not null;index:idx_user_occurred"`
	Note       string    `gorm:"column:note"`
	CreatedAt  time.Time `gorm:"column:created_at"`
}

func (Expense) TableName() string {
	return "user_expenses"
}
