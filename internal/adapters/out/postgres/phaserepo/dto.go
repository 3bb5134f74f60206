// Package phaserepo drives the order phase history. Each order keeps a chain
// of phase rows; at most one row per order is open at any time.
package phaserepo

import "time"

// OrderPhaseDTO represents one row of the order phase history. An open row
// has ClosedAt unset; transitions close it and append a fresh row.
type OrderPhaseDTO struct {
	ID            int64 `gorm:"primaryKey;autoIncrement"`
	OrderID       int64 `gorm:"index"`
	PhaseID       int
	CreatedUserID int64
	ClosedUserID  *int64
	CreatedAt     time.Time
	ClosedAt      *time.Time
}

// TableName specifies the database table name for phase-history rows.
// Overrides GORM's default naming convention to use "order_phases".
func (OrderPhaseDTO) TableName() string {
	return "order_phases"
}
