// Package models defines the persistent entities.
package models

import (
	"time"
)

// Measurement is one stored power/energy sample. Rows are append-only:
// they are written once by ingestion or backfill and never updated, only
// removed by the retention sweep.
type Measurement struct {
	ID uint `gorm:"primaryKey;autoIncrement" json:"id"`
	// PowerWatts is the instantaneous reading at Timestamp. Nullable for
	// compatibility with early schema variants that tracked energy only.
	PowerWatts *float64 `gorm:"column:power_watts" json:"power_watts"`
	// EnergyKWh is the energy attributed to this sample, computed once at
	// ingestion from PowerWatts and the nominal sampling interval. It is
	// never recomputed from neighboring samples.
	EnergyKWh *float64  `gorm:"column:energy_kwh" json:"energy_kwh"`
	Timestamp time.Time `gorm:"index;not null" json:"timestamp"`
}

// TableName keeps the table name stable regardless of gorm pluralization rules.
func (Measurement) TableName() string {
	return "measurements"
}
