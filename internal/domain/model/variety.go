package model

// 栽培する品種のマスタデータ。
type CropVariety struct {
	ID                   int64   `gorm:"primaryKey;autoIncrement" json:"id"`
	Name                 string  `gorm:"type:varchar(100);not null;uniqueIndex" json:"name"`
	GrowCycleDays        int     `gorm:"not null" json:"grow_cycle_days"`
	ExpectedYieldPerTray float64 `gorm:"not null" json:"expected_yield_per_tray"`
}
