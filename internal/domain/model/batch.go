package model

import "time"

type BatchStatus string

const (
	BatchStatusInStorage BatchStatus = "in-storage"
	BatchStatusSold      BatchStatus = "sold"
	BatchStatusWaste     BatchStatus = "waste"
)

func (s BatchStatus) Valid() bool {
	switch s {
	case BatchStatusInStorage, BatchStatusSold, BatchStatusWaste:
		return true
	}
	return false
}

// 在庫バッチ。TrayCountは必ず台帳の調整を通して変わり、
// 調整ログのdelta合計と常に一致する。
type InventoryBatch struct {
	ID          string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	Variety     string      `gorm:"type:varchar(100);not null;index" json:"variety"`
	TrayCount   int         `gorm:"not null" json:"trayCount"`
	HarvestDate time.Time   `gorm:"not null;index" json:"harvestDate"`
	WeightKg    *float64    `json:"weightKg,omitempty"`
	Status      BatchStatus `gorm:"type:varchar(20);not null" json:"status"`
	CreatedAt   time.Time   `json:"-"`
	UpdatedAt   time.Time   `json:"-"`
}
