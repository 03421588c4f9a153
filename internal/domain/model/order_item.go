package model

// 注文明細。BatchIDで特定の在庫バッチを参照する（所有はしない）。
type OrderItem struct {
	ID           string  `gorm:"type:varchar(36);primaryKey" json:"id"`
	OrderID      string  `gorm:"type:varchar(36);not null;index" json:"orderId"`
	BatchID      string  `gorm:"type:varchar(36);not null;index" json:"inventoryItemId"`
	Variety      string  `gorm:"type:varchar(100);not null" json:"variety"`
	Quantity     int     `gorm:"not null" json:"quantity"`
	PricePerTray float64 `gorm:"not null" json:"price_per_tray"`
}
