package model

import "time"

// 調整ログ。追記専用で、更新も削除もしない。
// バッチが消えた後も監査のために履歴は残る。
type AdjustmentLog struct {
	ID        string    `gorm:"type:varchar(36);primaryKey" json:"id"`
	BatchID   string    `gorm:"type:varchar(36);not null;index" json:"batchId"`
	Delta     int       `gorm:"not null" json:"change"`
	Reason    string    `gorm:"type:varchar(255);not null" json:"reason"`
	Timestamp time.Time `gorm:"not null;index" json:"timestamp"`
	Actor     string    `gorm:"type:varchar(100);not null" json:"userId"`
}
