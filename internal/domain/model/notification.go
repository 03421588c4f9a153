package model

import "time"

type NotificationType string

const (
	NotificationTypeAlert NotificationType = "alert"
	NotificationTypeInfo  NotificationType = "info"
)

// アプリ内通知。低在庫アラートなど。
type Notification struct {
	ID        string           `gorm:"type:varchar(36);primaryKey" json:"id"`
	Message   string           `gorm:"type:varchar(500);not null" json:"message"`
	Type      NotificationType `gorm:"type:varchar(20);not null" json:"type"`
	Timestamp time.Time        `gorm:"not null;index" json:"timestamp"`
	IsRead    bool             `gorm:"not null;default:false" json:"is_read"`
}
