package model

import "time"

type OrderStatus string

const (
	OrderStatusPending   OrderStatus = "pending"
	OrderStatusConfirmed OrderStatus = "confirmed"
	OrderStatusCompleted OrderStatus = "completed"
	OrderStatusCancelled OrderStatus = "cancelled"
)

func (s OrderStatus) Valid() bool {
	switch s {
	case OrderStatusPending, OrderStatusConfirmed, OrderStatusCompleted, OrderStatusCancelled:
		return true
	}
	return false
}

// completed / cancelled は台帳的に終端。以降このOrder起因の調整は発生しない。
func (s OrderStatus) Terminal() bool {
	return s == OrderStatusCompleted || s == OrderStatusCancelled
}

type Order struct {
	ID              string      `gorm:"type:varchar(36);primaryKey" json:"id"`
	CustomerName    string      `gorm:"type:varchar(255);not null" json:"customerName"`
	CustomerContact string      `gorm:"type:varchar(255)" json:"customerContact,omitempty"`
	OrderDate       time.Time   `gorm:"not null;index" json:"orderDate"`
	PickupDate      time.Time   `gorm:"not null;index" json:"pickupDate"`
	Status          OrderStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	Items           []OrderItem `gorm:"foreignKey:OrderID" json:"items"`
	TotalPrice      float64     `gorm:"not null" json:"total_price"`
}
