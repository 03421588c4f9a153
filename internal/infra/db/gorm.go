package db

import (
	"gorm.io/driver/postgres"
	"gorm.io/gorm"

	"portal/internal/domain/model"
)

// Connect はDATABASE_URLのDSNで接続して *gorm.DB を返す。
func Connect(dsn string) (*gorm.DB, error) {
	return gorm.Open(postgres.Open(dsn), &gorm.Config{})
}

// Migrate は永続ストア利用時にスキーマを揃える。
func Migrate(gormDB *gorm.DB) error {
	return gormDB.AutoMigrate(
		&model.InventoryBatch{},
		&model.AdjustmentLog{},
		&model.Order{},
		&model.OrderItem{},
		&model.CropVariety{},
		&model.TrayPlanting{},
		&model.Harvest{},
		&model.Notification{},
	)
}
