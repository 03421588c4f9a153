package model

import "time"

type PlantingStatus string

const (
	PlantingStatusPlanted   PlantingStatus = "planted"
	PlantingStatusGrowing   PlantingStatus = "growing"
	PlantingStatusReady     PlantingStatus = "ready"
	PlantingStatusHarvested PlantingStatus = "harvested"
	PlantingStatusFailed    PlantingStatus = "failed"
)

// 育成中トレイ。状態は単純なフィールド更新のみ（競合する書き手はいない）。
type TrayPlanting struct {
	ID                  int64          `gorm:"primaryKey;autoIncrement" json:"id"`
	VarietyID           int64          `gorm:"not null;index" json:"variety_id"`
	PlantDate           time.Time      `gorm:"not null" json:"plant_date"`
	ExpectedHarvestDate time.Time      `gorm:"not null;index" json:"expected_harvest_date"`
	Status              PlantingStatus `gorm:"type:varchar(20);not null;index" json:"status"`
	TrayCount           int            `gorm:"not null;default:1" json:"tray_count"`
}
