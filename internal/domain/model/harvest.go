package model

import "time"

type Harvest struct {
	ID           int64     `gorm:"primaryKey;autoIncrement" json:"id"`
	PlantingID   int64     `gorm:"not null;index" json:"planting_id"`
	HarvestDate  time.Time `gorm:"not null;index" json:"harvest_date"`
	ActualYield  float64   `gorm:"not null" json:"actual_yield"`
	QualityScore int       `gorm:"not null" json:"quality_score"`
}
