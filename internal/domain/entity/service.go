package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Service represents a dental service offered by the clinic (cleaning, orthodontics, ...)
type Service struct {
	ID          int             `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string          `gorm:"type:varchar(255);not null" json:"name"`
	Description string          `gorm:"type:text" json:"description,omitempty"`
	Price       decimal.Decimal `gorm:"type:decimal(10,2);not null" json:"price"`
	ImageURL    string          `gorm:"type:varchar(500)" json:"image_url,omitempty"`
	CreatedAt   time.Time       `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt   time.Time       `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Service) TableName() string {
	return "servicios"
}
