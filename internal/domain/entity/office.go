package entity

import "time"

// Office represents a clinic office (consultorio)
type Office struct {
	ID        int       `gorm:"primaryKey;autoIncrement" json:"id"`
	Name      string    `gorm:"type:varchar(255);not null" json:"name"`
	Address   string    `gorm:"type:varchar(255);not null" json:"address"`
	Number    string    `gorm:"type:varchar(20);not null" json:"number"`
	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

func (Office) TableName() string {
	return "consultorios"
}

// FullAddress returns the display form "name - address".
func (o *Office) FullAddress() string {
	return o.Name + " - " + o.Address
}
