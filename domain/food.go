package domain

import (
	"time"
)

type Food struct {
	ID          uint      `gorm:"primaryKey" json:"id"`
	Name        string    `gorm:"column:name;type:text;not null" json:"name"`
	Description string    `gorm:"column:description;type:text" json:"description"`
	Price       float64   `gorm:"column:price;type:numeric" json:"price"`
	Category    string    `gorm:"column:category;type:text" json:"category"`
	ImageURL    string    `gorm:"column:image_url;type:text" json:"image_url"`
	IsAvailable bool      `gorm:"column:is_available;default:true" json:"is_available"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

func (Food) TableName() string {
	return "foods"
}

// FoodFilter is the catalog search filter. Every field is optional; the
// ones that are set compose with AND semantics.
type FoodFilter struct {
	Query    string
	Category string
	MinPrice *float64
	MaxPrice *float64
}
