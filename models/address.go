package models

import (
	"time"

	"gorm.io/gorm"
)

// Address represents a customer's saved service address
type Address struct {
	ID     uint `json:"id" gorm:"primaryKey"`
	UserID uint `json:"user_id" gorm:"not null;index"`
	User   User `json:"user,omitempty" gorm:"foreignKey:UserID"`

	Label       string   `json:"label" gorm:"type:varchar(50)"`
	AddressLine string   `json:"address_line" gorm:"type:text;not null"`
	City        string   `json:"city" gorm:"type:varchar(100)"`
	LocationLat *float64 `json:"location_lat" gorm:"type:decimal(10,8)"`
	LocationLng *float64 `json:"location_lng" gorm:"type:decimal(11,8)"`
	IsDefault   bool     `json:"is_default" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"deleted_at,omitempty" gorm:"index"`
}

// TableName specifies the table name for the Address model
func (Address) TableName() string {
	return "addresses"
}

// AddressRequest represents the request structure for creating or updating an address
type AddressRequest struct {
	Label       string   `json:"label"`
	AddressLine string   `json:"address_line" binding:"required"`
	City        string   `json:"city"`
	LocationLat *float64 `json:"location_lat"`
	LocationLng *float64 `json:"location_lng"`
	IsDefault   bool     `json:"is_default"`
}
