package models

import "time"

type Review struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint `gorm:"index" json:"shop_id"`
	UserID uint `json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	// Set when the review came out of a served booking.
	BookingID *uint `json:"booking_id,omitempty"`

	Rating  int    `gorm:"not null" json:"rating"`
	Comment string `gorm:"size:500" json:"comment"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
