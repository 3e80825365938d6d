package models

import "time"

type Booking struct {
	ID uint `gorm:"primaryKey" json:"id"`

	// Public reference handed to clients instead of the numeric key.
	Code string `gorm:"size:36;uniqueIndex;not null" json:"code"`

	// One waiting booking per (user, shop); the partial index leaves finished
	// rows out so history never blocks a re-join.
	UserID uint `gorm:"index:idx_bookings_one_waiting,unique,where:status = 'waiting'" json:"user_id"`
	User   User `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	ShopID uint `gorm:"index:idx_bookings_one_waiting,unique,where:status = 'waiting'" json:"shop_id"`
	Shop   Shop `gorm:"constraint:OnUpdate:CASCADE,OnDelete:SET NULL;" json:"-"`

	Service string `gorm:"size:100;not null" json:"service"`

	Status string `gorm:"size:20;default:'waiting'" json:"status"`

	JoinedAt time.Time `gorm:"index" json:"joined_at"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}
