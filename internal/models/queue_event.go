package models

import "time"

// QueueEvent is an append-only record of queue activity per shop.
type QueueEvent struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ShopID uint   `gorm:"index" json:"shop_id"`
	UserID *uint  `json:"user_id"`
	Action string `gorm:"size:50;not null" json:"action"`

	Entity   string `gorm:"size:50" json:"entity"`
	EntityID *uint  `json:"entity_id"`
	Metadata string `gorm:"type:text" json:"metadata"`

	CreatedAt time.Time `json:"created_at"`
}
