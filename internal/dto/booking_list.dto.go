package dto

import "time"

type BookingListDTO struct {
	ID       uint      `json:"id"`
	Code     string    `json:"code"`
	ShopID   uint      `json:"shop_id"`
	ShopName string    `json:"shop_name"`
	Service  string    `json:"service"`
	Status   string    `json:"status"`
	JoinedAt time.Time `json:"joined_at"`
}
