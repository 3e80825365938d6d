package dto

import "time"

// QueueEntryDTO is one row of a barber's live queue view.
type QueueEntryDTO struct {
	BookingID            uint      `json:"booking_id"`
	Code                 string    `json:"code"`
	CustomerName         string    `json:"customer_name"`
	CustomerPhone        string    `json:"customer_phone"`
	Service              string    `json:"service"`
	JoinedAt             time.Time `json:"joined_at"`
	Position             int       `json:"position"`
	EstimatedWaitMinutes int       `json:"estimated_wait_minutes"`
}
