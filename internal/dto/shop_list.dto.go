package dto

import "gorm.io/datatypes"

type ShopListDTO struct {
	ID          uint           `json:"id"`
	Name        string         `json:"name"`
	Category    string         `json:"category"`
	Area        string         `json:"area"`
	Address     string         `json:"address"`
	LocationURL string         `json:"location_url"`
	Services    datatypes.JSON `json:"services"`
	PhotoURL    string         `json:"photo_url"`
	Rating      float64        `json:"rating"`
	ReviewCount int            `json:"review_count"`
	QueueLength int            `json:"queue_length"`
}
