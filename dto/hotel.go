package dto

import "hotelbook/models"

type RoomRequest struct {
	Type      string  `json:"type" binding:"required"`
	Price     float64 `json:"price" binding:"gte=0"`
	Capacity  int     `json:"capacity" binding:"required,gte=1"`
	Available *bool   `json:"available"`
}

// ToModel mặc định available = true khi client không gửi
func (r RoomRequest) ToModel() models.Room {
	available := true
	if r.Available != nil {
		available = *r.Available
	}
	return models.Room{
		Type:      r.Type,
		Price:     r.Price,
		Capacity:  r.Capacity,
		Available: available,
	}
}

type CreateHotelRequest struct {
	Name        string        `json:"name" binding:"required"`
	Location    string        `json:"location" binding:"required"`
	Description string        `json:"description"`
	Price       float64       `json:"price" binding:"gte=0"`
	PriceRange  string        `json:"priceRange"`
	Rating      float64       `json:"rating" binding:"gte=0,lte=5"`
	Image       string        `json:"image" binding:"omitempty,url"`
	ManagerID   *int64        `json:"managerId"`
	Rooms       []RoomRequest `json:"rooms" binding:"dive"`
}

func (r CreateHotelRequest) ToModel() models.Hotel {
	rooms := make([]models.Room, 0, len(r.Rooms))
	for _, room := range r.Rooms {
		rooms = append(rooms, room.ToModel())
	}
	return models.Hotel{
		Name:        r.Name,
		Location:    r.Location,
		Description: r.Description,
		Price:       r.Price,
		PriceRange:  r.PriceRange,
		Rating:      r.Rating,
		Image:       r.Image,
		Rooms:       rooms,
	}
}

type AssignManagerRequest struct {
	ManagerID int64 `json:"managerId" binding:"required"`
}

type HotelSearchQuery struct {
	Q string `form:"q"`
}
