package models

import "time"

// UserPatch là các trường admin được phép sửa; nil nghĩa là giữ nguyên
type UserPatch struct {
	Email    *string `json:"email" validate:"omitempty,email"`
	Name     *string `json:"name" validate:"omitempty,min=1,max=100"`
	Role     *string `json:"role" validate:"omitempty,oneof=guest manager admin"`
	Password *string `json:"password" validate:"omitempty,min=6"`
}

// Apply gộp patch vào user. Password phải được hash trước khi gọi.
func (p UserPatch) Apply(u *User) {
	if p.Email != nil {
		u.Email = *p.Email
	}
	if p.Name != nil {
		u.Name = *p.Name
	}
	if p.Role != nil {
		u.Role = *p.Role
	}
	if p.Password != nil {
		u.Password = *p.Password
	}
	u.UpdatedAt = time.Now()
}

type HotelPatch struct {
	Name        *string  `json:"name" validate:"omitempty,min=1,max=200"`
	Location    *string  `json:"location" validate:"omitempty,min=1"`
	Description *string  `json:"description"`
	Price       *float64 `json:"price" validate:"omitempty,gte=0"`
	PriceRange  *string  `json:"priceRange"`
	Rating      *float64 `json:"rating" validate:"omitempty,gte=0,lte=5"`
	Image       *string  `json:"image" validate:"omitempty,url"`
}

func (p HotelPatch) Apply(h *Hotel) {
	if p.Name != nil {
		h.Name = *p.Name
	}
	if p.Location != nil {
		h.Location = *p.Location
	}
	if p.Description != nil {
		h.Description = *p.Description
	}
	if p.Price != nil {
		h.Price = *p.Price
	}
	if p.PriceRange != nil {
		h.PriceRange = *p.PriceRange
	}
	if p.Rating != nil {
		h.Rating = *p.Rating
	}
	if p.Image != nil {
		h.Image = *p.Image
	}
	h.UpdatedAt = time.Now()
}

type RoomPatch struct {
	Type      *string  `json:"type" validate:"omitempty,min=1"`
	Price     *float64 `json:"price" validate:"omitempty,gte=0"`
	Capacity  *int     `json:"capacity" validate:"omitempty,gte=1"`
	Available *bool    `json:"available"`
}

func (p RoomPatch) Apply(r *Room) {
	if p.Type != nil {
		r.Type = *p.Type
	}
	if p.Price != nil {
		r.Price = *p.Price
	}
	if p.Capacity != nil {
		r.Capacity = *p.Capacity
	}
	if p.Available != nil {
		r.Available = *p.Available
	}
}
