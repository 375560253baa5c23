package models

// Room chỉ tồn tại bên trong danh sách rooms của một Hotel
type Room struct {
	ID        int64   `json:"id"`
	Type      string  `json:"type"`
	Price     float64 `json:"price"`
	Capacity  int     `json:"capacity"`
	Available bool    `json:"available"`
}
