package dto

import "hotelbook/response"

// PageQuery là tham số phân trang trên query string
type PageQuery struct {
	Page  int `form:"page" binding:"omitempty,min=0"`
	Limit int `form:"limit" binding:"omitempty,min=0,max=100"`
}

// PaginatedResponse là struct chung cho các response có phân trang
type PaginatedResponse[T any] struct {
	Data       T                   `json:"data"`
	Pagination response.Pagination `json:"pagination"`
}

// Paginate cắt một trang từ danh sách đã lọc. Limit = 0 trả về toàn bộ.
func Paginate[T any](items []T, q PageQuery) []T {
	if q.Limit <= 0 {
		return items
	}
	start := q.Page * q.Limit
	if start >= len(items) {
		return []T{}
	}
	end := start + q.Limit
	if end > len(items) {
		end = len(items)
	}
	return items[start:end]
}
