package models

import (
	"time"

	"hotelbook/constants"
)

type User struct {
	ID        int64     `json:"id"`
	Email     string    `json:"email"`
	Password  string    `json:"password"`
	Name      string    `json:"name"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func (u User) EntityID() int64 { return u.ID }

func (u User) IsAdmin() bool { return u.Role == constants.RoleAdmin }

func (u User) IsManager() bool { return u.Role == constants.RoleManager }

// ValidRole kiểm tra role có thuộc guest/manager/admin không
func ValidRole(role string) bool {
	switch role {
	case constants.RoleGuest, constants.RoleManager, constants.RoleAdmin:
		return true
	}
	return false
}
