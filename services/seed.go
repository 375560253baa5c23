package services

import (
	"context"
	"time"

	"hotelbook/constants"
	"hotelbook/models"
	"hotelbook/store"
)

type seedAccount struct {
	id       int64
	email    string
	password string
	name     string
	role     string
}

var seedAccounts = []seedAccount{
	{1, "admin@hotel.com", "admin123", "Admin", constants.RoleAdmin},
	{2, "manager@hotel.com", "manager123", "Hotel Manager", constants.RoleManager},
	{3, "guest@hotel.com", "guest123", "Guest User", constants.RoleGuest},
}

func seedHotels(now time.Time) []models.Hotel {
	manager := int64(2)
	return []models.Hotel{
		{
			ID:          1,
			Name:        "Grand Plaza Hotel",
			Location:    "New York, NY",
			Description: "Luxury hotel in the heart of Manhattan",
			Price:       200,
			PriceRange:  "$200 - $500",
			Rating:      4.5,
			Image:       "https://images.unsplash.com/photo-1566073771259-6a8506099945",
			ManagerID:   &manager,
			Rooms: []models.Room{
				{ID: 101, Type: "Standard", Price: 200, Capacity: 2, Available: true},
				{ID: 102, Type: "Deluxe", Price: 350, Capacity: 3, Available: true},
				{ID: 103, Type: "Suite", Price: 500, Capacity: 4, Available: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          2,
			Name:        "Seaside Resort",
			Location:    "Miami, FL",
			Description: "Beachfront resort with ocean views",
			Price:       150,
			PriceRange:  "$150 - $400",
			Rating:      4.2,
			Image:       "https://images.unsplash.com/photo-1520250497591-112f2f40a3f4",
			Rooms: []models.Room{
				{ID: 201, Type: "Ocean View", Price: 150, Capacity: 2, Available: true},
				{ID: 202, Type: "Family Room", Price: 280, Capacity: 5, Available: true},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
		{
			ID:          3,
			Name:        "Mountain Lodge",
			Location:    "Aspen, CO",
			Description: "Cozy lodge close to the ski slopes",
			Price:       180,
			PriceRange:  "$180 - $320",
			Rating:      4.7,
			Image:       "https://images.unsplash.com/photo-1551882547-ff40c63fe5fa",
			Rooms: []models.Room{
				{ID: 301, Type: "Cabin", Price: 180, Capacity: 2, Available: true},
				{ID: 302, Type: "Chalet", Price: 320, Capacity: 6, Available: false},
			},
			CreatedAt: now,
			UpdatedAt: now,
		},
	}
}

// SeedStore ghi dữ liệu mẫu cho users, hotels, bookings nếu các key này
// chưa có. Gọi lại nhiều lần không ghi đè.
func SeedStore(ctx context.Context, s *store.Store, users *UserService) error {
	now := time.Now()
	accounts := make([]models.User, 0, len(seedAccounts))
	for _, a := range seedAccounts {
		hashed, err := users.HashPassword(a.password)
		if err != nil {
			return err
		}
		accounts = append(accounts, models.User{
			ID:        a.id,
			Email:     a.email,
			Password:  hashed,
			Name:      a.name,
			Role:      a.role,
			CreatedAt: now,
			UpdatedAt: now,
		})
	}
	return s.InitializeIfEmpty(ctx, []store.Seed{
		{Key: constants.KeyUsers, Value: accounts},
		{Key: constants.KeyHotels, Value: seedHotels(now)},
		{Key: constants.KeyBookings, Value: []models.Booking{}},
	})
}
