package config

import (
	"fmt"
	"log"

	"gorm.io/gorm"

	"hotel-booking/models"
)

func strPtr(s string) *string { return &s }

// SeedDatabase inserts a demo hotel with rooms, a manager, an admin and a
// customer. It does nothing when any hotel already exists.
func SeedDatabase(db *gorm.DB) error {
	var hotelCount int64
	if err := db.Model(&models.Hotel{}).Count(&hotelCount).Error; err != nil {
		return fmt.Errorf("count hotels: %w", err)
	}
	if hotelCount > 0 {
		log.Println("Hotels already seeded")
		return nil
	}

	return db.Transaction(func(tx *gorm.DB) error {
		hotel := models.Hotel{
			Name:        "Seaside Inn",
			Location:    "Hua Hin",
			Description: strPtr("Small beachfront hotel"),
			Rooms: []models.Room{
				{RoomNumber: "101", Type: "single", Price: 1200, Capacity: 1},
				{RoomNumber: "102", Type: "double", Price: 1800, Capacity: 2},
				{RoomNumber: "201", Type: "suite", Price: 3500, Capacity: 4},
			},
		}
		if err := tx.Create(&hotel).Error; err != nil {
			return fmt.Errorf("create hotel: %w", err)
		}

		users := []models.User{
			{Name: "Admin User", Email: "admin@hotel.local", Role: models.RoleAdmin},
			{Name: "Seaside Manager", Email: "manager@hotel.local", Role: models.RoleManager, HotelID: &hotel.ID},
			{Name: "Demo Customer", Email: "customer@hotel.local", Role: models.RoleCustomer},
		}
		if err := tx.Create(&users).Error; err != nil {
			return fmt.Errorf("create users: %w", err)
		}

		log.Printf("Demo hotel %q seeded with %d rooms", hotel.Name, len(hotel.Rooms))
		return nil
	})
}
