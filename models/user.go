package models

import "time"

type UserRole string

const (
	RoleAdmin    UserRole = "admin"
	RoleManager  UserRole = "manager"
	RoleCustomer UserRole = "customer"
)

// Valid reports whether r is one of the declared roles.
func (r UserRole) Valid() bool {
	switch r {
	case RoleAdmin, RoleManager, RoleCustomer:
		return true
	}
	return false
}

type User struct {
	ID    uint     `gorm:"primaryKey;autoIncrement" json:"id"`
	Name  string   `gorm:"size:255;not null" json:"name"`
	Email string   `gorm:"size:255;not null;uniqueIndex" json:"email"`
	Phone *string  `gorm:"size:50" json:"phone,omitempty"`
	Role  UserRole `gorm:"size:20;not null;default:customer;check:role IN ('admin', 'manager', 'customer')" json:"role"`

	// Set for managers only. Cleared by the database when the hotel goes away.
	HotelID *uint `gorm:"column:hotel_id;index" json:"hotelId,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`

	Bookings []Booking `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
	Reviews  []Review  `gorm:"foreignKey:UserID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
}
