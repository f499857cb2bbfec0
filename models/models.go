// Package models declares the hotel-booking tables as gorm models.
//
// Foreign keys live on the child tables; the ON DELETE action of each one is
// declared on the parent's has-many field, which is where gorm reads it from.
package models

// All returns the models in parent-to-child order, the order they must be
// migrated in.
func All() []interface{} {
	return []interface{}{
		&Hotel{},
		&User{},
		&Room{},
		&Booking{},
		&Payment{},
		&Review{},
	}
}

// TableNames lists the tables All creates, in the same order.
var TableNames = []string{"hotels", "users", "rooms", "bookings", "payments", "reviews"}
