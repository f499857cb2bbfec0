package models

type RoomStatus string

const (
	RoomAvailable RoomStatus = "available"
	RoomBooked    RoomStatus = "booked"
)

func (s RoomStatus) Valid() bool {
	return s == RoomAvailable || s == RoomBooked
}

type Room struct {
	ID         uint       `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID    uint       `gorm:"column:hotel_id;not null;index" json:"hotelId"`
	RoomNumber string     `gorm:"column:room_number;size:50;not null" json:"roomNumber"`
	Type       string     `gorm:"size:50;not null" json:"type"` // single, double, suite...
	Price      float64    `gorm:"not null" json:"price"`
	Capacity   int        `gorm:"not null" json:"capacity"`
	Status     RoomStatus `gorm:"size:20;default:available;check:status IN ('available', 'booked')" json:"status"`

	Bookings []Booking `gorm:"foreignKey:RoomID;constraint:OnDelete:CASCADE" json:"bookings,omitempty"`
}
