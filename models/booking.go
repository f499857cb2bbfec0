package models

import "gorm.io/datatypes"

type BookingStatus string

const (
	BookingPending   BookingStatus = "pending"
	BookingConfirmed BookingStatus = "confirmed"
	BookingCanceled  BookingStatus = "canceled"
)

func (s BookingStatus) Valid() bool {
	switch s {
	case BookingPending, BookingConfirmed, BookingCanceled:
		return true
	}
	return false
}

type Booking struct {
	ID       uint           `gorm:"primaryKey;autoIncrement" json:"id"`
	RoomID   uint           `gorm:"column:room_id;not null;index" json:"roomId"`
	UserID   uint           `gorm:"column:user_id;not null;index" json:"userId"`
	CheckIn  datatypes.Date `gorm:"column:check_in;not null" json:"checkIn"`
	CheckOut datatypes.Date `gorm:"column:check_out;not null" json:"checkOut"`
	Status   BookingStatus  `gorm:"size:20;default:pending;check:status IN ('pending', 'confirmed', 'canceled')" json:"status"`

	Payments []Payment `gorm:"foreignKey:BookingID;constraint:OnDelete:CASCADE" json:"payments,omitempty"`
}
