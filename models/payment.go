package models

import "time"

const PaymentPaid = "paid"

type Payment struct {
	ID        uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	BookingID uint    `gorm:"column:booking_id;not null;index" json:"bookingId"`
	Amount    float64 `gorm:"not null" json:"amount"`
	Method    string  `gorm:"size:50;not null" json:"method"` // card, cash, ...
	Status    string  `gorm:"size:50;default:paid" json:"status"`

	PaidAt time.Time `gorm:"column:date;autoCreateTime;default:CURRENT_TIMESTAMP" json:"date"`
}
