package models

import "time"

const (
	MinReviewRating = 1
	MaxReviewRating = 5
)

type Review struct {
	ID      uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	HotelID uint    `gorm:"column:hotel_id;not null;index" json:"hotelId"`
	UserID  uint    `gorm:"column:user_id;not null;index" json:"userId"`
	Rating  int     `gorm:"not null;check:rating BETWEEN 1 AND 5" json:"rating"`
	Comment *string `gorm:"type:text" json:"comment,omitempty"`

	CreatedAt time.Time `gorm:"default:CURRENT_TIMESTAMP" json:"createdAt"`
}
