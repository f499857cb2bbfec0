package models

type Hotel struct {
	ID          uint    `gorm:"primaryKey;autoIncrement" json:"id"`
	Name        string  `gorm:"size:255;not null" json:"name"`
	Location    string  `gorm:"size:255;not null" json:"location"`
	Description *string `gorm:"type:text" json:"description,omitempty"`
	Rating      float64 `gorm:"default:0" json:"rating"`
	Image       *string `gorm:"size:512" json:"image,omitempty"`

	Rooms    []Room   `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"rooms,omitempty"`
	Reviews  []Review `gorm:"foreignKey:HotelID;constraint:OnDelete:CASCADE" json:"reviews,omitempty"`
	Managers []User   `gorm:"foreignKey:HotelID;constraint:OnDelete:SET NULL" json:"managers,omitempty"`
}
