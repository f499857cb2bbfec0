package services

import (
	"strings"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type RoomService struct {
	DB *gorm.DB
}

func NewRoomService(db *gorm.DB) *RoomService {
	return &RoomService{DB: db}
}

type RoomFilter struct {
	HotelID     uint
	Status      models.RoomStatus
	MinCapacity int
	MaxPrice    float64
}

type RoomPatch struct {
	RoomNumber *string            `json:"roomNumber"`
	Type       *string            `json:"type"`
	Price      *float64           `json:"price"`
	Capacity   *int               `json:"capacity"`
	Status     *models.RoomStatus `json:"status"`
}

func validateRoom(r *models.Room) error {
	r.RoomNumber = strings.TrimSpace(r.RoomNumber)
	r.Type = strings.TrimSpace(r.Type)
	switch {
	case r.HotelID == 0:
		return invalidf("hotelId is required")
	case r.RoomNumber == "":
		return invalidf("room number is required")
	case r.Type == "":
		return invalidf("room type is required")
	case r.Price < 0:
		return invalidf("price must not be negative")
	case r.Capacity <= 0:
		return invalidf("capacity must be positive")
	}
	if r.Status != "" && !r.Status.Valid() {
		return invalidf("room status %q is not one of available, booked", r.Status)
	}
	return nil
}

// Create inserts the room; an empty status takes the column default.
func (s *RoomService) Create(r *models.Room) error {
	if err := validateRoom(r); err != nil {
		return err
	}
	return translateError(s.DB.Create(r).Error)
}

func (s *RoomService) GetByID(id uint) (models.Room, error) {
	var r models.Room
	err := s.DB.First(&r, id).Error
	return r, translateError(err)
}

func (s *RoomService) List(f RoomFilter) ([]models.Room, error) {
	q := s.DB.Order("id")
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	if f.MinCapacity > 0 {
		q = q.Where("capacity >= ?", f.MinCapacity)
	}
	if f.MaxPrice > 0 {
		q = q.Where("price <= ?", f.MaxPrice)
	}
	var out []models.Room
	err := q.Find(&out).Error
	return out, translateError(err)
}

func (s *RoomService) Update(id uint, p RoomPatch) (models.Room, error) {
	updates := map[string]interface{}{}
	if p.RoomNumber != nil {
		if strings.TrimSpace(*p.RoomNumber) == "" {
			return models.Room{}, invalidf("room number is required")
		}
		updates["room_number"] = strings.TrimSpace(*p.RoomNumber)
	}
	if p.Type != nil {
		if strings.TrimSpace(*p.Type) == "" {
			return models.Room{}, invalidf("room type is required")
		}
		updates["type"] = strings.TrimSpace(*p.Type)
	}
	if p.Price != nil {
		if *p.Price < 0 {
			return models.Room{}, invalidf("price must not be negative")
		}
		updates["price"] = *p.Price
	}
	if p.Capacity != nil {
		if *p.Capacity <= 0 {
			return models.Room{}, invalidf("capacity must be positive")
		}
		updates["capacity"] = *p.Capacity
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return models.Room{}, invalidf("room status %q is not one of available, booked", *p.Status)
		}
		updates["status"] = *p.Status
	}
	return applyUpdates[models.Room](s.DB, id, updates)
}

// Delete removes the room; its bookings and their payments go with it.
func (s *RoomService) Delete(id uint) error {
	return deleteByID(s.DB, &models.Room{}, id)
}
