package services

import (
	"database/sql"
	"math"
	"strings"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type HotelService struct {
	DB *gorm.DB
}

func NewHotelService(db *gorm.DB) *HotelService {
	return &HotelService{DB: db}
}

type HotelFilter struct {
	Location string
}

type HotelPatch struct {
	Name        *string  `json:"name"`
	Location    *string  `json:"location"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

func validateHotel(h *models.Hotel) error {
	h.Name = strings.TrimSpace(h.Name)
	h.Location = strings.TrimSpace(h.Location)
	if h.Name == "" {
		return invalidf("hotel name is required")
	}
	if h.Location == "" {
		return invalidf("hotel location is required")
	}
	h.Description = trimPtr(h.Description)
	h.Image = trimPtr(h.Image)
	return validRating(h.Rating)
}

func validRating(r float64) error {
	if r < 0 || r > 5 || math.IsNaN(r) {
		return invalidf("hotel rating %v is outside 0..5", r)
	}
	return nil
}

// Create inserts the hotel. An explicit rating is stored as given; otherwise
// the column default (0) applies. Review writes recompute it afterwards.
func (s *HotelService) Create(h *models.Hotel) error {
	if err := validateHotel(h); err != nil {
		return err
	}
	return translateError(s.DB.Create(h).Error)
}

func (s *HotelService) GetByID(id uint) (models.Hotel, error) {
	var h models.Hotel
	err := s.DB.First(&h, id).Error
	return h, translateError(err)
}

func (s *HotelService) List(f HotelFilter) ([]models.Hotel, error) {
	q := s.DB.Order("id")
	if loc := strings.TrimSpace(f.Location); loc != "" {
		q = q.Where("location LIKE ?", "%"+loc+"%")
	}
	var out []models.Hotel
	err := q.Find(&out).Error
	return out, translateError(err)
}

func (s *HotelService) Update(id uint, p HotelPatch) (models.Hotel, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		if strings.TrimSpace(*p.Name) == "" {
			return models.Hotel{}, invalidf("hotel name is required")
		}
		updates["name"] = strings.TrimSpace(*p.Name)
	}
	if p.Location != nil {
		if strings.TrimSpace(*p.Location) == "" {
			return models.Hotel{}, invalidf("hotel location is required")
		}
		updates["location"] = strings.TrimSpace(*p.Location)
	}
	if p.Description != nil {
		updates["description"] = nullableText(*p.Description)
	}
	if p.Image != nil {
		updates["image"] = nullableText(*p.Image)
	}
	if p.Rating != nil {
		if err := validRating(*p.Rating); err != nil {
			return models.Hotel{}, err
		}
		updates["rating"] = *p.Rating
	}
	return applyUpdates[models.Hotel](s.DB, id, updates)
}

// Delete removes the hotel. The database cascades to its rooms (and their
// bookings and payments) and reviews, and clears hotel_id on its managers.
func (s *HotelService) Delete(id uint) error {
	return deleteByID(s.DB, &models.Hotel{}, id)
}

// RefreshRating recomputes hotels.rating as the mean review rating rounded to
// two decimals, or 0 when the hotel has no reviews.
func (s *HotelService) RefreshRating(id uint) (float64, error) {
	return refreshHotelRating(s.DB, id)
}

func refreshHotelRating(db *gorm.DB, hotelID uint) (float64, error) {
	var avg sql.NullFloat64
	row := db.Model(&models.Review{}).Select("AVG(rating)").Where("hotel_id = ?", hotelID).Row()
	if err := row.Scan(&avg); err != nil {
		return 0, translateError(err)
	}

	rating := 0.0
	if avg.Valid {
		rating = math.Round(avg.Float64*100) / 100
	}
	err := db.Model(&models.Hotel{}).Where("id = ?", hotelID).Update("rating", rating).Error
	return rating, translateError(err)
}

// applyUpdates writes the column map to row id and returns the fresh row.
func applyUpdates[T any](db *gorm.DB, id uint, updates map[string]interface{}) (T, error) {
	var out T
	if err := db.First(&out, id).Error; err != nil {
		return out, translateError(err)
	}
	if len(updates) > 0 {
		if err := db.Model(&out).Where("id = ?", id).Updates(updates).Error; err != nil {
			return out, translateError(err)
		}
	}
	err := db.First(&out, id).Error
	return out, translateError(err)
}
