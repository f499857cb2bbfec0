package services

import (
	"gorm.io/gorm"

	"hotel-booking/models"
)

// ReviewService writes reviews and keeps hotels.rating in step with them.
type ReviewService struct {
	DB *gorm.DB
}

func NewReviewService(db *gorm.DB) *ReviewService {
	return &ReviewService{DB: db}
}

type ReviewFilter struct {
	HotelID uint
	UserID  uint
}

type ReviewPatch struct {
	Rating  *int    `json:"rating"`
	Comment *string `json:"comment"`
}

func checkRating(rating int) error {
	if rating < models.MinReviewRating || rating > models.MaxReviewRating {
		return invalidf("rating must be between %d and %d", models.MinReviewRating, models.MaxReviewRating)
	}
	return nil
}

func (s *ReviewService) Create(r *models.Review) error {
	if r.HotelID == 0 || r.UserID == 0 {
		return invalidf("hotelId and userId are required")
	}
	if err := checkRating(r.Rating); err != nil {
		return err
	}
	r.Comment = trimPtr(r.Comment)

	return s.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(r).Error; err != nil {
			return translateError(err)
		}
		_, err := refreshHotelRating(tx, r.HotelID)
		return err
	})
}

func (s *ReviewService) GetByID(id uint) (models.Review, error) {
	var r models.Review
	err := s.DB.First(&r, id).Error
	return r, translateError(err)
}

func (s *ReviewService) List(f ReviewFilter) ([]models.Review, error) {
	q := s.DB.Order("id")
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	var out []models.Review
	err := q.Find(&out).Error
	return out, translateError(err)
}

func (s *ReviewService) Update(id uint, p ReviewPatch) (models.Review, error) {
	updates := map[string]interface{}{}
	if p.Rating != nil {
		if err := checkRating(*p.Rating); err != nil {
			return models.Review{}, err
		}
		updates["rating"] = *p.Rating
	}
	if p.Comment != nil {
		updates["comment"] = nullableText(*p.Comment)
	}

	var out models.Review
	err := s.DB.Transaction(func(tx *gorm.DB) error {
		var err error
		out, err = applyUpdates[models.Review](tx, id, updates)
		if err != nil {
			return err
		}
		if p.Rating != nil {
			_, err = refreshHotelRating(tx, out.HotelID)
		}
		return err
	})
	return out, err
}

func (s *ReviewService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var r models.Review
		if err := tx.First(&r, id).Error; err != nil {
			return translateError(err)
		}
		if err := deleteByID(tx, &models.Review{}, id); err != nil {
			return err
		}
		_, err := refreshHotelRating(tx, r.HotelID)
		return err
	})
}
