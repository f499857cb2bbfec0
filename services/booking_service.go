package services

import (
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"hotel-booking/models"
)

type BookingService struct {
	DB *gorm.DB
}

func NewBookingService(db *gorm.DB) *BookingService {
	return &BookingService{DB: db}
}

type BookingFilter struct {
	RoomID uint
	UserID uint
	Status models.BookingStatus
}

type BookingPatch struct {
	CheckIn  *datatypes.Date       `json:"checkIn"`
	CheckOut *datatypes.Date       `json:"checkOut"`
	Status   *models.BookingStatus `json:"status"`
}

func checkStay(checkIn, checkOut datatypes.Date) error {
	in, out := time.Time(checkIn), time.Time(checkOut)
	if in.IsZero() || out.IsZero() {
		return invalidf("checkIn and checkOut are required")
	}
	if !out.After(in) {
		return invalidf("checkOut must be after checkIn")
	}
	return nil
}

// Create inserts the booking; an empty status takes the column default
// (pending). Room and user must exist or ErrInvalidReference is returned.
func (s *BookingService) Create(b *models.Booking) error {
	if b.RoomID == 0 || b.UserID == 0 {
		return invalidf("roomId and userId are required")
	}
	if err := checkStay(b.CheckIn, b.CheckOut); err != nil {
		return err
	}
	if b.Status != "" && !b.Status.Valid() {
		return invalidf("booking status %q is not one of pending, confirmed, canceled", b.Status)
	}
	return translateError(s.DB.Create(b).Error)
}

func (s *BookingService) GetByID(id uint) (models.Booking, error) {
	var b models.Booking
	err := s.DB.First(&b, id).Error
	return b, translateError(err)
}

// GetWithPayments loads the booking and its payments.
func (s *BookingService) GetWithPayments(id uint) (models.Booking, error) {
	var b models.Booking
	err := s.DB.Preload("Payments", func(db *gorm.DB) *gorm.DB {
		return db.Order("id")
	}).First(&b, id).Error
	return b, translateError(err)
}

func (s *BookingService) List(f BookingFilter) ([]models.Booking, error) {
	q := s.DB.Order("id")
	if f.RoomID != 0 {
		q = q.Where("room_id = ?", f.RoomID)
	}
	if f.UserID != 0 {
		q = q.Where("user_id = ?", f.UserID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []models.Booking
	err := q.Find(&out).Error
	return out, translateError(err)
}

func (s *BookingService) Update(id uint, p BookingPatch) (models.Booking, error) {
	current, err := s.GetByID(id)
	if err != nil {
		return models.Booking{}, err
	}

	updates := map[string]interface{}{}
	checkIn, checkOut := current.CheckIn, current.CheckOut
	if p.CheckIn != nil {
		checkIn = *p.CheckIn
		updates["check_in"] = checkIn
	}
	if p.CheckOut != nil {
		checkOut = *p.CheckOut
		updates["check_out"] = checkOut
	}
	if p.CheckIn != nil || p.CheckOut != nil {
		if err := checkStay(checkIn, checkOut); err != nil {
			return models.Booking{}, err
		}
	}
	if p.Status != nil {
		if !p.Status.Valid() {
			return models.Booking{}, invalidf("booking status %q is not one of pending, confirmed, canceled", *p.Status)
		}
		updates["status"] = *p.Status
	}
	return applyUpdates[models.Booking](s.DB, id, updates)
}

// Delete removes the booking and, by cascade, its payments.
func (s *BookingService) Delete(id uint) error {
	return deleteByID(s.DB, &models.Booking{}, id)
}
