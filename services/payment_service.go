package services

import (
	"strings"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type PaymentService struct {
	DB *gorm.DB
}

func NewPaymentService(db *gorm.DB) *PaymentService {
	return &PaymentService{DB: db}
}

type PaymentFilter struct {
	BookingID uint
	Status    string
}

type PaymentPatch struct {
	Amount *float64 `json:"amount"`
	Method *string  `json:"method"`
	Status *string  `json:"status"`
}

// Create records a payment against an existing booking. Status defaults to
// paid and date to the insert time.
func (s *PaymentService) Create(p *models.Payment) error {
	p.Method = strings.TrimSpace(p.Method)
	p.Status = strings.TrimSpace(p.Status)
	switch {
	case p.BookingID == 0:
		return invalidf("bookingId is required")
	case p.Amount <= 0:
		return invalidf("amount must be positive")
	case p.Method == "":
		return invalidf("payment method is required")
	}
	return translateError(s.DB.Create(p).Error)
}

func (s *PaymentService) GetByID(id uint) (models.Payment, error) {
	var p models.Payment
	err := s.DB.First(&p, id).Error
	return p, translateError(err)
}

func (s *PaymentService) List(f PaymentFilter) ([]models.Payment, error) {
	q := s.DB.Order("id")
	if f.BookingID != 0 {
		q = q.Where("booking_id = ?", f.BookingID)
	}
	if f.Status != "" {
		q = q.Where("status = ?", f.Status)
	}
	var out []models.Payment
	err := q.Find(&out).Error
	return out, translateError(err)
}

// TotalForBooking sums the amounts recorded against a booking.
func (s *PaymentService) TotalForBooking(bookingID uint) (float64, error) {
	var total float64
	err := s.DB.Model(&models.Payment{}).
		Select("COALESCE(SUM(amount), 0)").
		Where("booking_id = ?", bookingID).
		Row().Scan(&total)
	return total, translateError(err)
}

func (s *PaymentService) Update(id uint, p PaymentPatch) (models.Payment, error) {
	updates := map[string]interface{}{}
	if p.Amount != nil {
		if *p.Amount <= 0 {
			return models.Payment{}, invalidf("amount must be positive")
		}
		updates["amount"] = *p.Amount
	}
	if p.Method != nil {
		if strings.TrimSpace(*p.Method) == "" {
			return models.Payment{}, invalidf("payment method is required")
		}
		updates["method"] = strings.TrimSpace(*p.Method)
	}
	if p.Status != nil {
		if strings.TrimSpace(*p.Status) == "" {
			return models.Payment{}, invalidf("payment status must not be empty")
		}
		updates["status"] = strings.TrimSpace(*p.Status)
	}
	return applyUpdates[models.Payment](s.DB, id, updates)
}

func (s *PaymentService) Delete(id uint) error {
	return deleteByID(s.DB, &models.Payment{}, id)
}
