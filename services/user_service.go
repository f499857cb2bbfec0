package services

import (
	"net/mail"
	"strings"

	"gorm.io/gorm"

	"hotel-booking/models"
)

type UserService struct {
	DB *gorm.DB
}

func NewUserService(db *gorm.DB) *UserService {
	return &UserService{DB: db}
}

type UserFilter struct {
	Role    models.UserRole
	HotelID uint
}

type UserPatch struct {
	Name    *string          `json:"name"`
	Email   *string          `json:"email" binding:"omitempty,email"`
	Phone   *string          `json:"phone"`
	Role    *models.UserRole `json:"role"`
	HotelID *uint            `json:"hotelId"`
	// ClearHotel unassigns the user from any hotel; HotelID is ignored.
	ClearHotel bool `json:"clearHotel"`
}

// normalizeEmail accepts a bare address only. Display-name forms such as
// "Bob <bob@example.com>" are rejected so one mailbox maps to one user.
func normalizeEmail(email string) (string, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	if email == "" {
		return "", invalidf("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", invalidf("email %q is not a plain address", email)
	}
	return email, nil
}

func (s *UserService) Create(u *models.User) error {
	u.Name = strings.TrimSpace(u.Name)
	if u.Name == "" {
		return invalidf("user name is required")
	}
	email, err := normalizeEmail(u.Email)
	if err != nil {
		return err
	}
	u.Email = email
	u.Phone = trimPtr(u.Phone)
	if u.Role == "" {
		u.Role = models.RoleCustomer
	}
	if !u.Role.Valid() {
		return invalidf("role %q is not one of admin, manager, customer", u.Role)
	}
	return translateError(s.DB.Create(u).Error)
}

func (s *UserService) GetByID(id uint) (models.User, error) {
	var u models.User
	err := s.DB.First(&u, id).Error
	return u, translateError(err)
}

func (s *UserService) GetByEmail(email string) (models.User, error) {
	var u models.User
	err := s.DB.Where("email = ?", strings.ToLower(strings.TrimSpace(email))).First(&u).Error
	return u, translateError(err)
}

func (s *UserService) List(f UserFilter) ([]models.User, error) {
	q := s.DB.Order("id")
	if f.Role != "" {
		q = q.Where("role = ?", f.Role)
	}
	if f.HotelID != 0 {
		q = q.Where("hotel_id = ?", f.HotelID)
	}
	var out []models.User
	err := q.Find(&out).Error
	return out, translateError(err)
}

// Managers lists the users assigned to a hotel.
func (s *UserService) Managers(hotelID uint) ([]models.User, error) {
	return s.List(UserFilter{HotelID: hotelID})
}

func (s *UserService) Update(id uint, p UserPatch) (models.User, error) {
	updates := map[string]interface{}{}
	if p.Name != nil {
		name := strings.TrimSpace(*p.Name)
		if name == "" {
			return models.User{}, invalidf("user name is required")
		}
		updates["name"] = name
	}
	if p.Email != nil {
		email, err := normalizeEmail(*p.Email)
		if err != nil {
			return models.User{}, err
		}
		updates["email"] = email
	}
	if p.Phone != nil {
		updates["phone"] = nullableText(*p.Phone)
	}
	if p.Role != nil {
		if !p.Role.Valid() {
			return models.User{}, invalidf("role %q is not one of admin, manager, customer", *p.Role)
		}
		updates["role"] = *p.Role
	}
	switch {
	case p.ClearHotel:
		updates["hotel_id"] = nil
	case p.HotelID != nil:
		updates["hotel_id"] = *p.HotelID
	}
	return applyUpdates[models.User](s.DB, id, updates)
}

// Delete removes the user together with their bookings and reviews (by
// cascade) and refreshes the rating of every hotel they had reviewed.
func (s *UserService) Delete(id uint) error {
	return s.DB.Transaction(func(tx *gorm.DB) error {
		var hotelIDs []uint
		if err := tx.Model(&models.Review{}).Where("user_id = ?", id).
			Distinct().Pluck("hotel_id", &hotelIDs).Error; err != nil {
			return translateError(err)
		}

		if err := deleteByID(tx, &models.User{}, id); err != nil {
			return err
		}

		for _, hotelID := range hotelIDs {
			if _, err := refreshHotelRating(tx, hotelID); err != nil {
				return err
			}
		}
		return nil
	})
}
