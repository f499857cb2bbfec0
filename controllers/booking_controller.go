package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"gorm.io/datatypes"

	"hotel-booking/models"
	"hotel-booking/services"
	"hotel-booking/utils"
)

const dateLayout = "2006-01-02"

type createBookingRequest struct {
	RoomID   uint                 `json:"roomId" binding:"required"`
	UserID   uint                 `json:"userId" binding:"required"`
	CheckIn  string               `json:"checkIn" binding:"required"`
	CheckOut string               `json:"checkOut" binding:"required"`
	Status   models.BookingStatus `json:"status" binding:"omitempty,oneof=pending confirmed canceled"`
}

type updateBookingRequest struct {
	CheckIn  *string               `json:"checkIn"`
	CheckOut *string               `json:"checkOut"`
	Status   *models.BookingStatus `json:"status"`
}

// parseDate accepts 2006-01-02 or a full RFC 3339 timestamp.
func parseDate(raw string) (datatypes.Date, bool) {
	raw = strings.TrimSpace(raw)
	if t, err := time.Parse(dateLayout, raw); err == nil {
		return datatypes.Date(t), true
	}
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return datatypes.Date(t), true
	}
	return datatypes.Date{}, false
}

func parseDateField(c *gin.Context, field, raw string) (datatypes.Date, bool) {
	d, ok := parseDate(raw)
	if !ok {
		utils.JSONError(c, http.StatusBadRequest, "error.invalidDate", field+" must be a date (YYYY-MM-DD)")
	}
	return d, ok
}

type BookingController struct {
	BookingSvc *services.BookingService
	PaymentSvc *services.PaymentService
}

func NewBookingController(bs *services.BookingService, ps *services.PaymentService) *BookingController {
	return &BookingController{BookingSvc: bs, PaymentSvc: ps}
}

// GET /api/bookings?roomId=&userId=&status=
func (ctrl *BookingController) GetBookings(c *gin.Context) {
	roomID, ok := queryUint(c, "roomId")
	if !ok {
		return
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return
	}
	bookings, err := ctrl.BookingSvc.List(services.BookingFilter{
		RoomID: roomID,
		UserID: userID,
		Status: models.BookingStatus(c.Query("status")),
	})
	if err != nil {
		respondError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}

// GET /api/bookings/:id returns the booking with its payments.
func (ctrl *BookingController) GetBookingDetails(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	booking, err := ctrl.BookingSvc.GetWithPayments(id)
	if err != nil {
		respondError(c, "booking", err)
		return
	}
	paid, err := ctrl.PaymentSvc.TotalForBooking(id)
	if err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"booking":   booking,
		"totalPaid": paid,
	})
}

func (ctrl *BookingController) CreateBooking(c *gin.Context) {
	var req createBookingRequest
	if !bindJSON(c, &req) {
		return
	}
	checkIn, ok := parseDateField(c, "checkIn", req.CheckIn)
	if !ok {
		return
	}
	checkOut, ok := parseDateField(c, "checkOut", req.CheckOut)
	if !ok {
		return
	}

	booking := models.Booking{
		RoomID:   req.RoomID,
		UserID:   req.UserID,
		CheckIn:  checkIn,
		CheckOut: checkOut,
		Status:   req.Status,
	}
	if err := ctrl.BookingSvc.Create(&booking); err != nil {
		respondError(c, "booking", err)
		return
	}
	c.JSON(http.StatusCreated, booking)
}

func (ctrl *BookingController) UpdateBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var req updateBookingRequest
	if !bindJSON(c, &req) {
		return
	}

	patch := services.BookingPatch{Status: req.Status}
	if req.CheckIn != nil {
		d, ok := parseDateField(c, "checkIn", *req.CheckIn)
		if !ok {
			return
		}
		patch.CheckIn = &d
	}
	if req.CheckOut != nil {
		d, ok := parseDateField(c, "checkOut", *req.CheckOut)
		if !ok {
			return
		}
		patch.CheckOut = &d
	}

	booking, err := ctrl.BookingSvc.Update(id, patch)
	if err != nil {
		respondError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, booking)
}

func (ctrl *BookingController) DeleteBooking(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.BookingSvc.Delete(id); err != nil {
		respondError(c, "booking", err)
		return
	}
	respondDeleted(c, "Booking")
}

func (ctrl *BookingController) GetBookingPayments(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.BookingSvc.GetByID(id); err != nil {
		respondError(c, "booking", err)
		return
	}
	payments, err := ctrl.PaymentSvc.List(services.PaymentFilter{BookingID: id})
	if err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}
