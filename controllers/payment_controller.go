package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
)

type createPaymentRequest struct {
	BookingID uint    `json:"bookingId" binding:"required"`
	Amount    float64 `json:"amount" binding:"required,gt=0"`
	Method    string  `json:"method" binding:"required"`
	Status    string  `json:"status"`
}

type PaymentController struct {
	PaymentSvc *services.PaymentService
}

func NewPaymentController(ps *services.PaymentService) *PaymentController {
	return &PaymentController{PaymentSvc: ps}
}

// GET /api/payments?bookingId=&status=
func (ctrl *PaymentController) GetPayments(c *gin.Context) {
	bookingID, ok := queryUint(c, "bookingId")
	if !ok {
		return
	}
	payments, err := ctrl.PaymentSvc.List(services.PaymentFilter{
		BookingID: bookingID,
		Status:    c.Query("status"),
	})
	if err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusOK, payments)
}

func (ctrl *PaymentController) GetPayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	payment, err := ctrl.PaymentSvc.GetByID(id)
	if err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (ctrl *PaymentController) CreatePayment(c *gin.Context) {
	var req createPaymentRequest
	if !bindJSON(c, &req) {
		return
	}
	payment := models.Payment{
		BookingID: req.BookingID,
		Amount:    req.Amount,
		Method:    req.Method,
		Status:    req.Status,
	}
	if err := ctrl.PaymentSvc.Create(&payment); err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusCreated, payment)
}

func (ctrl *PaymentController) UpdatePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch services.PaymentPatch
	if !bindJSON(c, &patch) {
		return
	}
	payment, err := ctrl.PaymentSvc.Update(id, patch)
	if err != nil {
		respondError(c, "payment", err)
		return
	}
	c.JSON(http.StatusOK, payment)
}

func (ctrl *PaymentController) DeletePayment(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.PaymentSvc.Delete(id); err != nil {
		respondError(c, "payment", err)
		return
	}
	respondDeleted(c, "Payment")
}
