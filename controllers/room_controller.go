package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
)

type createRoomRequest struct {
	HotelID    uint              `json:"hotelId" binding:"required"`
	RoomNumber string            `json:"roomNumber" binding:"required"`
	Type       string            `json:"type" binding:"required"`
	Price      float64           `json:"price" binding:"gte=0"`
	Capacity   int               `json:"capacity" binding:"required,gt=0"`
	Status     models.RoomStatus `json:"status" binding:"omitempty,oneof=available booked"`
}

type RoomController struct {
	RoomSvc    *services.RoomService
	BookingSvc *services.BookingService
}

func NewRoomController(rs *services.RoomService, bs *services.BookingService) *RoomController {
	return &RoomController{RoomSvc: rs, BookingSvc: bs}
}

// GET /api/rooms?hotelId=&status=&minCapacity=
func (ctrl *RoomController) GetRooms(c *gin.Context) {
	hotelID, ok := queryUint(c, "hotelId")
	if !ok {
		return
	}
	minCapacity, ok := queryUint(c, "minCapacity")
	if !ok {
		return
	}
	rooms, err := ctrl.RoomSvc.List(services.RoomFilter{
		HotelID:     hotelID,
		Status:      models.RoomStatus(c.Query("status")),
		MinCapacity: int(minCapacity),
	})
	if err != nil {
		respondError(c, "room", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *RoomController) GetRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	room, err := ctrl.RoomSvc.GetByID(id)
	if err != nil {
		respondError(c, "room", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) CreateRoom(c *gin.Context) {
	var req createRoomRequest
	if !bindJSON(c, &req) {
		return
	}
	room := models.Room{
		HotelID:    req.HotelID,
		RoomNumber: req.RoomNumber,
		Type:       req.Type,
		Price:      req.Price,
		Capacity:   req.Capacity,
		Status:     req.Status,
	}
	if err := ctrl.RoomSvc.Create(&room); err != nil {
		respondError(c, "room", err)
		return
	}
	c.JSON(http.StatusCreated, room)
}

func (ctrl *RoomController) UpdateRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch services.RoomPatch
	if !bindJSON(c, &patch) {
		return
	}
	room, err := ctrl.RoomSvc.Update(id, patch)
	if err != nil {
		respondError(c, "room", err)
		return
	}
	c.JSON(http.StatusOK, room)
}

func (ctrl *RoomController) DeleteRoom(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.RoomSvc.Delete(id); err != nil {
		respondError(c, "room", err)
		return
	}
	respondDeleted(c, "Room")
}

func (ctrl *RoomController) GetRoomBookings(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if _, err := ctrl.RoomSvc.GetByID(id); err != nil {
		respondError(c, "room", err)
		return
	}
	bookings, err := ctrl.BookingSvc.List(services.BookingFilter{RoomID: id})
	if err != nil {
		respondError(c, "booking", err)
		return
	}
	c.JSON(http.StatusOK, bookings)
}
