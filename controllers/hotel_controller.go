package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
)

type createHotelRequest struct {
	Name        string   `json:"name" binding:"required"`
	Location    string   `json:"location" binding:"required"`
	Description *string  `json:"description"`
	Image       *string  `json:"image"`
	Rating      *float64 `json:"rating" binding:"omitempty,gte=0,lte=5"`
}

type HotelController struct {
	HotelSvc  *services.HotelService
	RoomSvc   *services.RoomService
	ReviewSvc *services.ReviewService
	UserSvc   *services.UserService
}

func NewHotelController(hs *services.HotelService, rs *services.RoomService, rvs *services.ReviewService, us *services.UserService) *HotelController {
	return &HotelController{HotelSvc: hs, RoomSvc: rs, ReviewSvc: rvs, UserSvc: us}
}

// GET /api/hotels?location=
func (ctrl *HotelController) GetHotels(c *gin.Context) {
	hotels, err := ctrl.HotelSvc.List(services.HotelFilter{Location: c.Query("location")})
	if err != nil {
		respondError(c, "hotel", err)
		return
	}
	c.JSON(http.StatusOK, hotels)
}

func (ctrl *HotelController) GetHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	hotel, err := ctrl.HotelSvc.GetByID(id)
	if err != nil {
		respondError(c, "hotel", err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

func (ctrl *HotelController) CreateHotel(c *gin.Context) {
	var req createHotelRequest
	if !bindJSON(c, &req) {
		return
	}
	hotel := models.Hotel{
		Name:        req.Name,
		Location:    req.Location,
		Description: req.Description,
		Image:       req.Image,
	}
	if req.Rating != nil {
		hotel.Rating = *req.Rating
	}
	if err := ctrl.HotelSvc.Create(&hotel); err != nil {
		respondError(c, "hotel", err)
		return
	}
	c.JSON(http.StatusCreated, hotel)
}

func (ctrl *HotelController) UpdateHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch services.HotelPatch
	if !bindJSON(c, &patch) {
		return
	}
	hotel, err := ctrl.HotelSvc.Update(id, patch)
	if err != nil {
		respondError(c, "hotel", err)
		return
	}
	c.JSON(http.StatusOK, hotel)
}

func (ctrl *HotelController) DeleteHotel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.HotelSvc.Delete(id); err != nil {
		respondError(c, "hotel", err)
		return
	}
	respondDeleted(c, "Hotel")
}

// hotelExists writes a 404 and returns false when the hotel is missing.
func (ctrl *HotelController) hotelExists(c *gin.Context, id uint) bool {
	if _, err := ctrl.HotelSvc.GetByID(id); err != nil {
		respondError(c, "hotel", err)
		return false
	}
	return true
}

// GET /api/hotels/:id/rooms?status=&minCapacity=
func (ctrl *HotelController) GetHotelRooms(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok || !ctrl.hotelExists(c, id) {
		return
	}
	minCapacity, ok := queryUint(c, "minCapacity")
	if !ok {
		return
	}
	rooms, err := ctrl.RoomSvc.List(services.RoomFilter{
		HotelID:     id,
		Status:      models.RoomStatus(c.Query("status")),
		MinCapacity: int(minCapacity),
	})
	if err != nil {
		respondError(c, "room", err)
		return
	}
	c.JSON(http.StatusOK, rooms)
}

func (ctrl *HotelController) GetHotelReviews(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok || !ctrl.hotelExists(c, id) {
		return
	}
	reviews, err := ctrl.ReviewSvc.List(services.ReviewFilter{HotelID: id})
	if err != nil {
		respondError(c, "review", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (ctrl *HotelController) GetHotelManagers(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok || !ctrl.hotelExists(c, id) {
		return
	}
	users, err := ctrl.UserSvc.Managers(id)
	if err != nil {
		respondError(c, "user", err)
		return
	}
	c.JSON(http.StatusOK, users)
}
