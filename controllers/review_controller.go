package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"hotel-booking/models"
	"hotel-booking/services"
)

type createReviewRequest struct {
	HotelID uint    `json:"hotelId" binding:"required"`
	UserID  uint    `json:"userId" binding:"required"`
	Rating  int     `json:"rating" binding:"required,min=1,max=5"`
	Comment *string `json:"comment"`
}

type ReviewController struct {
	ReviewSvc *services.ReviewService
}

func NewReviewController(rs *services.ReviewService) *ReviewController {
	return &ReviewController{ReviewSvc: rs}
}

// GET /api/reviews?hotelId=&userId=
func (ctrl *ReviewController) GetReviews(c *gin.Context) {
	hotelID, ok := queryUint(c, "hotelId")
	if !ok {
		return
	}
	userID, ok := queryUint(c, "userId")
	if !ok {
		return
	}
	reviews, err := ctrl.ReviewSvc.List(services.ReviewFilter{HotelID: hotelID, UserID: userID})
	if err != nil {
		respondError(c, "review", err)
		return
	}
	c.JSON(http.StatusOK, reviews)
}

func (ctrl *ReviewController) GetReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	review, err := ctrl.ReviewSvc.GetByID(id)
	if err != nil {
		respondError(c, "review", err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (ctrl *ReviewController) CreateReview(c *gin.Context) {
	var req createReviewRequest
	if !bindJSON(c, &req) {
		return
	}
	review := models.Review{
		HotelID: req.HotelID,
		UserID:  req.UserID,
		Rating:  req.Rating,
		Comment: req.Comment,
	}
	if err := ctrl.ReviewSvc.Create(&review); err != nil {
		respondError(c, "review", err)
		return
	}
	c.JSON(http.StatusCreated, review)
}

func (ctrl *ReviewController) UpdateReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	var patch services.ReviewPatch
	if !bindJSON(c, &patch) {
		return
	}
	review, err := ctrl.ReviewSvc.Update(id, patch)
	if err != nil {
		respondError(c, "review", err)
		return
	}
	c.JSON(http.StatusOK, review)
}

func (ctrl *ReviewController) DeleteReview(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}
	if err := ctrl.ReviewSvc.Delete(id); err != nil {
		respondError(c, "review", err)
		return
	}
	respondDeleted(c, "Review")
}
