package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"gorm.io/gorm"

	"hotel-booking/controllers"
	"hotel-booking/middleware"
	"hotel-booking/services"
	"hotel-booking/utils"
)

func parseCorsOrigins() []string {
	origins := utils.SplitCSV(utils.EnvOrDefault("CORS_ORIGINS", "*"))
	if len(origins) == 0 {
		return []string{"*"}
	}
	return origins
}

// Controllers groups the handlers SetupRouter mounts.
type Controllers struct {
	Hotels   *controllers.HotelController
	Users    *controllers.UserController
	Rooms    *controllers.RoomController
	Bookings *controllers.BookingController
	Payments *controllers.PaymentController
	Reviews  *controllers.ReviewController
}

// NewControllers builds every service and controller over one connection.
func NewControllers(db *gorm.DB) Controllers {
	hotelSvc := services.NewHotelService(db)
	userSvc := services.NewUserService(db)
	roomSvc := services.NewRoomService(db)
	bookingSvc := services.NewBookingService(db)
	paymentSvc := services.NewPaymentService(db)
	reviewSvc := services.NewReviewService(db)

	return Controllers{
		Hotels:   controllers.NewHotelController(hotelSvc, roomSvc, reviewSvc, userSvc),
		Users:    controllers.NewUserController(userSvc, bookingSvc),
		Rooms:    controllers.NewRoomController(roomSvc, bookingSvc),
		Bookings: controllers.NewBookingController(bookingSvc, paymentSvc),
		Payments: controllers.NewPaymentController(paymentSvc),
		Reviews:  controllers.NewReviewController(reviewSvc),
	}
}

// SetupRouter mounts /health and the /api resource routes.
func SetupRouter(ctl Controllers) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), middleware.Logger())

	origins := parseCorsOrigins()
	allowCredentials := true
	for _, origin := range origins {
		if origin == "*" {
			allowCredentials = false
			break
		}
	}

	r.Use(cors.New(cors.Config{
		AllowOrigins:     origins,
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization", "X-Requested-With"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: allowCredentials,
		MaxAge:           12 * time.Hour,
	}))

	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	api := r.Group("/api")
	{
		hotels := api.Group("/hotels")
		{
			hotels.GET("", ctl.Hotels.GetHotels)
			hotels.POST("", ctl.Hotels.CreateHotel)
			hotels.GET("/:id", ctl.Hotels.GetHotel)
			hotels.PUT("/:id", ctl.Hotels.UpdateHotel)
			hotels.PATCH("/:id", ctl.Hotels.UpdateHotel)
			hotels.DELETE("/:id", ctl.Hotels.DeleteHotel)
			hotels.GET("/:id/rooms", ctl.Hotels.GetHotelRooms)
			hotels.GET("/:id/reviews", ctl.Hotels.GetHotelReviews)
			hotels.GET("/:id/managers", ctl.Hotels.GetHotelManagers)
		}

		users := api.Group("/users")
		{
			users.GET("", ctl.Users.GetUsers)
			users.POST("", ctl.Users.CreateUser)
			users.GET("/:id", ctl.Users.GetUser)
			users.PUT("/:id", ctl.Users.UpdateUser)
			users.PATCH("/:id", ctl.Users.UpdateUser)
			users.DELETE("/:id", ctl.Users.DeleteUser)
			users.GET("/:id/bookings", ctl.Users.GetUserBookings)
		}

		rooms := api.Group("/rooms")
		{
			rooms.GET("", ctl.Rooms.GetRooms)
			rooms.POST("", ctl.Rooms.CreateRoom)
			rooms.GET("/:id", ctl.Rooms.GetRoom)
			rooms.PUT("/:id", ctl.Rooms.UpdateRoom)
			rooms.PATCH("/:id", ctl.Rooms.UpdateRoom)
			rooms.DELETE("/:id", ctl.Rooms.DeleteRoom)
			rooms.GET("/:id/bookings", ctl.Rooms.GetRoomBookings)
		}

		bookings := api.Group("/bookings")
		{
			bookings.GET("", ctl.Bookings.GetBookings)
			bookings.POST("", ctl.Bookings.CreateBooking)
			bookings.GET("/:id", ctl.Bookings.GetBookingDetails)
			bookings.PUT("/:id", ctl.Bookings.UpdateBooking)
			bookings.PATCH("/:id", ctl.Bookings.UpdateBooking)
			bookings.DELETE("/:id", ctl.Bookings.DeleteBooking)
			bookings.GET("/:id/payments", ctl.Bookings.GetBookingPayments)
		}

		payments := api.Group("/payments")
		{
			payments.GET("", ctl.Payments.GetPayments)
			payments.POST("", ctl.Payments.CreatePayment)
			payments.GET("/:id", ctl.Payments.GetPayment)
			payments.PUT("/:id", ctl.Payments.UpdatePayment)
			payments.PATCH("/:id", ctl.Payments.UpdatePayment)
			payments.DELETE("/:id", ctl.Payments.DeletePayment)
		}

		reviews := api.Group("/reviews")
		{
			reviews.GET("", ctl.Reviews.GetReviews)
			reviews.POST("", ctl.Reviews.CreateReview)
			reviews.GET("/:id", ctl.Reviews.GetReview)
			reviews.PUT("/:id", ctl.Reviews.UpdateReview)
			reviews.PATCH("/:id", ctl.Reviews.UpdateReview)
			reviews.DELETE("/:id", ctl.Reviews.DeleteReview)
		}
	}

	return r
}
