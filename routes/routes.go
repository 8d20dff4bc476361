package routes

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"medicore/handlers"
	"medicore/middleware"
	"medicore/models"
)

// RegisterAuthRoutes registers signup and signin endpoints.
func RegisterAuthRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/auth")
	{
		api.POST("/register", hb.User.Register)
		api.POST("/login", hb.User.Login)

		api.Use(middleware.Auth())
		api.GET("/me", hb.User.Me)
	}
}

// RegisterClinicRoutes registers clinic management and availability
// endpoints. Reads are public; mutations require staff or admin.
func RegisterClinicRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/clinics")
	{
		api.GET("/:id", hb.Clinic.GetByID)
		api.GET("", hb.Clinic.List)
		api.GET("/:id/slots", hb.Availability.GetSlots)
		api.GET("/:id/doctors", hb.Doctor.ListByClinic)

		protected := api.Group("")
		protected.Use(middleware.Auth(), middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
		protected.POST("", hb.Clinic.Create)
		protected.PUT("/:id/doctors/:doctorId", hb.Clinic.AddDoctor)
		protected.DELETE("/:id/doctors/:doctorId", hb.Clinic.RemoveDoctor)
		protected.POST("/:id/image", hb.Clinic.UploadImage)
	}
}

// RegisterDoctorRoutes registers doctor profile endpoints.
func RegisterDoctorRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/doctors")
	{
		api.GET("/:id", hb.Doctor.GetByID)

		protected := api.Group("")
		protected.Use(middleware.Auth(), middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
		protected.POST("", hb.Doctor.Create)
		protected.PATCH("/:id", hb.Doctor.Update)
		protected.POST("/:id/image", hb.Doctor.UploadImage)
	}
}

// RegisterAppointmentRoutes registers the booking endpoints. All of them
// require authentication.
func RegisterAppointmentRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	api := r.Group("/api/appointments")
	{
		api.Use(middleware.Auth())
		api.POST("", hb.Appointment.Create)
		api.PATCH("/:id/status", hb.Appointment.UpdateStatus)
		api.GET("/:id", hb.Appointment.GetByID)
		api.GET("/patient/:id", hb.Appointment.ListByPatient)
		api.GET("/doctor/:id", hb.Appointment.ListByDoctor)
	}
}

// RegisterLabTestRoutes registers the lab-test catalog and booking
// endpoints.
func RegisterLabTestRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.GET("/api/lab-tests", hb.LabTest.ListTests)

	api := r.Group("/api/lab-bookings")
	{
		api.Use(middleware.Auth())
		api.POST("", hb.LabTest.Book)
		api.POST("/:id/cancel", hb.LabTest.Cancel)
		api.GET("/:id", hb.LabTest.GetBooking)
		api.GET("/clinic/:id", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), hb.LabTest.ListByClinic)
	}
}

// RegisterOrderRoutes registers the storefront endpoints. The catalog is
// public; orders require authentication.
func RegisterOrderRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	products := r.Group("/api/products")
	{
		products.GET("", hb.Product.List)
		products.GET("/:id", hb.Product.GetByID)

		protected := products.Group("")
		protected.Use(middleware.Auth(), middleware.RequireRole(models.RoleStaff, models.RoleAdmin))
		protected.POST("", hb.Product.Create)
		protected.PATCH("/:id", hb.Product.Update)
	}

	orders := r.Group("/api/orders")
	{
		orders.Use(middleware.Auth())
		orders.POST("", hb.Order.Place)
		orders.GET("", hb.Order.ListMine)
		orders.GET("/:id", hb.Order.GetByID)
		orders.POST("/:id/cancel", hb.Order.Cancel)
		orders.POST("/:id/payment-intent", hb.Order.CreatePaymentIntent)
		orders.PATCH("/:id/status", middleware.RequireRole(models.RoleStaff, models.RoleAdmin), hb.Order.UpdateStatus)
	}
}

// RegisterHealthRoute registers a health-check endpoint.
func RegisterHealthRoute(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})
}

// RegisterRoutes centralizes registration of all endpoints and global
// middleware.
func RegisterRoutes(r *gin.Engine, hb *handlers.HandlerBundle) {
	r.Use(cors.New(cors.Config{
		AllowOrigins:     []string{"*"},
		AllowMethods:     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Authorization", "Content-Type"},
		ExposeHeaders:    []string{"Content-Length"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))
	r.Use(middleware.RateLimitMiddleware())

	RegisterHealthRoute(r)
	RegisterAuthRoutes(r, hb)
	RegisterClinicRoutes(r, hb)
	RegisterDoctorRoutes(r, hb)
	RegisterAppointmentRoutes(r, hb)
	RegisterLabTestRoutes(r, hb)
	RegisterOrderRoutes(r, hb)
}
