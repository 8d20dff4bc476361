package main

import (
	"context"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stripe/stripe-go/v76"

	"medicore/config"
	"medicore/cron"
	"medicore/database"
	appointmentRepo "medicore/database/repository/appointment"
	clinicRepo "medicore/database/repository/clinic"
	doctorRepo "medicore/database/repository/doctor"
	labtestRepo "medicore/database/repository/labtest"
	orderRepo "medicore/database/repository/order"
	productRepo "medicore/database/repository/product"
	userRepoPkg "medicore/database/repository/user"
	"medicore/handlers"
	"medicore/routes"
	"medicore/services/appointment"
	"medicore/services/availability"
	"medicore/services/labtest"
	"medicore/services/order"
	"medicore/services/payment"
	"medicore/services/storage"
	"medicore/services/tasks"
	"medicore/services/user"
	"medicore/utils"
)

func main() {
	config.LoadConfig()
	logger := utils.GetLogger()

	database.InitDB()
	utils.InitCache()
	stripe.Key = config.AppConfig.StripeKey

	cld, err := storage.NewCloudinaryClient(
		config.AppConfig.CloudinaryCloudName,
		config.AppConfig.CloudinaryAPIKey,
		config.AppConfig.CloudinaryAPISecret,
	)
	if err != nil {
		logger.Sugar().Fatalf("main: failed to initialize cloudinary: %v", err)
	}
	storageService := storage.NewCloudinaryStorageService(cld)

	// Repositories.
	apptRepo := appointmentRepo.NewMongoAppointmentRepo()
	clinRepo := clinicRepo.NewMongoClinicRepo()
	docRepo := doctorRepo.NewMongoDoctorRepo()
	labRepo := labtestRepo.NewMongoLabTestRepo()
	ordRepo := orderRepo.NewMongoOrderRepo()
	prodRepo := productRepo.NewMongoProductRepo()
	userRepo := userRepoPkg.NewMongoUserRepo()

	for name, repo := range map[string]interface{ EnsureIndexes() error }{
		"appointments": apptRepo,
		"clinics":      clinRepo,
		"doctors":      docRepo,
		"labtests":     labRepo,
		"orders":       ordRepo,
		"products":     prodRepo,
		"users":        userRepo,
	} {
		if err := repo.EnsureIndexes(); err != nil {
			logger.Sugar().Fatalf("main: failed to ensure %s indexes: %v", name, err)
		}
	}

	// Services.
	availabilityService := &availability.DefaultAvailabilityService{
		ClinicRepo: clinRepo,
		ApptRepo:   apptRepo,
		Cache:      utils.GetCacheClient(),
	}
	reminderScheduler := tasks.NewAsynqReminderScheduler()
	defer reminderScheduler.Close()

	appointmentService := &appointment.DefaultAppointmentService{
		Repo:         apptRepo,
		ClinicRepo:   clinRepo,
		DoctorRepo:   docRepo,
		Availability: availabilityService,
		Reminders:    reminderScheduler,
	}
	labTestService := &labtest.DefaultLabTestService{
		Repo:       labRepo,
		ClinicRepo: clinRepo,
	}
	paymentService := &payment.StripePaymentService{}
	orderService := &order.DefaultOrderService{
		Repo:        ordRepo,
		ProductRepo: prodRepo,
		Payments:    paymentService,
	}
	userService := &user.DefaultUserService{
		Repo: userRepo,
	}

	// Handlers.
	handlerBundle := &handlers.HandlerBundle{
		Availability: handlers.NewAvailabilityHandler(availabilityService),
		Appointment:  handlers.NewAppointmentHandler(appointmentService),
		Clinic:       handlers.NewClinicHandler(clinRepo, storageService),
		Doctor:       handlers.NewDoctorHandler(docRepo, storageService),
		LabTest:      handlers.NewLabTestHandler(labTestService),
		Order:        handlers.NewOrderHandler(orderService),
		Product:      handlers.NewProductHandler(prodRepo),
		User:         handlers.NewUserHandler(userService),
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(utils.ErrorHandler())
	router.Use(gin.Logger())
	routes.RegisterRoutes(router, handlerBundle)

	// Background reminder worker.
	go cron.InitReminderWorker()

	port := config.AppConfig.AppPort
	if port == "" {
		port = "8080"
	}
	srv := &http.Server{
		Addr:    "0.0.0.0:" + port,
		Handler: router,
	}

	logger.Sugar().Infof("Starting server on %s...", srv.Addr)
	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Sugar().Fatalf("main: server failed to start: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Sugar().Info("main: server is shutting down...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Sugar().Fatalf("main: server forced to shutdown: %v", err)
	}

	logger.Sugar().Info("main: server stopped gracefully")
}
