package app

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/stayhaven/booking-backend/internal/api"
	"github.com/stayhaven/booking-backend/internal/auth"
	"github.com/stayhaven/booking-backend/internal/booking"
	"github.com/stayhaven/booking-backend/internal/notification"
	"github.com/stayhaven/booking-backend/internal/payment"
	"github.com/stayhaven/booking-backend/internal/property"
	"github.com/stayhaven/booking-backend/internal/user"
)

// Config holds the dependencies and settings required to start the application.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	DBPool       *pgxpool.Pool
	JWTSecret    string
	JWTTTL       time.Duration
	BcryptCost   int
	Logger       *zap.Logger

	CancellationCutoffHours int
	BookingRefPrefix        string
}

// Container holds the initialized components that are needed externally.
type Container struct {
	Router     *gin.Engine
	JWTManager *auth.JWTManager
}

// NewContainer initializes all modules and returns the container.
func NewContainer(cfg Config) *Container {
	// Init Components
	passwordHasher := auth.NewBcryptPasswordHasherWithCost(cfg.BcryptCost)
	jwtManager := auth.NewJWTManager(cfg.JWTSecret, cfg.JWTTTL)

	// User Module
	userRepo := user.NewPgxRepository(cfg.DBPool)
	userService := user.NewService(userRepo, passwordHasher)

	// Property Module
	propertyRepo := property.NewPgxRepository(cfg.DBPool)
	propertyService := property.NewService(propertyRepo)

	// Payment records (persisted by the booking module on payment)
	paymentRepo := payment.NewPgxRepository(cfg.DBPool)

	// Notification Module
	notificationRepo := notification.NewPgxRepository(cfg.DBPool)
	notificationService := notification.NewService(notificationRepo)

	// Booking Module
	bookingRepo := booking.NewPgxRepository(cfg.DBPool)
	bookingService := booking.NewService(
		bookingRepo,
		propertyService,
		paymentRepo,
		notificationService,
		cfg.Logger,
		booking.Config{
			CancellationCutoffHours: cfg.CancellationCutoffHours,
			RefPrefix:               cfg.BookingRefPrefix,
		},
	)

	// API Router Config
	routerParams := api.Config{
		IsProduction:        cfg.IsProduction,
		ProdOrigins:         cfg.ProdOrigins,
		UserService:         userService,
		PropertyService:     propertyService,
		BookingService:      bookingService,
		NotificationService: notificationService,
		JWTManager:          jwtManager,
	}

	// Router
	router := api.NewRouter(routerParams)

	return &Container{
		Router:     router,
		JWTManager: jwtManager,
	}
}
