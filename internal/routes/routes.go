package routes

import (
	"github.com/gin-gonic/gin"
	"github.com/go-redis/redis/v8"
	"github.com/rs/zerolog"
	"gorm.io/gorm"

	"github.com/trimtime/trimtime-api/internal/cache"
	"github.com/trimtime/trimtime-api/internal/config"
	"github.com/trimtime/trimtime-api/internal/events"
	"github.com/trimtime/trimtime-api/internal/handlers"
	infraRepo "github.com/trimtime/trimtime-api/internal/infra/repository"
	"github.com/trimtime/trimtime-api/internal/middleware"
	"github.com/trimtime/trimtime-api/internal/storage"
	ucqueue "github.com/trimtime/trimtime-api/internal/usecase/queue"
)

func RegisterRoutes(
	r *gin.Engine,
	db *gorm.DB,
	rdb *redis.Client,
	cfg *config.Config,
	log zerolog.Logger,
) {

	// ------------------------------
	// Infra
	// ------------------------------
	bookingRepo := infraRepo.NewBookingGormRepository(db)

	eventLogger := events.New(db)
	eventDispatcher := events.NewDispatcher(eventLogger, log)

	sessions := cache.NewSessions(rdb)
	queueLengths := cache.NewQueueLengths(rdb)
	photos := storage.NewPhotoStore(cfg)

	// ------------------------------
	// Use cases
	// ------------------------------
	joinQueueUC := ucqueue.NewJoinQueue(bookingRepo, eventDispatcher)
	leaveQueueUC := ucqueue.NewLeaveQueue(bookingRepo, eventDispatcher)
	serveBookingUC := ucqueue.NewServeBooking(bookingRepo, eventDispatcher)
	markNoShowUC := ucqueue.NewMarkNoShow(bookingRepo, eventDispatcher)
	cancelForShopUC := ucqueue.NewCancelForShop(bookingRepo, eventDispatcher)
	queueStatusUC := ucqueue.NewQueueStatus(bookingRepo, cfg.AvgServiceMinutes)
	listWaitingUC := ucqueue.NewListWaiting(bookingRepo, cfg.AvgServiceMinutes)

	// ------------------------------
	// Handlers
	// ------------------------------
	authHandler := handlers.NewAuthHandler(db, cfg, sessions)
	profileHandler := handlers.NewProfileHandler(db)
	shopHandler := handlers.NewShopHandler(db, queueLengths)
	myShopHandler := handlers.NewMyShopHandler(db, photos)
	reviewHandler := handlers.NewReviewHandler(db)
	queueEventsHandler := handlers.NewQueueEventsHandler(db)

	bookingHandler := handlers.NewBookingHandler(
		db,
		joinQueueUC,
		leaveQueueUC,
		queueStatusUC,
		queueLengths,
	)

	queueHandler := handlers.NewQueueHandler(
		listWaitingUC,
		serveBookingUC,
		markNoShowUC,
		cancelForShopUC,
		queueLengths,
	)

	// ------------------------------
	// API
	// ------------------------------
	api := r.Group("/api")
	{
		// Public
		api.POST("/auth/register/customer", authHandler.RegisterCustomer)
		api.POST("/auth/register/barber", authHandler.RegisterBarber)
		api.POST("/auth/signin", authHandler.SignIn)

		api.GET("/shops", shopHandler.List)
		api.GET("/shops/:id", shopHandler.Get)
		api.GET("/shops/:id/reviews", reviewHandler.List)

		// Authenticated
		secured := api.Group("/")
		secured.Use(middleware.AuthMiddleware(cfg, sessions))
		{
			secured.POST("/auth/signout", authHandler.SignOut)
			secured.GET("/auth/user", authHandler.CurrentUser)

			secured.GET("/users/profile", profileHandler.Get)
			secured.PUT("/users/profile", profileHandler.Update)

			// Customer queue
			secured.POST("/bookings", bookingHandler.Create)
			secured.GET("/bookings", bookingHandler.List)
			secured.GET("/bookings/:id/queue", bookingHandler.QueueStatus)
			secured.PATCH("/bookings/:id/cancel", bookingHandler.Cancel)

			secured.POST("/shops/:id/reviews", reviewHandler.Create)

			// Shop side
			barber := secured.Group("/me")
			barber.Use(middleware.RequireRole("barber"))
			{
				barber.GET("/shop", myShopHandler.Get)
				barber.PATCH("/shop", myShopHandler.Update)
				barber.POST("/shop/photo", myShopHandler.UploadPhoto)

				barber.GET("/queue", queueHandler.List)
				barber.PATCH("/queue/:id/serve", queueHandler.Serve)
				barber.PATCH("/queue/:id/no-show", queueHandler.NoShow)
				barber.PATCH("/queue/:id/cancel", queueHandler.Cancel)

				barber.GET("/events", queueEventsHandler.List)
			}
		}
	}
}
