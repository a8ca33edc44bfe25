package routes

import (
	websocket "github.com/gofiber/contrib/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/medet-a/MentorLinkBack/internal/config"
	"github.com/medet-a/MentorLinkBack/internal/handlers"
	"github.com/medet-a/MentorLinkBack/internal/middleware"
	"github.com/medet-a/MentorLinkBack/internal/repository"
	"github.com/medet-a/MentorLinkBack/internal/services"
	notifyws "github.com/medet-a/MentorLinkBack/internal/websocket"
)

func RegisterRoutes(app *fiber.App, cfg *config.Config, db *pgxpool.Pool) {
	mentorRepo := repository.NewMentorRepository(db)
	availabilityRepo := repository.NewAvailabilityRepository(db)
	bookingRepo := repository.NewBookingRepository(db)
	sessionRepo := repository.NewSessionRepository(db)

	hub := notifyws.NewHub()
	go hub.Run()

	clock := services.SystemClock()

	mentorService := services.NewMentorService(db, mentorRepo, availabilityRepo)
	discoveryService := services.NewDiscoveryService(mentorRepo)
	availabilityService := services.NewAvailabilityService(
		mentorRepo,
		availabilityRepo,
		bookingRepo,
		sessionRepo,
		clock,
	)
	bookingService := services.NewBookingService(
		db,
		bookingRepo,
		sessionRepo,
		mentorRepo,
		availabilityRepo,
		clock,
		hub,
	)
	sessionService := services.NewSessionService(db, sessionRepo, mentorRepo, clock, hub)

	mentorHandler := handlers.NewMentorHandler(mentorService, mentorRepo, availabilityRepo, discoveryService)
	availabilityHandler := handlers.NewAvailabilityHandler(availabilityService)
	bookingHandler := handlers.NewBookingHandler(bookingService)
	sessionHandler := handlers.NewSessionHandler(sessionService)
	notificationHandler := handlers.NewNotificationHandler(hub, cfg.JWTSecret)

	api := app.Group("/api")
	authProtected := api.Group("/v1", middleware.AuthRequired(cfg.JWTSecret))

	mentors := authProtected.Group("/mentors")
	mentors.Post("", mentorHandler.CreateMentor)
	mentors.Get("", mentorHandler.ListMentors)
	mentors.Get("/recommended", mentorHandler.GetRecommendedMentors)
	mentors.Get("/:id", mentorHandler.GetMentor)
	mentors.Put("/:id/availability", mentorHandler.ReplaceAvailability)
	mentors.Get("/:id/availability", availabilityHandler.GetSlots)

	bookings := authProtected.Group("/bookings")
	bookings.Post("", bookingHandler.CreateBooking)
	bookings.Get("/:id", bookingHandler.GetBooking)
	bookings.Post("/:id/confirm", bookingHandler.ConfirmBooking)
	bookings.Post("/:id/cancel", bookingHandler.CancelBooking)

	sessions := authProtected.Group("/sessions")
	sessions.Get("", sessionHandler.ListSessions)
	sessions.Get("/:id", sessionHandler.GetSession)
	sessions.Post("/:id/start", sessionHandler.StartSession)
	sessions.Post("/:id/complete", sessionHandler.CompleteSession)
	sessions.Post("/:id/cancel", sessionHandler.CancelSession)
	sessions.Post("/:id/update", sessionHandler.UpdateSession)

	api.Use("/v1/ws", notificationHandler.WebSocketAuth)
	api.Get("/v1/ws", websocket.New(notificationHandler.HandleWebSocket))
}
