package router

import (
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"

	"github.com/escusoft/escuela-backend/internal/config"
	"github.com/escusoft/escuela-backend/internal/handler"
	"github.com/escusoft/escuela-backend/internal/middleware"
	"github.com/escusoft/escuela-backend/internal/response"
	"github.com/escusoft/escuela-backend/internal/service"
)

// Handlers groups all handler instances for route setup.
type Handlers struct {
	Auth         *handler.AuthHandler
	User         *handler.UserHandler
	Career       *handler.CareerHandler
	Subject      *handler.SubjectHandler
	Enrollment   *handler.EnrollmentHandler
	Payment      *handler.PaymentHandler
	Message      *handler.MessageHandler
	Notification *handler.NotificationHandler
}

// SetupRouter configures the Gin engine. Route paths match the contract the
// front-end already consumes, including the historical carer/career split.
// Everything except registration, login and the health check sits behind the
// JWT gate; the policy is uniform on purpose.
func SetupRouter(
	authService *service.AuthService,
	handlers *Handlers,
	cfg *config.Config,
) *gin.Engine {
	gin.SetMode(cfg.GinMode)
	router := gin.Default()

	// ─── CORS ──────────────────────────────────────────────────────────
	// If AllowedOrigins is set in config, restrict to that list;
	// otherwise allow all (*) so dev works without extra config.
	corsConfig := cors.DefaultConfig()
	if len(cfg.AllowedOrigins) > 0 {
		corsConfig.AllowOrigins = cfg.AllowedOrigins
	} else {
		corsConfig.AllowAllOrigins = true
	}
	corsConfig.AllowMethods = []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"}
	corsConfig.AllowHeaders = []string{"Origin", "Content-Type", "Authorization", "X-Request-ID"}
	corsConfig.ExposeHeaders = []string{"X-Request-ID"}
	corsConfig.MaxAge = 12 * time.Hour
	router.Use(cors.New(corsConfig))

	// Apply request ID middleware globally so every response includes metadata.
	router.Use(response.RequestIDMiddleware())

	// Apply brotli middleware globally.
	router.Use(middleware.Brotli())

	// Health check.
	router.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, gin.H{"status": "ok"})
	})

	// Rate limiter for login attempts (30 per minute per IP).
	loginLimiter := middleware.NewRateLimiter(30, time.Minute)

	// ─── Public routes ─────────────────────────────────────────────────
	router.POST("/users/new", handlers.Auth.Register)
	router.POST("/users/loginUser", loginLimiter.Middleware(), handlers.Auth.Login)

	// ─── Authenticated routes ──────────────────────────────────────────
	api := router.Group("/")
	api.Use(middleware.RequireAuth(authService))
	{
		// Users
		api.GET("/users/alls", handlers.User.ListAll)
		api.GET("/users/profesores/all", handlers.User.ListTeachers)
		api.GET("/users/paginated-by-type", handlers.User.ListByType)
		api.GET("/users/search-by-type", handlers.User.SearchByType)
		api.POST("/users/paginated", handlers.User.ListKeyset)
		api.POST("/users/paginated/filtered", handlers.User.ListKeyset)
		api.GET("/users/available/:id", handlers.User.Contacts)
		api.PUT("/users/:id", handlers.User.UpdatePassword)
		api.PUT("/update-profile", handlers.User.UpdateProfile)

		// Enrollment and teaching relations
		api.POST("/users/asignar-materia", handlers.Enrollment.Assign)
		api.GET("/users/:id/materias", handlers.Enrollment.SubjectsOfUser)
		api.GET("/users/:id/profesor", handlers.Enrollment.SubjectsOfUser)

		// Careers
		api.GET("/carer/all", handlers.Career.GetAll)
		api.POST("/carer/new", handlers.Career.Create)
		api.PUT("/career/:id/edit", handlers.Career.Update)
		api.DELETE("/career/:id/delete", handlers.Career.Delete)

		// Subjects and grades
		api.POST("/materia/new", handlers.Subject.Create)
		api.GET("/materia/:id/all", handlers.Subject.ListByCareer)
		api.PUT("/materia/:id/edit", handlers.Subject.Update)
		api.DELETE("/materia/:id/delete", handlers.Subject.Delete)
		api.POST("/materia/:id/notas", handlers.Subject.SaveGrades)
		api.GET("/materia/:id/estudiantes", handlers.Subject.StudentsOfSubject)
		api.GET("/materia/:id/:user_id", handlers.Subject.GetGrade)
		api.GET("/asignadas", handlers.Subject.TeachingAssignments)

		// Payments
		api.GET("/payment/all", handlers.Payment.ListAll)
		api.POST("/payment/new", handlers.Payment.Create)
		api.GET("/payment/user/:username", handlers.Payment.ListByUsername)
		api.GET("/payment/pending", handlers.Payment.Pending)
		api.GET("/payment/search", handlers.Payment.Search)
		api.POST("/payment/paginated", handlers.Payment.ListKeyset)
		api.PUT("/payment/:id", handlers.Payment.Update)
		api.DELETE("/payment/:id", handlers.Payment.Delete)

		// Messaging
		api.POST("/messages/send", handlers.Message.Send)
		api.GET("/messages/:user_id", handlers.Message.ListForUser)
		api.GET("/messages/available/:id", handlers.User.Contacts)
		api.DELETE("/messages/:msg_id", handlers.Message.Delete)
		api.DELETE("/messages/chat/:user_id/:other_id", handlers.Message.DeleteChat)

		// Notifications
		api.GET("/notifications/:user_id", handlers.Notification.List)
		api.POST("/notifications/marcar-leida", handlers.Notification.MarkRead)
		api.POST("/notifications/marcar-tipo-leido", handlers.Notification.MarkCategoryRead)
	}

	return router
}
