package routes

import (
	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/BruksfildServices01/lab-scheduler/internal/config"
	domain "github.com/BruksfildServices01/lab-scheduler/internal/domain/appointment"
	"github.com/BruksfildServices01/lab-scheduler/internal/handlers"
	"github.com/BruksfildServices01/lab-scheduler/internal/middleware"
	ucAppointment "github.com/BruksfildServices01/lab-scheduler/internal/usecase/appointment"
)

// Collection paths. /agendamentos is the path the web client calls.
var collectionPaths = []string{"/appointments", "/agendamentos"}

func RegisterRoutes(
	r *gin.Engine,
	repo domain.Repository,
	auditor ucAppointment.Auditor,
	cfg *config.Config,
	log *zap.Logger,
	checks ...handlers.HealthCheck,
) {

	// ======================================================
	// 🌍 MIDDLEWARE GLOBAL
	// ======================================================
	r.Use(middleware.CORSMiddleware(cfg.AllowedOrigin))
	r.Use(middleware.NewRateLimiter(cfg.RateLimitPerMin, cfg.RateLimitBurst, log).Middleware())

	// ======================================================
	// 🧠 USE CASES (APPOINTMENTS)
	// ======================================================
	listUC := ucAppointment.NewListAppointments(repo)
	getUC := ucAppointment.NewGetAppointment(repo)
	createUC := ucAppointment.NewCreateAppointment(repo, auditor)
	updateUC := ucAppointment.NewUpdateAppointment(repo, auditor)
	patchUC := ucAppointment.NewPatchAppointment(repo, auditor)
	deleteUC := ucAppointment.NewDeleteAppointment(repo, auditor)

	// ======================================================
	// 🧩 HANDLERS
	// ======================================================
	appointmentHandler := handlers.NewAppointmentHandler(
		listUC,
		getUC,
		createUC,
		updateUC,
		patchUC,
		deleteUC,
		log,
	)
	healthHandler := handlers.NewHealthHandler(checks...)

	// ======================================================
	// 🌐 ROTAS
	// ======================================================
	r.GET("/", healthHandler.Root)
	r.GET("/health", healthHandler.Health)

	var writeGuard []gin.HandlerFunc
	if cfg.AuthEnabled() {
		writeGuard = append(writeGuard, middleware.AuthMiddleware(cfg.JWTSecret))
	}

	for _, path := range collectionPaths {
		group := r.Group(path)
		{
			group.GET("", appointmentHandler.List)
			group.GET("/:id", appointmentHandler.Get)
		}

		writes := group.Group("", writeGuard...)
		{
			writes.POST("", appointmentHandler.Create)
			writes.PUT("/:id", appointmentHandler.Update)
			writes.PATCH("/:id", appointmentHandler.Patch)
			writes.DELETE("/:id", appointmentHandler.Delete)
		}
	}
}
