package v1

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"github.com/healthease/healthease-api/internal/config"
	"github.com/healthease/healthease-api/pkg/auth"
	"github.com/healthease/healthease-api/pkg/metrics"
)

// Handlers bundles everything the router needs.
type Handlers struct {
	Auth        *AuthHandler
	Profile     *ProfileHandler
	Appointment *AppointmentHandler
	Report      *ReportHandler
	SOS         *SOSHandler
	Directory   *DirectoryHandler
}

func NewRouter(
	cfg *config.Config,
	h Handlers,
	jwtManager *auth.JWTManager,
	collector *metrics.Collector,
	log *zap.Logger,
) *gin.Engine {
	if cfg.App.Environment == "production" {
		gin.SetMode(gin.ReleaseMode)
	}

	router := gin.New()
	router.Use(gin.Recovery())
	router.Use(RequestID())
	router.Use(RequestLogger(log))
	router.Use(Metrics(collector))
	router.Use(CORS(cfg.CORS))
	router.Use(RateLimit(cfg.RateLimit))

	router.GET("/healthz", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{
			"status":    "ok",
			"service":   cfg.App.Name,
			"version":   cfg.App.Version,
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
	})
	router.GET("/metrics", gin.WrapH(metrics.MetricsHandler()))

	api := router.Group("/api/v1")

	// Session exchange and refresh are the only unauthenticated endpoints.
	api.POST("/auth/session", h.Auth.ExchangeSession)
	api.POST("/auth/refresh", h.Auth.RefreshToken)

	authed := api.Group("")
	authed.Use(Authenticate(jwtManager))
	{
		authed.POST("/auth/logout", h.Auth.Logout)

		authed.GET("/profile", h.Profile.GetProfile)
		authed.PUT("/profile", h.Profile.UpdateProfile)

		authed.POST("/appointments", h.Appointment.BookAppointment)
		authed.GET("/appointments", h.Appointment.ListAppointments)
		authed.GET("/appointments/:id", h.Appointment.GetAppointment)
		authed.POST("/appointments/:id/cancel", h.Appointment.CancelAppointment)

		authed.POST("/reports/upload", h.Report.UploadReports)
		authed.GET("/reports", h.Report.ListReports)
		authed.GET("/reports/:id", h.Report.GetReport)

		authed.POST("/sos", h.SOS.TriggerAlert)
		authed.GET("/sos/active", h.SOS.ListActiveAlerts)

		authed.GET("/doctors", h.Directory.ListDoctors)
		authed.GET("/doctors/:id", h.Directory.GetDoctor)
		authed.GET("/facilities/nearby", h.Directory.NearbyFacilities)
		authed.GET("/medicines", h.Directory.SearchMedicines)
	}

	return router
}
