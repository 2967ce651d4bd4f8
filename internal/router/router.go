package router

import (
	"golang.org/x/time/rate"

	"github.com/gin-gonic/gin"

	"github.com/fsfcare/care-api/internal/handler"
	accesscodehandler "github.com/fsfcare/care-api/internal/handler/accesscode"
	attendancehandler "github.com/fsfcare/care-api/internal/handler/attendance"
	authhandler "github.com/fsfcare/care-api/internal/handler/auth"
	caresheethandler "github.com/fsfcare/care-api/internal/handler/caresheet"
	patienthandler "github.com/fsfcare/care-api/internal/handler/patient"
	questionhandler "github.com/fsfcare/care-api/internal/handler/question"
	userhandler "github.com/fsfcare/care-api/internal/handler/user"
	"github.com/fsfcare/care-api/internal/middleware"
	"github.com/fsfcare/care-api/internal/model"
	"github.com/fsfcare/care-api/pkg/metrics"
)

type Config struct {
	RateLimit   rate.Limit
	RateBurst   int
	CORSConfig  middleware.CORSConfig
	SizeLimit   middleware.SizeLimitConfig
	Timeout     middleware.TimeoutConfig
	MetricsPath string
}

type Router struct {
	engine *gin.Engine
}

func NewRouter(
	auth *middleware.AuthMiddleware,
	authH *authhandler.Handler,
	accessCodeH *accesscodehandler.Handler,
	patientH *patienthandler.Handler,
	attendanceH *attendancehandler.Handler,
	careSheetH *caresheethandler.Handler,
	questionH *questionhandler.Handler,
	userH *userhandler.Handler,
	h *handler.Handler,
	m *metrics.Metrics,
	config Config,
) *Router {
	gin.SetMode(gin.ReleaseMode)

	engine := gin.New()

	rateLimiter := middleware.NewRateLimiter(middleware.RateLimiterConfig{
		Rate:  config.RateLimit,
		Burst: config.RateBurst,
	})

	engine.Use(
		middleware.Recovery(),
		middleware.RequestID(),
		middleware.Logger(),
		middleware.ErrorHandler(),
		middleware.Metrics(m),
		middleware.CORS(config.CORSConfig),
		middleware.SizeLimit(config.SizeLimit),
		middleware.Timeout(config.Timeout),
		rateLimiter.RateLimit(),
	)

	engine.GET("/health/live", h.LivenessCheck)
	engine.GET("/health/ready", h.ReadinessCheck)
	engine.GET(config.MetricsPath, h.MetricsHandler)

	v1 := engine.Group("/api/v1")

	// Open endpoints: account creation and login.
	authH.RegisterRoutes(v1)

	// Authenticated but roleless accounts can only inspect their session and
	// redeem a code.
	authenticated := v1.Group("")
	authenticated.Use(auth.Authenticate())
	authH.RegisterProtectedRoutes(authenticated)
	accessCodeH.RegisterRedeemRoute(authenticated)
	userH.RegisterRoutes(authenticated)

	// Role-gated clinical surface.
	active := v1.Group("")
	active.Use(auth.Authenticate(), auth.RequireActiveRole())
	patientH.RegisterRoutes(active)
	attendanceH.RegisterRoutes(active)
	careSheetH.RegisterRoutes(active)
	questionH.RegisterRoutes(active)

	// Code management is admin only.
	admin := v1.Group("")
	admin.Use(auth.Authenticate(), auth.RequireRole(model.RoleAdmin))
	accessCodeH.RegisterAdminRoutes(admin)

	return &Router{engine: engine}
}

func (r *Router) Engine() *gin.Engine {
	return r.engine
}
