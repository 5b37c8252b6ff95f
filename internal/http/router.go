package http

import (
	"log/slog"

	"github.com/gin-gonic/gin"
	"github.com/logixshuvo/parcelhub/internal/auth"
	"github.com/logixshuvo/parcelhub/internal/config"
	"github.com/logixshuvo/parcelhub/internal/http/handlers"
	"github.com/logixshuvo/parcelhub/internal/http/middlewares"
	"github.com/logixshuvo/parcelhub/internal/observability"
	"github.com/logixshuvo/parcelhub/internal/payments"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
)

const maxBodyBytes = 1 << 20 // 1 MiB is plenty for any of our payloads

// Deps carries everything the route table needs. Tests swap in memory
// repos and fakes; main wires the real stores.
type Deps struct {
	Cfg config.Config
	Log *slog.Logger
	JWT *auth.Manager

	Directory handlers.Directory
	Ledger    handlers.Ledger
	Reviews   handlers.ReviewBook
	Payments  handlers.PaymentBook
	Gateway   payments.IntentCreator

	Limiter  middlewares.Limiter
	Prom     *observability.Prom
	Gatherer prometheus.Gatherer
	Ping     func() error
	Tracing  bool
}

func NewRouter(d Deps) *gin.Engine {
	if d.Cfg.Env != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	r := gin.New()

	// middleware

	r.Use(gin.Recovery())
	r.Use(middlewares.RequestID())
	r.Use(middlewares.RequestLogger(d.Log))
	r.Use(middlewares.SecurityHeaders())
	r.Use(middlewares.CORSMiddleware(d.Cfg.CORSAllowedOrigins))
	r.Use(middlewares.RequireJSON())
	r.Use(middlewares.MaxBodyBytes(maxBodyBytes))

	if d.Tracing {
		r.Use(otelgin.Middleware("parcelhub"))
	}

	if d.Prom != nil {
		r.Use(d.Prom.GinHandleMiddleware())
	}

	if d.Gatherer != nil {
		r.GET("/metrics", gin.WrapH(promhttp.HandlerFor(d.Gatherer, promhttp.HandlerOpts{})))
	}

	// health

	health := handlers.NewHealthHandler(d.Ping)
	r.GET("/healthz", health.Healthz)
	r.GET("/readyz", health.Readyz)

	// gates

	authGate := middlewares.NewAuthMiddleware(d.JWT)
	roleGate := middlewares.NewRoleGate(d.Directory)
	requireAuth := authGate.RequireAuth()

	// public endpoints get an IP-keyed rate limit
	limited := func(c *gin.Context) { c.Next() }
	if d.Limiter != nil {
		limited = middlewares.RateLimit(d.Limiter, middlewares.KeyByIP)
	}

	// handlers

	tokensHandler := handlers.NewTokenHandler(d.JWT)
	usersHandler := handlers.NewUsersHandler(d.Directory)
	parcelsHandler := handlers.NewParcelsHandler(d.Ledger, d.Directory)
	reviewsHandler := handlers.NewReviewsHandler(d.Reviews)
	paymentsHandler := handlers.NewPaymentsHandler(d.Payments, d.Gateway)
	statsHandler := handlers.NewStatsHandler(d.Directory, d.Ledger, d.Payments)

	// token service
	r.POST("/jwt", limited, tokensHandler.Issue)

	// identity directory
	r.POST("/users", limited, usersHandler.Register)
	r.GET("/users", requireAuth, roleGate.RequireAdmin(), usersHandler.List)
	r.GET("/users/admin/:email", requireAuth, middlewares.RequireSelf("email"), usersHandler.IsAdmin)
	r.GET("/users/deliveryman/:email", requireAuth, middlewares.RequireSelf("email"), usersHandler.IsDeliveryman)
	r.PATCH("/users/role/:id", requireAuth, roleGate.RequireAdmin(), usersHandler.ChangeRole)
	r.DELETE("/users/:id", requireAuth, roleGate.RequireAdmin(), usersHandler.Delete)

	// parcel ledger
	r.POST("/bookedParcels", parcelsHandler.Book)
	r.GET("/bookedParcels", requireAuth, parcelsHandler.ListAll)
	r.PATCH("/bookedParcels/:id", parcelsHandler.AdminUpdate)
	r.GET("/myassignedparcels", requireAuth, parcelsHandler.MyAssigned)
	r.PATCH("/updateStatus/:id", requireAuth, parcelsHandler.UpdateStatus)
	r.GET("/parcels", parcelsHandler.ListByOwner)
	r.PUT("/parcels/:id", parcelsHandler.Replace)
	r.DELETE("/parcels/:id", requireAuth, parcelsHandler.Cancel)
	r.GET("/parcelsDelivered/:deliveryManId", requireAuth, parcelsHandler.DeliveredCount)

	// reviews
	r.POST("/reviews", requireAuth, reviewsHandler.Create)
	r.GET("/reviews/average/:deliveryManId", requireAuth, reviewsHandler.Average)
	r.GET("/reviews/:deliveryManId", requireAuth, reviewsHandler.ListByDeliveryman)

	// payments
	r.POST("/create-payment-intent", paymentsHandler.CreateIntent)
	r.POST("/payments", paymentsHandler.Record)
	r.GET("/payments", requireAuth, roleGate.RequireAdmin(), paymentsHandler.List)
	r.GET("/payments/total-revenue", requireAuth, paymentsHandler.TotalRevenue)
	r.PATCH("/updatePaymentStatus/:id", requireAuth, parcelsHandler.UpdatePaymentStatus)

	// reporting
	r.GET("/bookingStats", requireAuth, statsHandler.BookingStats)
	r.GET("/admin/stats", requireAuth, roleGate.RequireAdmin(), statsHandler.AdminStats)

	return r
}
