package api

import (
	"github.com/labstack/echo-contrib/echoprometheus"
	"github.com/labstack/echo/v4"
	echomiddleware "github.com/labstack/echo/v4/middleware"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"go.mongodb.org/mongo-driver/mongo"

	"github.com/danang-express/delivery-system/internal/api/handler"
	"github.com/danang-express/delivery-system/internal/api/middleware"
	"github.com/danang-express/delivery-system/internal/core/domain"
	"github.com/danang-express/delivery-system/internal/core/ports"
)

// Dependencies carries everything the router needs to register routes.
type Dependencies struct {
	Auth        ports.AuthService
	Deliveries  ports.DeliveryService
	Zones       ports.ZoneService
	Assignments ports.AssignmentService
	Status      ports.StatusService
	Routes      ports.RouteService
	Dispatcher  handler.ReportDispatcher

	Mongo     *mongo.Database
	Redis     *redis.Client
	JWTSecret string
	Logger    zerolog.Logger
}

// NewRouter builds and returns the Echo instance with all routes registered.
func NewRouter(deps Dependencies) *echo.Echo {
	e := echo.New()
	e.HideBanner = true
	e.Validator = handler.NewValidator()
	e.HTTPErrorHandler = NewHTTPErrorHandler(deps.Logger)

	// --- Global middleware ---
	e.Use(echomiddleware.Recover())
	e.Use(echomiddleware.RequestID())
	e.Use(echoprometheus.NewMiddleware("fulfillment"))

	// --- Handlers ---
	authHandler := handler.NewAuthHandler(deps.Auth)
	deliveryHandler := handler.NewDeliveryHandler(deps.Deliveries)
	transportHandler := handler.NewTransportHandler(deps.Zones, deps.Assignments, deps.Deliveries)
	statusHandler := handler.NewStatusHandler(deps.Status, deps.Dispatcher)
	routeHandler := handler.NewRouteHandler(deps.Routes)

	authRequired := middleware.Auth(deps.JWTSecret)
	operatorOnly := middleware.RBAC(domain.RoleOperator)
	anyRole := middleware.RBAC(domain.RoleOperator, domain.RoleCourier)
	courierOnly := middleware.RBAC(domain.RoleCourier)

	// --- Auth routes ---
	e.POST("/auth/register", authHandler.Register)
	e.POST("/auth/login", authHandler.Login)

	// --- Health probes and metrics (no auth required) ---
	healthHandler := handler.NewHealthHandler()
	readinessHandler := handler.NewReadinessHandler(deps.Mongo, deps.Redis)
	e.GET("/health", healthHandler.Liveness)
	e.GET("/health/ready", readinessHandler.Readiness)
	e.GET("/metrics", echoprometheus.NewHandler())

	// --- Fulfillment API ---
	v1 := e.Group("/v1", authRequired)

	v1.POST("/deliveries", deliveryHandler.Create, operatorOnly)
	v1.GET("/deliveries", deliveryHandler.List, anyRole)
	v1.GET("/deliveries/:id", deliveryHandler.Get, anyRole)
	v1.PATCH("/deliveries/:id/status", statusHandler.Update, anyRole)

	v1.GET("/transport-orders", transportHandler.TransportOrders, operatorOnly)
	v1.POST("/couriers/:courier_id/assignments", transportHandler.Assign, operatorOnly)

	v1.POST("/status-reports", statusHandler.Receive, courierOnly)
	v1.POST("/status-reports/batch", statusHandler.ReceiveBatch, courierOnly)

	v1.POST("/routes", routeHandler.Resolve, operatorOnly)

	return e
}
