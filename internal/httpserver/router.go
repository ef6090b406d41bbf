package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"fundraiser-store/internal/checkout"
	"fundraiser-store/internal/domain"
	"fundraiser-store/internal/mailer"
	"fundraiser-store/internal/payment"
	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
)

type SessionIssuer interface {
	Issue() (token, sessionID string, expiresAt time.Time, err error)
	Refresh(token string) (string, string, time.Time, error)
	Validate(token string) (string, error)
	TTL() time.Duration
}

type ProductCatalog interface {
	List(ctx context.Context) ([]domain.Product, error)
	Get(ctx context.Context, id string) (*domain.Product, error)
	Select(ctx context.Context, productID string, quantities map[string]int, jerseyName string) (domain.CartLine, error)
}

type CartStore interface {
	Load(ctx context.Context, sessionID string) (domain.Cart, error)
	AddLine(ctx context.Context, sessionID string, line domain.CartLine) (domain.Cart, error)
	RemoveLine(ctx context.Context, sessionID, productID, jerseyName string) (domain.Cart, error)
	Clear(ctx context.Context, sessionID string) error
}

type ConfirmationSender interface {
	SendConfirmation(ctx context.Context, req mailer.ConfirmationRequest) (mailer.SendResult, error)
}

type PendingLister interface {
	ListUnresolved(ctx context.Context) ([]domain.PendingOrder, error)
}

type OrderReader interface {
	Get(ctx context.Context, id string) (*domain.OrderRecord, error)
}

// Deps groups the services behind the HTTP API.
type Deps struct {
	Sessions  SessionIssuer
	Products  ProductCatalog
	Carts     CartStore
	Bridges   *checkout.Registry
	Payments  payment.Gateway
	Submitter checkout.OrderSubmitter
	Mailer    ConfirmationSender
	Pending   PendingLister
	Orders    OrderReader

	AdminToken   string
	CORSOrigins  []string
	SecureCookie bool
	ReadyChecks  map[string]ReadyCheck
}

func (d Deps) validate() error {
	switch {
	case d.Sessions == nil:
		return errors.New("httpserver: sessions service is required")
	case d.Products == nil:
		return errors.New("httpserver: product catalog is required")
	case d.Carts == nil:
		return errors.New("httpserver: cart store is required")
	case d.Payments == nil || d.Submitter == nil:
		return errors.New("httpserver: payment gateway and submitter are required")
	case d.Mailer == nil:
		return errors.New("httpserver: mailer is required")
	}
	return nil
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps) (*gin.Engine, error) {
	if err := deps.validate(); err != nil {
		return nil, err
	}
	if deps.Bridges == nil {
		deps.Bridges = checkout.NewRegistry(checkout.DefaultBridgeTTL)
	}
	checks := make(map[string]ReadyCheck, len(deps.ReadyChecks)+1)
	for name, check := range deps.ReadyChecks {
		checks[name] = check
	}
	if db != nil {
		checks["db"] = db.Ping
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.New(cors.Config{
		AllowOrigins:     deps.CORSOrigins,
		AllowMethods:     []string{"GET", "POST", "DELETE", "OPTIONS"},
		AllowHeaders:     []string{"Origin", "Content-Type", "Authorization"},
		AllowCredentials: true,
		MaxAge:           12 * time.Hour,
	}))

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(checks))

	h := &handlers{deps: deps, logger: logger}

	api := router.Group("/api")
	api.POST("/session", h.issueSession)
	api.GET("/products", h.listProducts)
	api.GET("/products/:productId", h.getProduct)
	api.POST("/send-order-confirmation", h.sendConfirmation)

	sess := api.Group("", sessionMiddleware(deps.Sessions, deps.SecureCookie))
	sess.POST("/products/:productId/selection", h.selectProduct)
	sess.GET("/cart", h.getCart)
	sess.POST("/cart/lines", h.addCartLine)
	sess.DELETE("/cart/lines/:productId", h.removeCartLine)
	sess.DELETE("/cart", h.clearCart)
	sess.POST("/checkout/validate", h.validateCheckout)
	sess.POST("/checkout/orders", h.createCheckoutOrder)
	sess.POST("/checkout/orders/:orderId/capture", h.captureCheckoutOrder)

	admin := api.Group("/admin", adminMiddleware(deps.AdminToken))
	admin.GET("/pending-orders", h.listPendingOrders)
	admin.GET("/orders/:orderId", h.getOrder)

	return router, nil
}

type handlers struct {
	deps   Deps
	logger *log.Logger
}
