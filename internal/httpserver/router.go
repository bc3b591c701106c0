package httpserver

import (
	"context"
	"errors"
	"log"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"

	"shopd/internal/domain"
	itemsvc "shopd/internal/service/item"
)

// UserService covers signup/login flows and token resolution.
type UserService interface {
	Signup(ctx context.Context, username, password string) (*domain.User, error)
	Login(ctx context.Context, username, password string) (*domain.User, *domain.Cart, error)
	ResolveToken(ctx context.Context, token string) (*domain.User, error)
	List(ctx context.Context) ([]domain.User, error)
}

type ItemService interface {
	Create(ctx context.Context, in itemsvc.CreateInput) (*domain.Item, error)
	List(ctx context.Context) ([]domain.Item, error)
}

type CartService interface {
	AddItem(ctx context.Context, userID, itemID int64, quantity int) (*domain.Cart, error)
	ViewForUser(ctx context.Context, userID int64) (*domain.Cart, error)
	ListAll(ctx context.Context) ([]domain.Cart, error)
}

type OrderService interface {
	Place(ctx context.Context, userID, cartID int64) (*domain.Order, error)
	ListForUser(ctx context.Context, userID int64) ([]domain.Order, error)
}

// Deps bundles the services the router needs.
type Deps struct {
	UserSvc  UserService
	ItemSvc  ItemService
	CartSvc  CartService
	OrderSvc OrderService
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, deps Deps, opts Options) (*gin.Engine, error) {
	if deps.UserSvc == nil || deps.ItemSvc == nil || deps.CartSvc == nil || deps.OrderSvc == nil {
		return nil, errors.New("httpserver: missing service dependency")
	}

	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())

	corsCfg := cors.DefaultConfig()
	if len(opts.CORSOrigins) == 1 && opts.CORSOrigins[0] == "*" {
		corsCfg.AllowAllOrigins = true
	} else if len(opts.CORSOrigins) > 0 {
		corsCfg.AllowOrigins = opts.CORSOrigins
	} else {
		corsCfg.AllowAllOrigins = true
	}
	corsCfg.AllowHeaders = append(corsCfg.AllowHeaders, "Authorization")
	router.Use(cors.New(corsCfg))

	if opts.RequestTimeout > 0 {
		router.Use(requestTimeout(opts.RequestTimeout))
	}

	router.GET("/health", healthHandler)
	router.GET("/readyz", readyHandler(db))

	h := handlers{logger: logger, deps: deps}

	router.POST("/users", h.signup)
	router.POST("/users/login", h.login)
	router.GET("/users", h.listUsers)

	router.POST("/items", h.createItem)
	router.GET("/items", h.listItems)

	authed := router.Group("/", authMiddleware(deps.UserSvc))
	authed.POST("/carts", h.addToCart)
	authed.GET("/carts", h.listCarts)
	authed.GET("/carts/user", h.viewCart)
	authed.POST("/orders", h.placeOrder)
	authed.GET("/orders", h.listOrders)

	return router, nil
}

// requestTimeout bounds every handler by a deadline so a stalled store
// surfaces as an error instead of a hung request.
func requestTimeout(d time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), d)
		defer cancel()
		c.Request = c.Request.WithContext(ctx)
		c.Next()
	}
}

type handlers struct {
	logger *log.Logger
	deps   Deps
}
