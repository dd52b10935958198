package httpserver

import (
	"context"
	"log"
	"net/http"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"

	"vendora/internal/service/cart"
	"vendora/internal/service/curation"
	"vendora/internal/service/gate"
	"vendora/internal/service/view"
)

// Deps carries the services the routes depend on.
type Deps struct {
	GateSvc     *gate.Service
	CurationSvc *curation.Service
	CartSvc     *cart.Service
	ViewCounter *view.Counter
	SessionTTL  time.Duration
}

// buildRouter wires routes for the API.
func buildRouter(logger *log.Logger, db *pgxpool.Pool, rdb *redis.Client, deps Deps) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	router := gin.New()
	router.Use(gin.LoggerWithWriter(logger.Writer()), gin.Recovery())
	router.Use(cors.Default())

	router.GET("/healthz", healthHandler)
	router.GET("/readyz", readyHandler(db, rdb))
	router.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := router.Group("/api")
	api.Use(sessionMiddleware(deps.SessionTTL))
	{
		api.GET("/landing", landingHandler(deps.CurationSvc))
		api.GET("/marketplace", marketplaceHandler(deps.CurationSvc))
		api.GET("/stores/:slug", storefrontHandler(deps.GateSvc, deps.ViewCounter))

		api.GET("/cart", getCartHandler(deps.CartSvc))
		api.POST("/cart/items", addCartItemHandler(deps.CartSvc))
		api.PATCH("/cart/items/:productId", setCartQuantityHandler(deps.CartSvc))
		api.DELETE("/cart/items/:productId", removeCartItemHandler(deps.CartSvc))
		api.DELETE("/cart", clearCartHandler(deps.CartSvc))
		api.PUT("/cart/coins", setUseCoinsHandler(deps.CartSvc))
	}

	return router
}

func healthHandler(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func readyHandler(db *pgxpool.Pool, rdb *redis.Client) gin.HandlerFunc {
	return func(c *gin.Context) {
		ctx, cancel := context.WithTimeout(c.Request.Context(), time.Second)
		defer cancel()

		if db == nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not configured"})
			return
		}
		if err := db.Ping(ctx); err != nil {
			c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "db not reachable"})
			return
		}
		if rdb != nil {
			if err := rdb.Ping(ctx).Err(); err != nil {
				c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable", "reason": "redis not reachable"})
				return
			}
		}
		c.JSON(http.StatusOK, gin.H{"status": "ready"})
	}
}
