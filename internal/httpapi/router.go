package httpapi

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "session_id"
	sessionKey    = "session_id"
)

// NewRouter exposes h under the storefront routes. Session cookies live for sessionTTL.
func NewRouter(h *Handler, sessionTTL time.Duration) *gin.Engine {
	r := gin.New()
	r.Use(gin.Recovery(), requestLogger())

	r.GET("/sys/health", func(c *gin.Context) { c.JSON(http.StatusOK, gin.H{"status": "UP"}) })

	s := r.Group("/", sessionMiddleware(sessionTTL))
	{
		s.GET("/bag", h.GetBag)
		s.POST("/bag/add/:product_id", h.AddToBag)
		s.POST("/bag/adjust/:product_id", h.AdjustBag)
		s.POST("/bag/remove/:product_id", h.RemoveFromBag)
		s.POST("/checkout", h.Checkout)
		s.GET("/checkout/success/:order_number", h.CheckoutSuccess)
	}

	return r
}

// sessionMiddleware issues a new session cookie unless the request carries a valid one.
func sessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		sessionID, err := c.Cookie(sessionCookie)
		if err != nil || uuid.Validate(sessionID) != nil {
			sessionID = uuid.NewString()
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(sessionCookie, sessionID, int(ttl.Seconds()), "/", "", false, true)
		c.Set(sessionKey, sessionID)

		c.Next()
	}
}

func requestLogger() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()

		c.Next()

		slog.Info("HTTP request",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"status", c.Writer.Status(),
			"duration", time.Since(start))
	}
}
