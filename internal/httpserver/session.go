package httpserver

import (
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "vendora_session"
	sessionCtxKey = "vendora.sessionID"
)

// sessionMiddleware makes sure every API request carries a session id,
// issuing an anonymous uuid cookie on first contact. The id keys the
// shopper's cart, coin toggle and view markers.
func sessionMiddleware(ttl time.Duration) gin.HandlerFunc {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	maxAge := int(ttl / time.Second)
	return func(c *gin.Context) {
		id, err := c.Cookie(sessionCookie)
		if err != nil || id == "" {
			id = uuid.NewString()
			c.SetCookie(sessionCookie, id, maxAge, "/", "", false, true)
		}
		c.Set(sessionCtxKey, id)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	id, _ := c.Get(sessionCtxKey)
	s, _ := id.(string)
	return s
}
