package httpserver

import (
	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	sessionCookie = "aswaq_session"
	sessionCtxKey = "session"

	sessionCookieMaxAge = 365 * 24 * 60 * 60
)

// sessionMiddleware assigns every caller a stable session id carried
// in a cookie. The id scopes the cart and order-tracking keys in the
// durable store.
func sessionMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		sid, err := c.Cookie(sessionCookie)
		if err != nil || sid == "" {
			sid = uuid.NewString()
			c.SetCookie(sessionCookie, sid, sessionCookieMaxAge, "/", "", false, true)
		}
		c.Set(sessionCtxKey, sid)
		c.Next()
	}
}

func sessionID(c *gin.Context) string {
	v, _ := c.Get(sessionCtxKey)
	sid, _ := v.(string)
	return sid
}
