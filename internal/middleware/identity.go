package middleware

import (
	"github.com/labstack/echo/v4"
)

// currentUserID reads the identifier stashed by JWTAuth.  Anonymous
// diners hitting the public booking routes come back as "anon", which
// keeps rate-limit keys stable for unauthenticated traffic.
func currentUserID(c echo.Context) string {
	if v := c.Get("user_id"); v != nil {
		if s, ok := v.(string); ok && s != "" {
			return s
		}
	}
	return "anon"
}
