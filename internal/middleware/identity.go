package middleware

import (
	"fmt"

	"github.com/labstack/echo/v4"
)

// contextUserID renders the authenticated user's identifier for rate-limit
// keys.  JWTAuth stores the subject claim under "user_id"; unauthenticated
// requests share the "guest" bucket.
func contextUserID(c echo.Context) string {
	switch v := c.Get("user_id").(type) {
	case string:
		if v != "" {
			return v
		}
	case float64:
		return fmt.Sprintf("%.0f", v)
	case uint64:
		return fmt.Sprintf("%d", v)
	}
	return "guest"
}
