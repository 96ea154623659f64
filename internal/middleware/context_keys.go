package middleware

import "github.com/gin-gonic/gin"

// userKey is the key used to store the authenticated username in the context.
// Using a custom type prevents collisions.
const userKey = contextKey("user")

// GetUserFromContext retrieves the authenticated username from the Gin context.
// It returns the username and a boolean indicating if it was found.
func GetUserFromContext(c *gin.Context) (string, bool) {
	userVal, exists := c.Get(string(userKey))
	if !exists {
		// check in the request context as well
		ctxVal := c.Request.Context().Value(userKey)
		if ctxVal != nil {
			return ctxVal.(string), true
		}
		return "", false
	}

	user, ok := userVal.(string)
	if !ok {
		return "", false
	}

	return user, true
}
