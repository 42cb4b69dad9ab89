package auth

import "github.com/gin-gonic/gin"

// Principal is the authenticated actor performing a request.
// It is built from validated JWT claims and passed explicitly into
// service calls; nothing in the core reads ambient session state.
type Principal struct {
	ID    string
	Email string
	Role  string
}

// GetPrincipal returns the authenticated principal stored by the
// auth middleware, or ok=false when the request is unauthenticated.
func GetPrincipal(c *gin.Context) (Principal, bool) {
	v, ok := c.Get("principal")
	if !ok {
		return Principal{}, false
	}
	p, ok := v.(Principal)
	return p, ok
}

// GetUserID returns the authenticated user's ID or empty string.
func GetUserID(c *gin.Context) string {
	p, _ := GetPrincipal(c)
	return p.ID
}
