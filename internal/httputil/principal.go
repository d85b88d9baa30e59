package httputil

import (
	"github.com/gin-gonic/gin"

	principalDomain "github.com/ngoinfo/copilot-gateway/internal/principal/domain"
)

// principalContextKey is where the identity middleware stores the principal.
const principalContextKey = "principal"

// SetPrincipal stores the authenticated principal on the request context.
func SetPrincipal(c *gin.Context, principal principalDomain.Principal) {
	c.Set(principalContextKey, principal)
}

// PrincipalFromContext returns the authenticated principal, if any.
func PrincipalFromContext(c *gin.Context) (principalDomain.Principal, bool) {
	value, exists := c.Get(principalContextKey)
	if !exists {
		return principalDomain.Principal{}, false
	}
	principal, ok := value.(principalDomain.Principal)
	return principal, ok
}
