package middleware

import (
	"errors"
	"log"
	"net/http"
	"strings"

	"membership-app/database"
	"membership-app/internal/domain/access"

	"github.com/gin-gonic/gin"
)

// ProfileKey is the gin context key under which the gate stores the
// resolved access profile for downstream handlers.
const ProfileKey = "access_profile"

// AccessGate resolves the caller's access profile fresh and runs the
// two-layer gate (status, then role) against the logical path. Runs
// after AuthMiddleware; unauthenticated requests were already turned
// into the login redirect there, matching the gate's first rule.
//
// The gate never infers a per-role destination: a role mismatch always
// redirects to the forbidden page.
func AccessGate(table access.RouteTable) gin.HandlerFunc {
	return func(c *gin.Context) {
		userID := c.GetUint("user_id")
		if userID == 0 {
			// Auth middleware should have aborted already; treat a
			// missing identity as unauthenticated rather than guessing.
			unauthenticated(c, "Unauthorized")
			return
		}

		resolution := access.Missing()
		p, err := access.ResolveProfile(database.DB, userID)
		switch {
		case errors.Is(err, access.ErrProfileNotFound):
			// Backend consistency fault, not a user action: log it
			// distinctly, route it like a missing session.
			log.Printf("access: authenticated user %d has no access profile", userID)
		case err != nil:
			c.AbortWithStatusJSON(http.StatusInternalServerError, gin.H{"error": "Failed to resolve access profile"})
			return
		default:
			resolution = access.Ready(p)
		}

		path := GatePath(c)
		decision := access.Evaluate(true, resolution, path, table)
		switch decision.Kind {
		case access.DecisionAllow:
			c.Set(ProfileKey, p)
			c.Next()
		case access.DecisionRedirect:
			status := http.StatusForbidden
			if decision.Target == access.PathLogin {
				status = http.StatusUnauthorized
			}
			c.AbortWithStatusJSON(status, gin.H{
				"error":    "Access denied",
				"redirect": decision.Target,
			})
		default:
			// Resolution is synchronous here, so a Wait can only mean a
			// programming error upstream.
			c.AbortWithStatusJSON(http.StatusServiceUnavailable, gin.H{"error": "Access check not ready"})
		}
	}
}

// GatePath maps an API request path onto the logical route table path,
// stripping the /api prefix the SPA backend mounts under.
func GatePath(c *gin.Context) string {
	path := strings.TrimPrefix(c.Request.URL.Path, "/api")
	if path == "" {
		return "/"
	}
	return path
}

// Profile returns the access profile the gate stored, or nil when the
// route is not gated.
func Profile(c *gin.Context) *access.Profile {
	v, ok := c.Get(ProfileKey)
	if !ok {
		return nil
	}
	p, _ := v.(*access.Profile)
	return p
}
