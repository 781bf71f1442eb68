package middleware

import (
	"net/http"
	"strings"

	"github.com/SscSPs/six_jars_app/internal/core/domain"
	"github.com/SscSPs/six_jars_app/internal/utils"
	"github.com/gin-gonic/gin"
)

const (
	analyticsKey   = "analytics"
	apiPrefix      = "/api/v1/"
	assistantRoute = "assistant"
)

// untrackedRoutes never produce request events.
var untrackedRoutes = map[string]bool{
	"/health":      true,
	"/api/v1/ping": true,
}

// PosthogMiddleware records one "ledger_request" event per successful request made by a
// verified identity. Only the route template is sent, never amounts or descriptions.
// It also makes the client available to TrackEvent.
func PosthogMiddleware(posthogClient *utils.PosthogClientWrapper) gin.HandlerFunc {
	return func(c *gin.Context) {
		route := c.FullPath()
		if !posthogClient.IsInitialized() || route == "" || untrackedRoutes[route] {
			c.Next()
			return
		}
		c.Set(analyticsKey, posthogClient)

		c.Next()

		if len(c.Errors) > 0 || c.Writer.Status() >= http.StatusBadRequest {
			return
		}
		id, ok := trackedIdentity(c)
		if !ok {
			return
		}
		props := routeProperties(route)
		props["method"] = c.Request.Method
		props["status_code"] = c.Writer.Status()
		posthogClient.Enqueue(id.UserID, "ledger_request", props)
	}
}

// TrackEvent sends a named event for the caller when analytics is enabled for the request.
// Unverified or anonymous callers are not tracked.
func TrackEvent(c *gin.Context, event string, properties map[string]any) {
	v, ok := c.Get(analyticsKey)
	if !ok {
		return
	}
	client, ok := v.(*utils.PosthogClientWrapper)
	if !ok {
		return
	}
	id, ok := trackedIdentity(c)
	if !ok {
		return
	}
	props := routeProperties(c.FullPath())
	for k, val := range properties {
		props[k] = val
	}
	client.Enqueue(id.UserID, event, props)
}

func trackedIdentity(c *gin.Context) (domain.Identity, bool) {
	id, ok := GetIdentityFromContext(c)
	if !ok || id.UserID == "" || !id.Verified {
		return domain.Identity{}, false
	}
	return id, true
}

// routeProperties describes a route template:
// "/api/v1/loans/:loanID/payments" -> resource "loans", ai false.
func routeProperties(route string) map[string]any {
	resource := strings.TrimPrefix(route, apiPrefix)
	if i := strings.IndexByte(resource, '/'); i >= 0 {
		resource = resource[:i]
	}
	return map[string]any{
		"route":    route,
		"resource": resource,
		"ai":       resource == assistantRoute,
	}
}
