// Package middleware provides the three auth-zone middlewares backed by the
// tenant registry: bot-token, admin basic auth, and super-admin basic auth.
package middleware

import (
	"net/http"
	"strconv"

	"salon_booking_backend/internal/tenants/repository"
	"salon_booking_backend/internal/tenants/service"
	"salon_booking_backend/platform/apperr"
	"salon_booking_backend/platform/httpkit"

	"github.com/gin-gonic/gin"
)

const (
	// TokenHeader is the header carrying the tenant bot token.
	TokenHeader = "X-Salon-Token"

	contextSalonKey = "salon"
	contextSuperKey = "isSuper"

	basicRealm = `Basic realm="salon-admin"`
)

// SalonFromContext returns the salon resolved by an auth middleware.
func SalonFromContext(c *gin.Context) (*repository.Salon, bool) {
	value, ok := c.Get(contextSalonKey)
	if !ok {
		return nil, false
	}
	salon, ok := value.(*repository.Salon)
	return salon, ok
}

// MustSalon returns the request's salon or aborts with 403. Auth middleware
// always sets it on the token and admin zones, so an absence is a wiring bug.
func MustSalon(c *gin.Context) *repository.Salon {
	salon, ok := SalonFromContext(c)
	if !ok {
		c.AbortWithStatusJSON(http.StatusForbidden, gin.H{"error": "no salon in request context"})
		return nil
	}
	return salon
}

// IsSuper reports whether the request authenticated with super credentials.
func IsSuper(c *gin.Context) bool {
	return c.GetBool(contextSuperKey)
}

// BotTokenAuth resolves the X-Salon-Token header to an active salon.
// Missing, unknown, and disabled all answer 403 so tokens cannot be probed.
func BotTokenAuth(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		salon, err := svc.ResolveBotToken(c.Request.Context(), c.GetHeader(TokenHeader))
		if err != nil {
			if httpkit.HandleError(c, err) {
				c.Abort()
			}
			return
		}
		c.Set(contextSalonKey, salon)
		c.Next()
	}
}

// AdminBasicAuth resolves HTTP Basic credentials to a salon. The super-admin
// pair also authenticates and may target any salon via the salon_id query
// parameter.
func AdminBasicAuth(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok {
			abortBasic(c)
			return
		}

		if svc.IsSuper(username, password) {
			salonID, err := strconv.ParseInt(c.Query("salon_id"), 10, 64)
			if err != nil {
				c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{"error": "salon_id query parameter is required for super-admin access"})
				return
			}
			salon, err := svc.GetSalon(c.Request.Context(), salonID)
			if err != nil {
				if httpkit.HandleError(c, err) {
					c.Abort()
				}
				return
			}
			c.Set(contextSalonKey, salon)
			c.Set(contextSuperKey, true)
			c.Next()
			return
		}

		salon, err := svc.AuthenticateAdmin(c.Request.Context(), username, password)
		if err != nil {
			if apperr.Is(err, apperr.KindUnauthorized) {
				abortBasic(c)
				return
			}
			if httpkit.HandleError(c, err) {
				c.Abort()
			}
			return
		}

		c.Set(contextSalonKey, salon)
		c.Next()
	}
}

// SuperBasicAuth accepts only the super-admin credential pair.
func SuperBasicAuth(svc *service.Service) gin.HandlerFunc {
	return func(c *gin.Context) {
		username, password, ok := c.Request.BasicAuth()
		if !ok || !svc.IsSuper(username, password) {
			abortBasic(c)
			return
		}
		c.Set(contextSuperKey, true)
		c.Next()
	}
}

func abortBasic(c *gin.Context) {
	c.Header("WWW-Authenticate", basicRealm)
	c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"error": "invalid credentials"})
}
