package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.uber.org/zap"

	"todoapp/pkg/apierrors"
)

const principalKey = "principal"

// AuthMiddleware resolves the acting principal for every request: the
// subject of a valid bearer token, or the guest client id header for
// unauthenticated clients. Requests with neither are rejected.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		lang := GetLang(c)

		if header := c.GetHeader("Authorization"); header != "" {
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok {
				abortUnauthorized(c, lang)
				return
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return []byte(secret), nil
			})
			if err != nil || !token.Valid {
				zap.L().Debug("rejected bearer token", zap.Error(err))
				abortUnauthorized(c, lang)
				return
			}

			subject, err := token.Claims.GetSubject()
			if err != nil || subject == "" {
				abortUnauthorized(c, lang)
				return
			}

			c.Set(principalKey, subject)
			c.Next()
			return
		}

		if clientID := strings.TrimSpace(c.GetHeader("X-Client-Id")); clientID != "" {
			c.Set(principalKey, clientID)
			c.Next()
			return
		}

		abortUnauthorized(c, lang)
	}
}

// GetPrincipal returns the acting member id set by AuthMiddleware.
func GetPrincipal(c *gin.Context) string {
	if principal, exists := c.Get(principalKey); exists {
		if s, ok := principal.(string); ok {
			return s
		}
	}
	return ""
}

func abortUnauthorized(c *gin.Context, lang string) {
	c.AbortWithStatusJSON(
		http.StatusUnauthorized,
		apierrors.CreateError(http.StatusUnauthorized, apierrors.MsgUnauthorized, lang),
	)
}
