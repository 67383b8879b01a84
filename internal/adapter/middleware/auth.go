package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"go.uber.org/zap"

	"pawnshop-backoffice/internal/domain/apperr"
	"pawnshop-backoffice/internal/domain/staff"
)

const staffKey = "staff"

// Authenticate resolves "Authorization: Bearer <jwt>" to an active staff
// member. The token must be HMAC-signed and carry the staff id in "sub".
func Authenticate(secret []byte, staffs staff.Repository) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, ok := bearerToken(c.Request().Header.Get(echo.HeaderAuthorization))
			if !ok {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "missing bearer token"})
			}

			token, err := jwt.Parse(raw, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrSignatureInvalid
				}
				return secret, nil
			}, jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token"})
			}
			sub, err := token.Claims.GetSubject()
			if err != nil || !reHex32.MatchString(sub) {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "invalid token subject"})
			}

			s, err := staffs.GetByStaffID(c.Request().Context(), sub)
			if err != nil {
				if errors.Is(err, apperr.ErrNotFound) {
					return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unknown staff"})
				}
				zap.L().Error("staff lookup failed", zap.String("staff_id", sub), zap.Error(err))
				return c.JSON(http.StatusInternalServerError, map[string]string{"error": "internal error"})
			}
			if !s.IsActive {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "staff is inactive"})
			}

			c.Set(staffKey, s)
			return next(c)
		}
	}
}

// RequireRole lets the request through only for the listed roles. It must
// run after Authenticate.
func RequireRole(roles ...staff.Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			s := StaffFrom(c)
			if s == nil {
				return c.JSON(http.StatusUnauthorized, map[string]string{"error": "unauthenticated"})
			}
			for _, r := range roles {
				if s.Role == r {
					return next(c)
				}
			}
			return c.JSON(http.StatusForbidden, map[string]string{"error": "insufficient role"})
		}
	}
}

// StaffFrom returns the authenticated staff member, or nil.
func StaffFrom(c echo.Context) *staff.Staff {
	s, _ := c.Get(staffKey).(*staff.Staff)
	return s
}

// StaffID is the authenticated staff id, or "".
func StaffID(c echo.Context) string {
	if s := StaffFrom(c); s != nil {
		return s.StaffID
	}
	return ""
}

func bearerToken(h string) (string, bool) {
	parts := strings.Fields(h)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
		return "", false
	}
	return parts[1], true
}
