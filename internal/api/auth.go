package api

import (
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"aplus-academy/internal/models"
)

const (
	contextAdminID   = "admin_id"
	contextAdminName = "admin_name"

	tokenIssuer = "aplus-academy"
)

// Claims are carried by admin session tokens.
type Claims struct {
	Login string `json:"login"`
	Name  string `json:"name"`
	jwt.RegisteredClaims
}

func signToken(secret string, ttl time.Duration, now time.Time, a models.Admin) (string, time.Time, error) {
	expires := now.Add(ttl)
	claims := Claims{
		Login: a.Login,
		Name:  a.Name,
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    tokenIssuer,
			Subject:   a.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expires),
		},
	}
	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(secret))
	if err != nil {
		return "", time.Time{}, err
	}
	return token, expires, nil
}

func extractBearer(c echo.Context) (string, error) {
	h := c.Request().Header.Get(echo.HeaderAuthorization)
	if h == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "missing authorization header")
	}
	parts := strings.SplitN(h, " ", 2)
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", echo.NewHTTPError(http.StatusUnauthorized, "malformed authorization header")
	}
	return parts[1], nil
}

// RequireAuth verifies an HS256 admin token and stores its subject in the
// context.
func RequireAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			raw, err := extractBearer(c)
			if err != nil {
				return err
			}
			token, err := jwt.ParseWithClaims(raw, &Claims{}, func(t *jwt.Token) (any, error) {
				if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
					return nil, jwt.ErrTokenSignatureInvalid
				}
				return []byte(secret), nil
			}, jwt.WithIssuer(tokenIssuer), jwt.WithExpirationRequired())
			if err != nil || !token.Valid {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid or expired token")
			}
			claims, ok := token.Claims.(*Claims)
			if !ok || claims.Subject == "" {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token claims")
			}
			c.Set(contextAdminID, claims.Subject)
			c.Set(contextAdminName, claims.Name)
			return next(c)
		}
	}
}

type loginRequest struct {
	Login    string `json:"login" validate:"required"`
	Password string `json:"password" validate:"required"`
}

type loginResponse struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	Name      string    `json:"name"`
}

func (s *Server) login(c echo.Context) error {
	var req loginRequest
	if err := bind(c, &req); err != nil {
		return err
	}
	a, err := s.svc.Authenticate(c.Request().Context(), strings.TrimSpace(req.Login), req.Password)
	if err != nil {
		return err
	}
	token, expires, err := signToken(s.opts.JWTSecret, s.opts.JWTTTL, time.Now(), a)
	if err != nil {
		return err
	}
	return c.JSON(http.StatusOK, loginResponse{Token: token, ExpiresAt: expires, Name: a.Name})
}

func (s *Server) me(c echo.Context) error {
	return c.JSON(http.StatusOK, echo.Map{
		"id":   c.Get(contextAdminID),
		"name": c.Get(contextAdminName),
	})
}
