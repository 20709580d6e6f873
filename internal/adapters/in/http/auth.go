package http

import (
	"errors"
	"fmt"
	"net/http"
	"slices"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Role is the caller's role as asserted by the identity service.
type Role string

const (
	RoleAdmin   Role = "admin"
	RoleCarrier Role = "carrier"
)

const callerContextKey = "caller"

// Caller is the authenticated identity of a request. It is read from the token
// on every request and never cached.
type Caller struct {
	ID   string
	Role Role
}

type callerClaims struct {
	jwt.RegisteredClaims
	Role string `json:"role"`
}

// Authenticator verifies HS256 bearer tokens issued by the identity service.
type Authenticator struct {
	secret []byte
	issuer string
	now    func() time.Time
}

// NewAuthenticator builds a verifier. An empty issuer disables the issuer check.
func NewAuthenticator(secret, issuer string) (*Authenticator, error) {
	if strings.TrimSpace(secret) == "" {
		return nil, errors.New("jwt secret is required")
	}
	return &Authenticator{secret: []byte(secret), issuer: issuer, now: time.Now}, nil
}

// Verify parses a raw token into a Caller.
func (a *Authenticator) Verify(raw string) (Caller, error) {
	opts := []jwt.ParserOption{
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithExpirationRequired(),
		jwt.WithTimeFunc(a.now),
	}
	if a.issuer != "" {
		opts = append(opts, jwt.WithIssuer(a.issuer))
	}

	var claims callerClaims
	if _, err := jwt.ParseWithClaims(raw, &claims, func(*jwt.Token) (any, error) {
		return a.secret, nil
	}, opts...); err != nil {
		return Caller{}, fmt.Errorf("invalid token: %w", err)
	}

	sub := strings.TrimSpace(claims.Subject)
	if sub == "" {
		return Caller{}, errors.New("invalid token: sub is required")
	}
	role := Role(claims.Role)
	if role != RoleAdmin && role != RoleCarrier {
		return Caller{}, fmt.Errorf("invalid token: unknown role %q", claims.Role)
	}
	return Caller{ID: sub, Role: role}, nil
}

// Sign issues a token for the given caller. The identity service owns token
// issuance in production; this is used by tests and local tooling.
func (a *Authenticator) Sign(caller Caller, ttl time.Duration) (string, error) {
	now := a.now()
	claims := callerClaims{
		RegisteredClaims: jwt.RegisteredClaims{
			Subject:   caller.ID,
			Issuer:    a.issuer,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
		Role: string(caller.Role),
	}
	return jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(a.secret)
}

// Middleware rejects requests without a valid bearer token and stores the
// Caller on the echo context.
func (a *Authenticator) Middleware() echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			header := ctx.Request().Header.Get(echo.HeaderAuthorization)
			raw, ok := strings.CutPrefix(header, "Bearer ")
			if !ok || strings.TrimSpace(raw) == "" {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "missing bearer token",
				})
			}

			caller, err := a.Verify(strings.TrimSpace(raw))
			if err != nil {
				return ctx.JSON(http.StatusUnauthorized, Error{Code: http.StatusUnauthorized, Message: err.Error()})
			}

			ctx.Set(callerContextKey, caller)
			return next(ctx)
		}
	}
}

// RequireRole admits only callers holding one of roles. It must run after
// Authenticator.Middleware.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			caller, ok := callerFrom(ctx)
			if !ok {
				return ctx.JSON(http.StatusUnauthorized, Error{
					Code:    http.StatusUnauthorized,
					Message: "unauthenticated",
				})
			}
			if !slices.Contains(roles, caller.Role) {
				return ctx.JSON(http.StatusForbidden, Error{
					Code:    http.StatusForbidden,
					Message: fmt.Sprintf("role %s may not perform this operation", caller.Role),
				})
			}
			return next(ctx)
		}
	}
}

func callerFrom(ctx echo.Context) (Caller, bool) {
	caller, ok := ctx.Get(callerContextKey).(Caller)
	return caller, ok
}
