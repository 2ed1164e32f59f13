package middleware

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"time"

	jwt "github.com/golang-jwt/jwt/v5"
)

type authCtxKey int

const adminKey authCtxKey = 7

// AdminClaims are the claims carried by an admin reconciliation token.
type AdminClaims struct {
	Admin bool `json:"admin"`
	jwt.RegisteredClaims
}

// SignAdminToken mints a short-lived token for the backup reconciliation
// endpoints.
func SignAdminToken(secret []byte, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := AdminClaims{Admin: true, RegisteredClaims: jwt.RegisteredClaims{
		IssuedAt:  jwt.NewNumericDate(now),
		ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
	}}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(secret)
}

func parseAdminToken(secret []byte, tok string) (*AdminClaims, error) {
	t, err := jwt.ParseWithClaims(tok, &AdminClaims{}, func(token *jwt.Token) (interface{}, error) { return secret, nil })
	if err != nil {
		return nil, err
	}
	if c, ok := t.Claims.(*AdminClaims); ok && t.Valid && c.Admin {
		return c, nil
	}
	return nil, errors.New("invalid token")
}

// WithAdminAuth attaches admin claims to the context when a valid bearer
// token is present.
func WithAdminAuth(secret []byte) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			h := r.Header.Get("Authorization")
			if strings.HasPrefix(h, "Bearer ") {
				tok := strings.TrimSpace(strings.TrimPrefix(h, "Bearer "))
				if c, err := parseAdminToken(secret, tok); err == nil {
					ctx := context.WithValue(r.Context(), adminKey, c)
					next.ServeHTTP(w, r.WithContext(ctx))
					return
				}
			}
			next.ServeHTTP(w, r)
		})
	}
}

// IsAdmin reports whether the request carried a valid admin token.
func IsAdmin(ctx context.Context) bool {
	_, ok := ctx.Value(adminKey).(*AdminClaims)
	return ok
}
