package middleware

import (
	"context"

	pkgauth "github.com/auraluxe/auraluxe-backend/pkg/auth"
)

type ctxKey int

const (
	ctxCartToken ctxKey = iota
	ctxAdminClaims
)

// CartToken returns the shopper's cart token seeded by the CartToken
// middleware, or "" when none was provided.
func CartToken(ctx context.Context) string {
	token, _ := ctx.Value(ctxCartToken).(string)
	return token
}

// AdminClaims returns the verified back-office claims seeded by the Auth
// middleware.
func AdminClaims(ctx context.Context) *pkgauth.AdminClaims {
	claims, _ := ctx.Value(ctxAdminClaims).(*pkgauth.AdminClaims)
	return claims
}
