package auth

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/golang-jwt/jwt/v5"
)

type contextKey string

// SessionContextKey carries the authenticated session in the request
// context.
const SessionContextKey contextKey = "session"

// Claims are the dashboard token claims: the session id plus the acting
// upstream user.
type Claims struct {
	SessionID string `json:"sid"`
	User      string `json:"user"`
	jwt.RegisteredClaims
}

// TokenIssuer signs and verifies the dashboard's own bearer tokens.
// Tokens are HS256 over a local secret: the only identity provider in
// this system is the upstream RT login, so there is no external keyset
// to verify against.
type TokenIssuer struct {
	secret []byte
}

// NewTokenIssuer creates an issuer over the configured secret.
func NewTokenIssuer(secret string) *TokenIssuer {
	return &TokenIssuer{secret: []byte(secret)}
}

// Issue mints a token for a session, expiring with it.
func (t *TokenIssuer) Issue(session Session) (string, error) {
	claims := Claims{
		SessionID: session.ID,
		User:      session.User,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(session.CreatedAt),
			ExpiresAt: jwt.NewNumericDate(session.ExpiresAt),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(t.secret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}

// Verify parses and validates a token, returning its claims.
func (t *TokenIssuer) Verify(tokenString string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(token *jwt.Token) (interface{}, error) {
		return t.secret, nil
	}, jwt.WithValidMethods([]string{"HS256"}), jwt.WithExpirationRequired())
	if err != nil {
		return nil, fmt.Errorf("token verification failed: %w", err)
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// Middleware validates the bearer token and resolves its live session.
// A token whose session is gone (logout, restart, expiry) is rejected
// even if the signature still verifies.
func Middleware(issuer *TokenIssuer, store *SessionStore) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			tokenString := extractToken(r)
			if tokenString == "" {
				http.Error(w, "Unauthorized: Missing token", http.StatusUnauthorized)
				return
			}

			claims, err := issuer.Verify(tokenString)
			if err != nil {
				http.Error(w, fmt.Sprintf("Unauthorized: %v", err), http.StatusUnauthorized)
				return
			}

			session, ok := store.Get(claims.SessionID)
			if !ok {
				http.Error(w, "Unauthorized: Session expired", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), SessionContextKey, session)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// extractToken gets the token from the Authorization header.
func extractToken(r *http.Request) string {
	authHeader := r.Header.Get("Authorization")
	if authHeader == "" {
		return ""
	}
	tokenString := strings.TrimPrefix(authHeader, "Bearer ")
	if tokenString == authHeader {
		return ""
	}
	return tokenString
}

// SessionFromContext retrieves the session from the request context.
func SessionFromContext(ctx context.Context) (Session, bool) {
	session, ok := ctx.Value(SessionContextKey).(Session)
	return session, ok
}
