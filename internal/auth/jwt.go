package auth

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/rs/zerolog/log"

	"github.com/airstay/airstay-api/internal/models"
)

// SessionCookie is the name of the cookie carrying the session token.
// There is no Authorization header path; the cookie is the only transport.
const SessionCookie = "jwt"

// SessionTTL is the validity window of an issued token. There is no refresh
// mechanism; the client logs in again after expiry.
const SessionTTL = 72 * time.Hour

// Claims defines the JWT claims structure.
type Claims struct {
	UserID string `json:"userId"`
	Email  string `json:"email"`
	jwt.RegisteredClaims
}

type contextKey string

const userContextKey = contextKey("authUser")

// UserFromContext returns the authenticated user attached by the middleware.
func UserFromContext(ctx context.Context) (models.User, bool) {
	user, ok := ctx.Value(userContextKey).(models.User)
	return user, ok
}

// TokenManager issues and verifies session tokens with a single
// process-wide secret. Tokens are stateless: there is no server-side session
// list and no revocation before expiry.
type TokenManager struct {
	secret []byte
}

// NewTokenManager creates a TokenManager signing with the given secret.
func NewTokenManager(secret []byte) *TokenManager {
	return &TokenManager{secret: secret}
}

// Issue creates a signed token for a user, expiring ttl from now.
func (tm *TokenManager) Issue(user models.User, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := &Claims{
		UserID: user.ID,
		Email:  user.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(ttl)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(tm.secret)
}

// Verify parses and validates a token string. It fails on a bad signature,
// a malformed token, or an expired token.
func (tm *TokenManager) Verify(tokenStr string) (*Claims, error) {
	claims := &Claims{}
	token, err := jwt.ParseWithClaims(tokenStr, claims, func(token *jwt.Token) (interface{}, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", token.Header["alg"])
		}
		return tm.secret, nil
	})
	if err != nil {
		return nil, err
	}
	if !token.Valid {
		return nil, fmt.Errorf("invalid token")
	}
	return claims, nil
}

// ErrUnknownUser is the resolver contract error for a subject id with no
// stored user. Any other resolver error is a store failure.
var ErrUnknownUser = errors.New("unknown user")

// UserResolver resolves a token's subject id to a stored user. When no user
// exists for the id, the returned error must match ErrUnknownUser.
type UserResolver interface {
	GetUserByID(id string) (models.User, error)
}

// Middleware creates a middleware for protecting routes. Three terminal
// outcomes: no cookie or a failed verification rejects with 401; a valid
// token whose subject no longer exists rejects with 404; otherwise the
// resolved user (without password hash) is attached to the request context.
func (tm *TokenManager) Middleware(users UserResolver) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			cookie, err := r.Cookie(SessionCookie)
			if err != nil || cookie.Value == "" {
				writeError(w, http.StatusUnauthorized, "missing auth token")
				return
			}

			claims, err := tm.Verify(cookie.Value)
			if err != nil {
				writeError(w, http.StatusUnauthorized, "invalid auth token")
				return
			}

			user, err := users.GetUserByID(claims.UserID)
			if err != nil {
				if errors.Is(err, ErrUnknownUser) {
					log.Warn().Err(err).Str("user_id", claims.UserID).Msg("User from token not found")
					writeError(w, http.StatusNotFound, "user not found")
					return
				}
				log.Error().Err(err).Str("user_id", claims.UserID).Msg("Failed to resolve user from token")
				writeError(w, http.StatusInternalServerError, "internal server error")
				return
			}
			user.PasswordHash = ""

			ctx := context.WithValue(r.Context(), userContextKey, user)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}
