package bridge

import (
	"crypto/rand"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

const (
	tokenIssuer   = "pake-shell"
	tokenAudience = "pake-bridge"
)

// TokenAuth issues and checks the bearer tokens handed to hosted pages.
// The signing key is random per process, so tokens die with the process.
type TokenAuth struct {
	secret []byte
}

// NewTokenAuth creates an authenticator with a fresh signing key
func NewTokenAuth() (*TokenAuth, error) {
	secret := make([]byte, 32)
	if _, err := rand.Read(secret); err != nil {
		return nil, fmt.Errorf("failed to generate bridge secret: %w", err)
	}
	return &TokenAuth{secret: secret}, nil
}

// Issue signs a token for the injected page script
func (a *TokenAuth) Issue() (string, error) {
	claims := jwt.RegisteredClaims{
		IssuedAt: jwt.NewNumericDate(time.Now()),
		Issuer:   tokenIssuer,
		Audience: jwt.ClaimStrings{tokenAudience},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString(a.secret)
}

// Validate checks a token's signature, issuer and audience
func (a *TokenAuth) Validate(tokenString string) bool {
	token, err := jwt.Parse(tokenString, func(token *jwt.Token) (any, error) {
		if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, jwt.ErrSignatureInvalid
		}
		return a.secret, nil
	}, jwt.WithIssuer(tokenIssuer), jwt.WithAudience(tokenAudience))

	return err == nil && token.Valid
}

// Wrap rejects requests without a valid bearer token. Websocket upgrades
// cannot set headers from the browser, so a token query parameter is
// accepted too.
func (a *TokenAuth) Wrap(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		token := r.URL.Query().Get("token")
		if authHeader := r.Header.Get("Authorization"); strings.HasPrefix(authHeader, "Bearer ") {
			token = strings.TrimPrefix(authHeader, "Bearer ")
		}
		if token == "" || !a.Validate(token) {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": "unauthorized"})
			return
		}
		next.ServeHTTP(w, r)
	})
}
