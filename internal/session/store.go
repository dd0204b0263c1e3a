package session

import (
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"

	"github.com/hyuga-t/todo-front/internal/models"
)

// CookieName is the browser session cookie holding the
// signed token pair issued by the external API.
const CookieName = "__session"

var ErrEmptySecret = errors.New("session secret must be set")

// Store signs and verifies the session cookie. It never
// touches the network; the payload is a compact JWT whose
// claims carry the external API token pair.
type Store struct {
	secret []byte
	maxAge time.Duration
	secure bool
}

type Config struct {
	Secret string
	MaxAge time.Duration
	// Secure controls the cookie's Secure attribute
	// and should be true in prod.
	Secure bool
}

func New(cfg Config) (*Store, error) {
	if cfg.Secret == "" {
		return nil, ErrEmptySecret
	}

	maxAge := cfg.MaxAge
	if maxAge <= 0 {
		maxAge = 7 * 24 * time.Hour
	}

	return &Store{
		secret: []byte(cfg.Secret),
		maxAge: maxAge,
		secure: cfg.Secure,
	}, nil
}

type sessionClaims struct {
	AccessToken  string `json:"access_token,omitempty"`
	RefreshToken string `json:"refresh_token,omitempty"`
	TokenType    string `json:"token_type,omitempty"`
	jwt.RegisteredClaims
}

// Read extracts the token pair from the request's session
// cookie. A missing, unsigned or tampered cookie yields a
// zero Token, never an error.
func (s *Store) Read(r *http.Request) models.Token {
	cookie, err := r.Cookie(CookieName)
	if err != nil || cookie.Value == "" {
		return models.Token{}
	}

	claims := new(sessionClaims)
	token, err := jwt.ParseWithClaims(cookie.Value, claims, func(t *jwt.Token) (any, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.secret, nil
	})
	if err != nil || !token.Valid {
		return models.Token{}
	}

	return models.Token{
		AccessToken:  claims.AccessToken,
		RefreshToken: claims.RefreshToken,
		TokenType:    claims.TokenType,
	}
}

// Write serializes and signs the token pair into a session cookie.
func (s *Store) Write(token models.Token) (*http.Cookie, error) {
	now := time.Now()
	claims := sessionClaims{
		AccessToken:  token.AccessToken,
		RefreshToken: token.RefreshToken,
		TokenType:    token.TokenType,
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(now.Add(s.maxAge)),
		},
	}

	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.secret)
	if err != nil {
		return nil, fmt.Errorf("failed to sign session: %w", err)
	}

	return &http.Cookie{
		Name:     CookieName,
		Value:    signed,
		Path:     "/",
		MaxAge:   int(s.maxAge.Seconds()),
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}, nil
}

// Destroy returns a cookie that invalidates the session.
func (s *Store) Destroy() *http.Cookie {
	return &http.Cookie{
		Name:     CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
		Secure:   s.secure,
		SameSite: http.SameSiteLaxMode,
	}
}
