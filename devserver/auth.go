package devserver

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"net/http"
	"sync"

	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"gorm.io/gorm"
)

// publicPaths need no bearer token (catalog browsing, login, register).
func publicPaths() []string {
	return []string{
		"/api/auth/login",
		"/api/auth/register",
		"/api/catalog/*",
		"/api/payments/methods",
	}
}

// Sessions maps issued bearer tokens to user IDs. In-memory only — the dev
// server forgets sessions on restart, which is fine for its purpose.
type Sessions struct {
	mu     sync.RWMutex
	tokens map[string]uint
}

func NewSessions() *Sessions {
	return &Sessions{tokens: make(map[string]uint)}
}

func (s *Sessions) Issue(userID uint) string {
	buf := make([]byte, 24)
	_, _ = rand.Read(buf)
	token := hex.EncodeToString(buf)
	s.mu.Lock()
	s.tokens[token] = userID
	s.mu.Unlock()
	return token
}

func (s *Sessions) Lookup(token string) (uint, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	id, ok := s.tokens[token]
	return id, ok
}

func (s *Sessions) Revoke(token string) {
	s.mu.Lock()
	delete(s.tokens, token)
	s.mu.Unlock()
}

// authMiddleware validates bearer tokens against the session table and loads
// the user into the request context.
func authMiddleware(db *gorm.DB, sessions *Sessions) echo.MiddlewareFunc {
	skipper := buildSkipper()
	return middleware.KeyAuthWithConfig(middleware.KeyAuthConfig{
		Skipper: skipper,
		Validator: func(token string, c echo.Context) (bool, error) {
			userID, ok := sessions.Lookup(token)
			if !ok {
				return false, nil
			}
			var user User
			if err := db.First(&user, userID).Error; err != nil {
				return false, nil
			}
			c.Set("user", &user)
			c.Set("token", token)
			return true, nil
		},
		ErrorHandler: func(err error, c echo.Context) error {
			return c.JSON(http.StatusUnauthorized, echo.Map{"error": "authentication required", "code": "unauthorized"})
		},
	})
}

func buildSkipper() middleware.Skipper {
	skipPaths := publicPaths()
	return func(c echo.Context) bool {
		path := c.Path()
		for _, skip := range skipPaths {
			if skip == path {
				return true
			}
			// prefix wildcard
			if n := len(skip); n > 1 && skip[n-1] == '*' && len(path) >= n-1 && path[:n-1] == skip[:n-1] {
				return true
			}
		}
		return false
	}
}

func currentUser(c echo.Context) *User {
	if u, ok := c.Get("user").(*User); ok {
		return u
	}
	return nil
}

func requireAdmin(next echo.HandlerFunc) echo.HandlerFunc {
	return func(c echo.Context) error {
		u := currentUser(c)
		if u == nil || u.Role != "admin" {
			return c.JSON(http.StatusForbidden, echo.Map{"error": "admin access required", "code": "forbidden"})
		}
		return next(c)
	}
}

func hashPassword(pw string) string {
	sum := sha256.Sum256([]byte(pw))
	return hex.EncodeToString(sum[:])
}
