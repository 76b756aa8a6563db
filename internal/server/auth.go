package server

import (
	"crypto/rand"
	"crypto/subtle"
	"encoding/hex"
	"errors"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
)

const (
	sessionCookie = "admin_token"
	identityKey   = "identity"
	sessionTTL    = 24 * time.Hour
)

var errUnauthorized = errors.New("unauthorized")

// Identity is the operator behind a session.
type Identity struct {
	Username string    `json:"username"`
	LoginAt  time.Time `json:"loginAt"`
}

// Auth checks operator credentials and tracks cookie sessions in memory.
// Sessions do not survive a restart.
type Auth struct {
	username string
	password string

	mu       sync.Mutex
	sessions map[string]Identity
	now      func() time.Time
}

// NewAuth returns an Auth for one operator account. With an empty username or
// password every login fails.
func NewAuth(username, password string) *Auth {
	return &Auth{
		username: username,
		password: password,
		sessions: map[string]Identity{},
		now:      time.Now,
	}
}

func (a *Auth) check(username, password string) bool {
	if a.username == "" || a.password == "" {
		return false
	}
	userOK := subtle.ConstantTimeCompare([]byte(username), []byte(a.username)) == 1
	passOK := subtle.ConstantTimeCompare([]byte(password), []byte(a.password)) == 1
	return userOK && passOK
}

// login returns a new session token, or errUnauthorized. Expired sessions
// are dropped on each login.
func (a *Auth) login(username, password string) (string, Identity, error) {
	if !a.check(username, password) {
		return "", Identity{}, errUnauthorized
	}
	token, err := generateToken()
	if err != nil {
		return "", Identity{}, err
	}
	id := Identity{Username: a.username, LoginAt: a.now()}

	a.mu.Lock()
	for t, s := range a.sessions {
		if id.LoginAt.Sub(s.LoginAt) > sessionTTL {
			delete(a.sessions, t)
		}
	}
	a.sessions[token] = id
	a.mu.Unlock()
	return token, id, nil
}

func (a *Auth) logout(token string) {
	a.mu.Lock()
	delete(a.sessions, token)
	a.mu.Unlock()
}

func (a *Auth) lookup(token string) (Identity, bool) {
	a.mu.Lock()
	defer a.mu.Unlock()

	id, ok := a.sessions[token]
	if !ok {
		return Identity{}, false
	}
	if a.now().Sub(id.LoginAt) > sessionTTL {
		delete(a.sessions, token)
		return Identity{}, false
	}
	return id, true
}

// identify stores the session identity, if any, in the gin context.
func (a *Auth) identify(c *gin.Context) (Identity, bool) {
	token, err := c.Cookie(sessionCookie)
	if err != nil || token == "" {
		return Identity{}, false
	}
	id, ok := a.lookup(token)
	if ok {
		c.Set(identityKey, id)
	}
	return id, ok
}

// RequireOperator rejects requests without a live session.
func (a *Auth) RequireOperator() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, ok := a.identify(c); !ok {
			c.AbortWithStatusJSON(http.StatusUnauthorized, gin.H{"message": "Unauthorized"})
			return
		}
		c.Next()
	}
}

func generateToken() (string, error) {
	b := make([]byte, 32)
	if _, err := rand.Read(b); err != nil {
		return "", err
	}
	return hex.EncodeToString(b), nil
}
