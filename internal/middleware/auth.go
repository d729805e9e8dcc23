package middleware

import (
	"net/http"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// context keys set by the auth middleware
const (
	CurrentUserKey = "currentUser"
	SessionIDKey   = "sessionID"
)

// Auth verifies session tokens. The token comes from the Authorization
// header or the session cookie, and its session row must still be live.
type Auth struct {
	Secret     string
	CookieName string
	Store      *store.Store
}

// NewAuth builds the session verifier.
func NewAuth(secret, cookieName string, st *store.Store) *Auth {
	return &Auth{Secret: secret, CookieName: cookieName, Store: st}
}

func (a *Auth) token(c *gin.Context) string {
	// 1) Authorization: Bearer xxx
	if header := c.GetHeader("Authorization"); header != "" {
		parts := strings.SplitN(header, " ", 2)
		if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
			return strings.TrimSpace(parts[1])
		}
	}
	// 2) session cookie
	if cookie, err := c.Cookie(a.CookieName); err == nil {
		return cookie
	}
	return ""
}

// authenticate resolves the request's session. The error is always an
// ErrUnauthorized kind unless the session lookup itself failed.
func (a *Auth) authenticate(c *gin.Context) (*util.Claims, error) {
	tokenStr := a.token(c)
	if tokenStr == "" {
		return nil, util.Unauthorized("login required")
	}

	claims, err := util.ParseToken(a.Secret, tokenStr)
	if err != nil {
		return nil, util.Unauthorized("session expired, please log in again")
	}

	sess, err := a.Store.ActiveSession(c.Request.Context(), claims.ID)
	if err != nil {
		return nil, err
	}
	if sess.UserID != claims.UserID {
		return nil, util.Unauthorized("session expired, please log in again")
	}
	return claims, nil
}

// API guards JSON routes: failures are answered with a 401 envelope.
func (a *Auth) API() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			util.Fail(c, err)
			c.Abort()
			return
		}
		setSession(c, claims)
		c.Next()
	}
}

// Page guards browser pages: unauthenticated visitors go to /login.
func (a *Auth) Page() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims, err := a.authenticate(c)
		if err != nil {
			c.Redirect(http.StatusFound, "/login")
			c.Abort()
			return
		}
		setSession(c, claims)
		c.Next()
	}
}

// Guest sends already authenticated visitors of /login and /signup home.
func (a *Auth) Guest() gin.HandlerFunc {
	return func(c *gin.Context) {
		if _, err := a.authenticate(c); err == nil {
			c.Redirect(http.StatusFound, "/")
			c.Abort()
			return
		}
		c.Next()
	}
}

func setSession(c *gin.Context, claims *util.Claims) {
	user := claims.SessionUser
	c.Set(CurrentUserKey, &user)
	c.Set(SessionIDKey, claims.ID)
}

// CurrentUser returns the session user stored by the auth middleware.
func CurrentUser(c *gin.Context) (*util.SessionUser, bool) {
	v, ok := c.Get(CurrentUserKey)
	if !ok {
		return nil, false
	}
	user, ok := v.(*util.SessionUser)
	return user, ok && user != nil
}
