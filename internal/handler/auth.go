package handler

import (
	"net/http"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/logger"
	"github.com/leesanghooooon/moneymate-sub001/internal/middleware"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// AuthHandler serves login, logout and session reads.
type AuthHandler struct {
	Store        *store.Store
	JWTSecret    string
	Issuer       string
	TokenTTL     time.Duration
	CookieName   string
	CookieSecure bool
}

// NewAuthHandler fills in the 24h session window when ttl is unset.
func NewAuthHandler(st *store.Store, jwtSecret, issuer string, ttl time.Duration, cookieName string, cookieSecure bool) *AuthHandler {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &AuthHandler{
		Store:        st,
		JWTSecret:    jwtSecret,
		Issuer:       issuer,
		TokenTTL:     ttl,
		CookieName:   cookieName,
		CookieSecure: cookieSecure,
	}
}

// ---------- login ----------

type loginReq struct {
	ID       string `json:"id" binding:"required"`
	Password string `json:"password" binding:"required"`
}

func toSessionUser(u *models.User) util.SessionUser {
	return util.SessionUser{
		UserID:   u.ID,
		UUID:     u.UUID,
		Email:    u.Email,
		Nickname: u.Nickname,
	}
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req loginReq
	if err := c.ShouldBindJSON(&req); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "id and password are required")
		return
	}

	ctx := c.Request.Context()
	user, err := h.Store.VerifyCredentials(ctx, req.ID, req.Password)
	if err != nil {
		util.Fail(c, err)
		return
	}

	sess, err := h.Store.CreateSession(ctx, user.ID, h.TokenTTL)
	if err != nil {
		util.Fail(c, err)
		return
	}

	su := toSessionUser(user)
	token, err := util.GenerateToken(h.JWTSecret, h.Issuer, sess.ID, su, sess.CreatedAt, h.TokenTTL)
	if err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to issue token")
		return
	}

	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, token, int(h.TokenTTL.Seconds()), "/", "", h.CookieSecure, true)

	log := logger.FromContext(ctx)
	log.Info().Str("usr_id", user.ID).Msg("user logged in")

	util.Success(c, util.Response{
		"token":      token,
		"user":       su,
		"expires_at": sess.ExpiresAt,
	})
}

// ---------- logout ----------

func (h *AuthHandler) Logout(c *gin.Context) {
	if sid := c.GetString(middleware.SessionIDKey); sid != "" {
		if err := h.Store.RevokeSession(c.Request.Context(), sid); err != nil {
			util.Fail(c, err)
			return
		}
	}
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(h.CookieName, "", -1, "/", "", h.CookieSecure, true)
	util.Success(c, util.Response{"message": "logged out"})
}

// ---------- session ----------

// Session returns the session user carried by the token.
func (h *AuthHandler) Session(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	util.Success(c, util.Response{"user": user})
}
