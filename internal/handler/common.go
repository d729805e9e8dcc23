package handler

import (
	"net/http"
	"strconv"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/middleware"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// sessionUser returns the logged-in user or answers 401.
func sessionUser(c *gin.Context) (*util.SessionUser, bool) {
	user, ok := middleware.CurrentUser(c)
	if !ok {
		util.Error(c, http.StatusUnauthorized, util.CodeAuth, "login required")
		return nil, false
	}
	return user, true
}

// targetUser resolves the usr_id a request acts on. It defaults to the
// session user; naming anybody else is answered with 403.
func targetUser(c *gin.Context, requested string) (string, bool) {
	user, ok := sessionUser(c)
	if !ok {
		return "", false
	}
	requested = strings.TrimSpace(requested)
	if requested != "" && requested != user.UserID {
		util.Fail(c, util.Forbidden("usr_id does not match the logged-in user"))
		return "", false
	}
	return user.UserID, true
}

// queryYN reads an optional Y/N query parameter.
func queryYN(c *gin.Context, key string) (models.YN, error) {
	v := models.YN(strings.ToUpper(strings.TrimSpace(c.Query(key))))
	if v != "" && !v.Valid() {
		return "", util.Invalid(key, "%s must be Y or N", key)
	}
	return v, nil
}

// queryInt reads an optional integer query parameter, returning def when
// it is absent.
func queryInt(c *gin.Context, key string, def int) (int, error) {
	raw := strings.TrimSpace(c.Query(key))
	if raw == "" {
		return def, nil
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return 0, util.Invalid(key, "%s must be a number", key)
	}
	return v, nil
}

// pathID parses a numeric :id path parameter.
func pathID(c *gin.Context) (uint64, error) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		return 0, util.Invalid("id", "invalid id")
	}
	return id, nil
}

// bindJSON decodes the request body, answering 400 on malformed input.
func bindJSON(c *gin.Context, dst interface{}) bool {
	if err := c.ShouldBindJSON(dst); err != nil {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "invalid request body")
		return false
	}
	return true
}

func ynPtr(s *string) *models.YN {
	if s == nil {
		return nil
	}
	v := models.YN(strings.ToUpper(strings.TrimSpace(*s)))
	return &v
}

func yn(s string) models.YN {
	return models.YN(strings.ToUpper(strings.TrimSpace(s)))
}
