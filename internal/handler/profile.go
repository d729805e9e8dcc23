package handler

import (
	"net/http"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// UpdateProfileReq edits the basic profile fields.
type UpdateProfileReq struct {
	Nickname     *string `json:"nickname"`
	ProfileImage *string `json:"profile_image"`
}

// ChangePasswordReq replaces the password.
type ChangePasswordReq struct {
	OldPassword string `json:"old_password" binding:"required"`
	NewPassword string `json:"new_password" binding:"required"`
}

// UpdateProfile edits the current user's nickname and profile image.
func UpdateProfile(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}

		var req UpdateProfileReq
		if !bindJSON(c, &req) {
			return
		}

		updated, err := st.UpdateProfile(c.Request.Context(), user.UserID, store.ProfilePatch{
			Nickname:     req.Nickname,
			ProfileImage: req.ProfileImage,
		})
		if err != nil {
			util.Fail(c, err)
			return
		}
		util.Success(c, util.Response{"user": updated})
	}
}

// ChangePassword replaces the current user's password.
func ChangePassword(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}

		var req ChangePasswordReq
		if err := c.ShouldBindJSON(&req); err != nil {
			util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "old_password and new_password are required")
			return
		}

		if err := st.ChangePassword(c.Request.Context(), user.UserID, req.OldPassword, req.NewPassword); err != nil {
			util.Fail(c, err)
			return
		}
		util.Success(c, util.Response{"message": "password changed"})
	}
}

// DeactivateAccount marks the current user inactive and ends every session.
func DeactivateAccount(st *store.Store, cookieName string, cookieSecure bool) gin.HandlerFunc {
	return func(c *gin.Context) {
		user, ok := sessionUser(c)
		if !ok {
			return
		}

		if err := st.DeactivateUser(c.Request.Context(), user.UserID); err != nil {
			util.Fail(c, err)
			return
		}

		c.SetSameSite(http.SameSiteLaxMode)
		c.SetCookie(cookieName, "", -1, "/", "", cookieSecure, true)
		util.Success(c, util.Response{"message": "account deactivated"})
	}
}
