package handler

import (
	"net/http"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// UserHandler serves registration and user lookups.
type UserHandler struct {
	Store *store.Store
}

func NewUserHandler(st *store.Store) *UserHandler {
	return &UserHandler{Store: st}
}

type signupReq struct {
	ID       string `json:"id"`
	Email    string `json:"email"`
	Nickname string `json:"nickname"`
	Password string `json:"password"`
}

// Signup registers a user and answers 201 with the created row.
func (h *UserHandler) Signup(c *gin.Context) {
	var req signupReq
	if !bindJSON(c, &req) {
		return
	}

	user, err := h.Store.CreateUser(c.Request.Context(), store.SignupInput{
		ID:       req.ID,
		Email:    req.Email,
		Nickname: req.Nickname,
		Password: req.Password,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, user)
}

// Get returns an active user by login id.
func (h *UserHandler) Get(c *gin.Context) {
	user, err := h.Store.GetUser(c.Request.Context(), c.Param("id"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, user)
}

type credentialReq struct {
	Password string `json:"password"`
}

// CheckCredentials verifies the password of :id and stamps the login time.
func (h *UserHandler) CheckCredentials(c *gin.Context) {
	var req credentialReq
	if !bindJSON(c, &req) {
		return
	}
	if req.Password == "" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "password is required")
		return
	}

	user, err := h.Store.VerifyCredentials(c.Request.Context(), c.Param("id"), req.Password)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, user)
}
