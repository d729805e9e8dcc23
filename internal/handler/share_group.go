package handler

import (
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// ShareGroupHandler manages share groups and invitations.
type ShareGroupHandler struct {
	Store *store.Store
}

func NewShareGroupHandler(st *store.Store) *ShareGroupHandler {
	return &ShareGroupHandler{Store: st}
}

type createGroupReq struct {
	Name string `json:"name"`
}

type inviteReq struct {
	UserID string `json:"usr_id"`
}

type respondReq struct {
	Status string `json:"status"`
}

func (h *ShareGroupHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	groups, err := h.Store.ListShareGroups(c.Request.Context(), user.UserID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, groups)
}

func (h *ShareGroupHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req createGroupReq
	if !bindJSON(c, &req) {
		return
	}

	group, err := h.Store.CreateShareGroup(c.Request.Context(), user.UserID, req.Name)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, group)
}

// Invite handles POST /api/share-groups/:id/members.
func (h *ShareGroupHandler) Invite(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	groupID, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req inviteReq
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.Store.InviteMember(c.Request.Context(), user.UserID, groupID, req.UserID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, member)
}

// Respond handles PUT /api/share-groups/:id/members/me.
func (h *ShareGroupHandler) Respond(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	groupID, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req respondReq
	if !bindJSON(c, &req) {
		return
	}

	member, err := h.Store.RespondInvitation(c.Request.Context(), user.UserID, groupID, req.Status)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, member)
}
