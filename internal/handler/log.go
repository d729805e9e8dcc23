package handler

import (
	"strconv"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// LogHandler serves the caller's audit trail.
type LogHandler struct {
	Store *store.Store
}

func NewLogHandler(st *store.Store) *LogHandler {
	return &LogHandler{Store: st}
}

// ListLogs pages the current user's audit entries, newest first.
func (h *LogHandler) ListLogs(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page <= 0 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("page_size", "20"))
	if size <= 0 || size > 100 {
		size = 20
	}

	logs, total, err := h.Store.ListAuditLogs(c.Request.Context(), user.UserID, page, size)
	if err != nil {
		util.Fail(c, err)
		return
	}

	util.Success(c, util.Response{
		"items": logs,
		"total": total,
		"page":  page,
		"size":  size,
	})
}
