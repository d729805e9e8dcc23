package handler

import (
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// CalendarHandler serves the month calendar with shared-wallet activity.
type CalendarHandler struct {
	Store *store.Store
	Now   func() time.Time
}

func NewCalendarHandler(st *store.Store) *CalendarHandler {
	return &CalendarHandler{Store: st, Now: time.Now}
}

// Month handles GET /api/calendar?usr_id&yyyy&mm, defaulting to the
// current month.
func (h *CalendarHandler) Month(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	now := h.Now()
	year, err := queryInt(c, "yyyy", now.Year())
	if err != nil {
		util.Fail(c, err)
		return
	}
	month, err := queryInt(c, "mm", int(now.Month()))
	if err != nil {
		util.Fail(c, err)
		return
	}

	entries, err := h.Store.Calendar(c.Request.Context(), userID, year, month)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, entries)
}
