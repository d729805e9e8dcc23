package handler

import (
	"strings"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// StatsHandler serves the statistics endpoints. Missing year/month/date
// parameters default to the current date.
type StatsHandler struct {
	Store *store.Store
	Now   func() time.Time
}

func NewStatsHandler(st *store.Store) *StatsHandler {
	return &StatsHandler{Store: st, Now: time.Now}
}

func (h *StatsHandler) yearMonth(c *gin.Context) (int, int, error) {
	now := h.Now()
	year, err := queryInt(c, "year", now.Year())
	if err != nil {
		return 0, 0, err
	}
	month, err := queryInt(c, "month", int(now.Month()))
	if err != nil {
		return 0, 0, err
	}
	return year, month, nil
}

// MonthlyExpenses handles GET /api/stats/monthly-expenses?usr_id&year.
func (h *StatsHandler) MonthlyExpenses(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	year, err := queryInt(c, "year", h.Now().Year())
	if err != nil {
		util.Fail(c, err)
		return
	}

	rows, err := h.Store.MonthlyExpenses(c.Request.Context(), userID, year)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"year": year, "months": rows})
}

// MonthlyByWallets handles GET /api/expenses/monthly-by-wallets.
func (h *StatsHandler) MonthlyByWallets(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	year, month, err := h.yearMonth(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	walletType := strings.ToUpper(strings.TrimSpace(c.Query("wlt_type")))

	rows, err := h.Store.MonthlyByWallets(c.Request.Context(), userID, year, month, walletType)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, rows)
}

// WeeklyExpenses handles GET /api/stats/weekly-expenses?usr_id&date.
func (h *StatsHandler) WeeklyExpenses(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}

	ref := h.Now()
	if raw := strings.TrimSpace(c.Query("date")); raw != "" {
		d, err := time.Parse(util.DateLayout, raw)
		if err != nil {
			util.Fail(c, util.Invalid("date", "date must be YYYY-MM-DD"))
			return
		}
		ref = d
	}

	out, err := h.Store.WeeklyExpenses(c.Request.Context(), userID, ref)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, out)
}

// WalletExpenses handles GET /api/stats/wallet-expenses?usr_id&year&month.
func (h *StatsHandler) WalletExpenses(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	year, month, err := h.yearMonth(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	out, err := h.Store.WalletExpenses(c.Request.Context(), userID, year, month)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, out)
}
