package handler

import (
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"

	"github.com/gin-gonic/gin"
)

// SavingsHandler serves savings goals and their contributions.
type SavingsHandler struct {
	Store *store.Store
}

func NewSavingsHandler(st *store.Store) *SavingsHandler {
	return &SavingsHandler{Store: st}
}

type createGoalReq struct {
	Name          string              `json:"goal_name"`
	TargetAmount  decimal.Decimal     `json:"target_amount"`
	PlannedAmount decimal.NullDecimal `json:"planned_amount"`
	PlannedCycle  *string             `json:"planned_cycle"`
	StartDate     string              `json:"start_date"`
	TargetDate    *string             `json:"target_date"`
}

type contributionReq struct {
	Date   string          `json:"date"`
	Amount decimal.Decimal `json:"amount"`
	Memo   *string         `json:"memo"`
}

func (h *SavingsHandler) List(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	useYN, err := queryYN(c, "use_yn")
	if err != nil {
		util.Fail(c, err)
		return
	}

	goals, err := h.Store.ListSavingsGoals(c.Request.Context(), user.UserID, useYN)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, goals)
}

func (h *SavingsHandler) Create(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	var req createGoalReq
	if !bindJSON(c, &req) {
		return
	}

	goal, err := h.Store.CreateSavingsGoal(c.Request.Context(), user.UserID, store.SavingsGoalInput{
		Name:          req.Name,
		TargetAmount:  req.TargetAmount,
		PlannedAmount: req.PlannedAmount,
		PlannedCycle:  req.PlannedCycle,
		StartDate:     req.StartDate,
		TargetDate:    req.TargetDate,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, goal)
}

// Contributions handles GET /api/savings-goals/:id/contributions.
func (h *SavingsHandler) Contributions(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	goalID, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	list, err := h.Store.ListContributions(c.Request.Context(), user.UserID, goalID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, list)
}

// Contribute handles POST /api/savings-goals/:id/contributions and
// answers with the contribution and the refreshed goal.
func (h *SavingsHandler) Contribute(c *gin.Context) {
	user, ok := sessionUser(c)
	if !ok {
		return
	}
	goalID, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req contributionReq
	if !bindJSON(c, &req) {
		return
	}

	ctx := c.Request.Context()
	contribution, err := h.Store.AddContribution(ctx, user.UserID, goalID, store.ContributionInput{
		Date:   req.Date,
		Amount: req.Amount,
		Memo:   req.Memo,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	goal, err := h.Store.GetSavingsGoal(ctx, user.UserID, goalID)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, util.Response{"contribution": contribution, "goal": goal})
}
