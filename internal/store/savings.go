package store

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// SavingsGoalView is a goal with its accumulated contributions.
type SavingsGoalView struct {
	models.SavingsGoal
	CurrentAmount decimal.Decimal `json:"current_amount"`
	ProgressRate  float64         `json:"progress_rate"`
}

// ListSavingsGoals returns the user's goals with current amount and
// progress in percent.
func (s *Store) ListSavingsGoals(ctx context.Context, userID string, useYN models.YN) ([]SavingsGoalView, error) {
	db := s.conn(ctx)

	var goals []models.SavingsGoal
	q := db.Where("usr_id = ?", userID)
	if useYN != "" {
		q = q.Where("use_yn = ?", useYN)
	}
	if err := q.Order("created_at DESC, goal_id DESC").Find(&goals).Error; err != nil {
		return nil, fmt.Errorf("list savings goals: %w", err)
	}

	views := make([]SavingsGoalView, len(goals))
	if len(goals) == 0 {
		return views, nil
	}
	ids := make([]uint64, len(goals))
	for i, g := range goals {
		ids[i] = g.ID
	}

	var sums []struct {
		GoalID uint64          `gorm:"column:goal_id"`
		Total  decimal.Decimal `gorm:"column:total"`
	}
	err := db.Model(&models.SavingsContribution{}).
		Select("goal_id, SUM(amount) AS total").
		Where("goal_id IN ?", ids).
		Group("goal_id").
		Scan(&sums).Error
	if err != nil {
		return nil, fmt.Errorf("sum contributions: %w", err)
	}
	totals := make(map[uint64]decimal.Decimal, len(sums))
	for _, sum := range sums {
		totals[sum.GoalID] = sum.Total.Round(2)
	}

	for i, g := range goals {
		views[i] = newGoalView(g, totals[g.ID])
	}
	return views, nil
}

func newGoalView(g models.SavingsGoal, current decimal.Decimal) SavingsGoalView {
	v := SavingsGoalView{SavingsGoal: g, CurrentAmount: current}
	if g.TargetAmount.IsPositive() {
		v.ProgressRate = current.Div(g.TargetAmount).Mul(decimal.NewFromInt(100)).Round(2).InexactFloat64()
	}
	return v
}

// GetSavingsGoal returns one of the user's goals with its progress.
func (s *Store) GetSavingsGoal(ctx context.Context, userID string, id uint64) (*SavingsGoalView, error) {
	goal, err := s.ownedGoal(ctx, userID, id)
	if err != nil {
		return nil, err
	}

	var total decimal.NullDecimal
	err = s.conn(ctx).Model(&models.SavingsContribution{}).
		Select("SUM(amount)").
		Where("goal_id = ?", id).
		Row().
		Scan(&total)
	if err != nil {
		return nil, fmt.Errorf("sum contributions: %w", err)
	}
	current := decimal.Zero
	if total.Valid {
		current = total.Decimal.Round(2)
	}
	v := newGoalView(*goal, current)
	return &v, nil
}

func (s *Store) ownedGoal(ctx context.Context, userID string, id uint64) (*models.SavingsGoal, error) {
	var goal models.SavingsGoal
	err := s.conn(ctx).Where("goal_id = ? AND usr_id = ?", id, userID).First(&goal).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, util.NotFound("savings goal")
	}
	if err != nil {
		return nil, fmt.Errorf("get savings goal: %w", err)
	}
	return &goal, nil
}

// SavingsGoalInput is the payload for a new goal. StartDate defaults to
// today.
type SavingsGoalInput struct {
	Name          string
	TargetAmount  decimal.Decimal
	PlannedAmount decimal.NullDecimal
	PlannedCycle  *string
	StartDate     string
	TargetDate    *string
}

// CreateSavingsGoal inserts a goal for the user.
func (s *Store) CreateSavingsGoal(ctx context.Context, userID string, in SavingsGoalInput) (*SavingsGoalView, error) {
	goal := models.SavingsGoal{
		UserID:        userID,
		Name:          strings.TrimSpace(in.Name),
		TargetAmount:  in.TargetAmount,
		PlannedAmount: in.PlannedAmount,
		PlannedCycle:  trimmed(in.PlannedCycle),
		StartDate:     strings.TrimSpace(in.StartDate),
		TargetDate:    trimmed(in.TargetDate),
		UseYN:         models.Yes,
	}
	if goal.StartDate == "" {
		goal.StartDate = s.today()
	}

	if goal.Name == "" {
		return nil, util.Invalid("goal_name", "goal_name is required")
	}
	if err := util.ValidateAmount(goal.TargetAmount); err != nil {
		return nil, util.Invalid("target_amount", "target_amount must be positive")
	}
	if goal.PlannedAmount.Valid && !goal.PlannedAmount.Decimal.IsPositive() {
		return nil, util.Invalid("planned_amount", "planned_amount must be positive")
	}
	if goal.PlannedCycle != nil {
		*goal.PlannedCycle = strings.ToUpper(*goal.PlannedCycle)
		ok, err := s.codeExists(ctx, models.GroupSavingsCycle, *goal.PlannedCycle)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, util.Invalid("planned_cycle", "planned_cycle must be WEEKLY or MONTHLY")
		}
	}
	if err := util.ValidateDate("start_date", goal.StartDate); err != nil {
		return nil, err
	}
	if goal.TargetDate != nil {
		if err := util.ValidateDate("target_date", *goal.TargetDate); err != nil {
			return nil, err
		}
		if *goal.TargetDate < goal.StartDate {
			return nil, util.Invalid("target_date", "target_date must not be before start_date")
		}
	}

	if err := s.conn(ctx).Create(&goal).Error; err != nil {
		return nil, fmt.Errorf("create savings goal: %w", err)
	}
	v := newGoalView(goal, decimal.Zero)
	return &v, nil
}

// ListContributions returns a goal's contributions, newest first.
func (s *Store) ListContributions(ctx context.Context, userID string, goalID uint64) ([]models.SavingsContribution, error) {
	if _, err := s.ownedGoal(ctx, userID, goalID); err != nil {
		return nil, err
	}
	list := []models.SavingsContribution{}
	err := s.conn(ctx).
		Where("goal_id = ?", goalID).
		Order("contribution_date DESC, contribution_id DESC").
		Find(&list).Error
	if err != nil {
		return nil, fmt.Errorf("list contributions: %w", err)
	}
	return list, nil
}

// ContributionInput is the payload of a deposit. Date defaults to today.
type ContributionInput struct {
	Date   string
	Amount decimal.Decimal
	Memo   *string
}

// AddContribution records a deposit towards one of the user's active goals.
func (s *Store) AddContribution(ctx context.Context, userID string, goalID uint64, in ContributionInput) (*models.SavingsContribution, error) {
	goal, err := s.ownedGoal(ctx, userID, goalID)
	if err != nil {
		return nil, err
	}
	if !goal.UseYN.Bool() {
		return nil, util.Invalid("goal_id", "savings goal is inactive")
	}

	c := models.SavingsContribution{
		GoalID: goalID,
		Date:   strings.TrimSpace(in.Date),
		Amount: in.Amount,
		Memo:   trimmed(in.Memo),
	}
	if c.Date == "" {
		c.Date = s.today()
	}
	if err := util.ValidateDate("contribution_date", c.Date); err != nil {
		return nil, err
	}
	if err := util.ValidateAmount(c.Amount); err != nil {
		return nil, err
	}

	if err := s.conn(ctx).Omit(clause.Associations).Create(&c).Error; err != nil {
		return nil, fmt.Errorf("add contribution: %w", err)
	}
	return &c, nil
}
