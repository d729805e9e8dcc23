package handler

import (
	"strconv"
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"
	"github.com/shopspring/decimal"

	"github.com/gin-gonic/gin"
)

// TransactionHandler serves income/expense records.
type TransactionHandler struct {
	Store *store.Store
}

func NewTransactionHandler(st *store.Store) *TransactionHandler {
	return &TransactionHandler{Store: st}
}

// ---------- request/response shapes ----------

type createTransactionReq struct {
	UserID            string          `json:"usr_id"`
	WalletID          uint64          `json:"wlt_id"`
	Type              string          `json:"trx_type"`
	TrxDate           string          `json:"trx_date"`
	Amount            decimal.Decimal `json:"amount"`
	CategoryCode      string          `json:"category_cd"`
	Memo              *string         `json:"memo"`
	IsFixed           string          `json:"is_fixed"`
	InstallmentMonths int             `json:"installment_months"`
}

// createdTransaction is the first inserted row; split purchases also
// list every installment.
type createdTransaction struct {
	store.TransactionView
	Installments []store.TransactionView `json:"installments,omitempty"`
}

// filterFromQuery reads the list filters shared by List and Export.
func filterFromQuery(c *gin.Context, userID string) (store.TransactionFilter, error) {
	f := store.TransactionFilter{
		UserID:       userID,
		Type:         strings.ToUpper(strings.TrimSpace(c.Query("trx_type"))),
		StartDate:    strings.TrimSpace(c.Query("start_date")),
		EndDate:      strings.TrimSpace(c.Query("end_date")),
		CategoryCode: strings.TrimSpace(c.Query("category_cd")),
	}
	if raw := strings.TrimSpace(c.Query("wlt_id")); raw != "" {
		id, err := strconv.ParseUint(raw, 10, 64)
		if err != nil {
			return f, util.Invalid("wlt_id", "wlt_id must be a number")
		}
		f.WalletID = id
	}
	var err error
	if f.IsFixed, err = queryYN(c, "is_fixed"); err != nil {
		return f, err
	}
	if f.UseYN, err = queryYN(c, "use_yn"); err != nil {
		return f, err
	}
	return f, nil
}

// ---------- handlers ----------

// List handles GET /api/transactions.
func (h *TransactionHandler) List(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	f, err := filterFromQuery(c, userID)
	if err != nil {
		util.Fail(c, err)
		return
	}

	rows, err := h.Store.ListTransactions(c.Request.Context(), f)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, rows)
}

// Create handles POST /api/transactions.
func (h *TransactionHandler) Create(c *gin.Context) {
	var req createTransactionReq
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := targetUser(c, req.UserID)
	if !ok {
		return
	}

	rows, err := h.Store.CreateTransaction(c.Request.Context(), userID, store.TransactionInput{
		WalletID:          req.WalletID,
		Type:              req.Type,
		TrxDate:           strings.TrimSpace(req.TrxDate),
		Amount:            req.Amount,
		CategoryCode:      req.CategoryCode,
		Memo:              req.Memo,
		IsFixed:           yn(req.IsFixed),
		InstallmentMonths: req.InstallmentMonths,
	})
	if err != nil {
		util.Fail(c, err)
		return
	}

	out := createdTransaction{TransactionView: rows[0]}
	if len(rows) > 1 {
		out.Installments = rows
	}
	util.Created(c, out)
}

// Get handles GET /api/transactions/:id, active or not.
func (h *TransactionHandler) Get(c *gin.Context) {
	userID, ok := targetUser(c, "")
	if !ok {
		return
	}

	row, err := h.Store.GetTransaction(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, row)
}

// Delete handles DELETE /api/transactions/:id by flipping use_yn.
func (h *TransactionHandler) Delete(c *gin.Context) {
	userID, ok := targetUser(c, "")
	if !ok {
		return
	}

	id := c.Param("id")
	if err := h.Store.DeleteTransaction(c.Request.Context(), userID, id); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"trx_id": id, "use_yn": models.No})
}
