package handler

import (
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// WalletHandler serves wallet CRUD for the logged-in owner.
type WalletHandler struct {
	Store *store.Store
}

func NewWalletHandler(st *store.Store) *WalletHandler {
	return &WalletHandler{Store: st}
}

type createWalletReq struct {
	UserID     string  `json:"usr_id"`
	Type       string  `json:"wlt_type"`
	Name       string  `json:"wlt_name"`
	BankCode   *string `json:"bank_cd"`
	CardNumber *string `json:"card_number"`
	IsDefault  string  `json:"is_default"`
	UseYN      string  `json:"use_yn"`
	ShareYN    string  `json:"share_yn"`
}

type updateWalletReq struct {
	Type       *string `json:"wlt_type"`
	Name       *string `json:"wlt_name"`
	BankCode   *string `json:"bank_cd"`
	CardNumber *string `json:"card_number"`
	IsDefault  *string `json:"is_default"`
	UseYN      *string `json:"use_yn"`
	ShareYN    *string `json:"share_yn"`
}

// List handles GET /api/wallets?usr_id&use_yn&wlt_type.
func (h *WalletHandler) List(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	useYN, err := queryYN(c, "use_yn")
	if err != nil {
		util.Fail(c, err)
		return
	}

	wallets, err := h.Store.ListWallets(c.Request.Context(), store.WalletFilter{
		UserID: userID,
		UseYN:  useYN,
		Type:   c.Query("wlt_type"),
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, wallets)
}

// Create handles POST /api/wallets.
func (h *WalletHandler) Create(c *gin.Context) {
	var req createWalletReq
	if !bindJSON(c, &req) {
		return
	}
	userID, ok := targetUser(c, req.UserID)
	if !ok {
		return
	}

	wallet, err := h.Store.CreateWallet(c.Request.Context(), userID, store.WalletInput{
		Type:       req.Type,
		Name:       req.Name,
		BankCode:   req.BankCode,
		CardNumber: req.CardNumber,
		IsDefault:  yn(req.IsDefault),
		UseYN:      yn(req.UseYN),
		ShareYN:    yn(req.ShareYN),
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Created(c, wallet)
}

// Get handles GET /api/wallets/:id; deleted wallets are still returned.
func (h *WalletHandler) Get(c *gin.Context) {
	userID, ok := targetUser(c, "")
	if !ok {
		return
	}
	id, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	wallet, err := h.Store.GetWallet(c.Request.Context(), userID, id)
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, wallet)
}

// Update handles PUT /api/wallets/:id as a partial update.
func (h *WalletHandler) Update(c *gin.Context) {
	userID, ok := targetUser(c, "")
	if !ok {
		return
	}
	id, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}
	var req updateWalletReq
	if !bindJSON(c, &req) {
		return
	}

	wallet, err := h.Store.UpdateWallet(c.Request.Context(), userID, id, store.WalletPatch{
		Type:       req.Type,
		Name:       req.Name,
		BankCode:   req.BankCode,
		CardNumber: req.CardNumber,
		IsDefault:  ynPtr(req.IsDefault),
		UseYN:      ynPtr(req.UseYN),
		ShareYN:    ynPtr(req.ShareYN),
	})
	if err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, wallet)
}

// Delete handles DELETE /api/wallets/:id by flipping use_yn.
func (h *WalletHandler) Delete(c *gin.Context) {
	userID, ok := targetUser(c, "")
	if !ok {
		return
	}
	id, err := pathID(c)
	if err != nil {
		util.Fail(c, err)
		return
	}

	if err := h.Store.DeleteWallet(c.Request.Context(), userID, id); err != nil {
		util.Fail(c, err)
		return
	}
	util.Success(c, util.Response{"wlt_id": id, "use_yn": "N"})
}
