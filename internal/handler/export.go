package handler

import (
	"encoding/csv"
	"fmt"
	"net/http"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
	"github.com/xuri/excelize/v2"
)

var exportHeaders = []string{"Date", "Type", "Wallet", "Category", "Amount", "Memo", "Fixed", "Installment"}

func exportRow(r store.TransactionView) []string {
	category := r.CategoryCode
	if r.CategoryName != nil {
		category = *r.CategoryName
	}
	memo := ""
	if r.Memo != nil {
		memo = *r.Memo
	}
	installment := ""
	if r.InstallmentSeq != nil && r.InstallmentMonths != nil {
		installment = fmt.Sprintf("%d/%d", *r.InstallmentSeq, *r.InstallmentMonths)
	}
	return []string{
		r.TrxDate,
		r.Type,
		r.WalletName,
		category,
		r.Amount.StringFixed(2),
		memo,
		string(r.IsFixed),
		installment,
	}
}

// Export handles GET /api/transactions/export?format=xlsx|csv with the
// list filters.
func (h *TransactionHandler) Export(c *gin.Context) {
	userID, ok := targetUser(c, c.Query("usr_id"))
	if !ok {
		return
	}
	f, err := filterFromQuery(c, userID)
	if err != nil {
		util.Fail(c, err)
		return
	}

	format := c.DefaultQuery("format", "xlsx")
	if format != "xlsx" && format != "csv" {
		util.Error(c, http.StatusBadRequest, util.CodeInvalidParam, "format must be xlsx or csv")
		return
	}

	rows, err := h.Store.ListTransactions(c.Request.Context(), f)
	if err != nil {
		util.Fail(c, err)
		return
	}

	filename := fmt.Sprintf("transactions_%s.%s", time.Now().Format("20060102"), format)
	if format == "csv" {
		writeCSV(c, filename, rows)
		return
	}
	writeXLSX(c, filename, rows)
}

func writeCSV(c *gin.Context, filename string, rows []store.TransactionView) {
	c.Header("Content-Type", "text/csv; charset=utf-8")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Status(http.StatusOK)

	// UTF-8 BOM
	c.Writer.Write([]byte{0xEF, 0xBB, 0xBF})

	w := csv.NewWriter(c.Writer)
	w.Write(exportHeaders)
	for _, r := range rows {
		w.Write(exportRow(r))
	}
	w.Flush()
}

func writeXLSX(c *gin.Context, filename string, rows []store.TransactionView) {
	f := excelize.NewFile()
	defer f.Close()

	const sheet = "Transactions"
	if _, err := f.NewSheet(sheet); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "failed to create sheet")
		return
	}
	f.DeleteSheet("Sheet1")
	if index, err := f.GetSheetIndex(sheet); err == nil {
		f.SetActiveSheet(index)
	}

	for i, header := range exportHeaders {
		cell, _ := excelize.CoordinatesToCellName(i+1, 1)
		f.SetCellValue(sheet, cell, header)
	}
	for i, r := range rows {
		values := exportRow(r)
		for j, v := range values {
			cell, _ := excelize.CoordinatesToCellName(j+1, i+2)
			if j == 4 {
				// amount column is numeric
				f.SetCellFloat(sheet, cell, r.Amount.InexactFloat64(), 2, 64)
				continue
			}
			f.SetCellValue(sheet, cell, v)
		}
	}

	f.SetColWidth(sheet, "A", "A", 12)
	f.SetColWidth(sheet, "B", "C", 14)
	f.SetColWidth(sheet, "D", "D", 18)
	f.SetColWidth(sheet, "E", "E", 14)
	f.SetColWidth(sheet, "F", "F", 30)

	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	if err := f.Write(c.Writer); err != nil {
		util.Error(c, http.StatusInternalServerError, util.CodeServerErr, "export failed")
	}
}
