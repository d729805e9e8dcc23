package handler

import (
	"strings"

	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/internal/util"

	"github.com/gin-gonic/gin"
)

// ListCommonCodes handles GET /api/common-codes?grp_cd&use_yn.
func ListCommonCodes(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		useYN, err := queryYN(c, "use_yn")
		if err != nil {
			util.Fail(c, err)
			return
		}
		group := strings.ToUpper(strings.TrimSpace(c.Query("grp_cd")))

		codes, err := st.ListCommonCodes(c.Request.Context(), group, useYN)
		if err != nil {
			util.Fail(c, err)
			return
		}
		util.Success(c, codes)
	}
}
