package handler

import (
	"net/http"

	"github.com/leesanghooooon/moneymate-sub001/internal/middleware"

	"github.com/gin-gonic/gin"
)

// Page renders one of the embedded templates. name is the template file
// without its extension and doubles as the body's data-page marker.
func Page(name, title string) gin.HandlerFunc {
	return func(c *gin.Context) {
		data := gin.H{
			"Title": title,
			"Page":  name,
		}
		if user, ok := middleware.CurrentUser(c); ok {
			data["User"] = user
		}
		c.HTML(http.StatusOK, name+".html", data)
	}
}
