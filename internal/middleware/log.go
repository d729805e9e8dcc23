package middleware

import (
	"github.com/leesanghooooon/moneymate-sub001/internal/logger"
	"github.com/leesanghooooon/moneymate-sub001/internal/models"
	"github.com/leesanghooooon/moneymate-sub001/internal/store"

	"github.com/gin-gonic/gin"
)

// AuditMiddleware records authenticated write requests after they complete.
func AuditMiddleware(st *store.Store) gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		switch c.Request.Method {
		case "POST", "PUT", "PATCH", "DELETE":
		default:
			return
		}

		// only logged-in users are audited
		user, ok := CurrentUser(c)
		if !ok {
			return
		}

		path := c.Request.URL.Path
		if len(path) > 255 {
			path = path[:255]
		}
		ua := c.Request.UserAgent()
		if len(ua) > 255 {
			ua = ua[:255]
		}

		entry := &models.AuditLog{
			UserID:    user.UserID,
			Method:    c.Request.Method,
			Path:      path,
			Status:    c.Writer.Status(),
			IP:        c.ClientIP(),
			UserAgent: ua,
		}
		ctx := c.Request.Context()
		if err := st.RecordAudit(ctx, entry); err != nil {
			log := logger.FromContext(ctx)
			log.Error().Err(err).Str("path", path).Msg("failed to record audit entry")
		}
	}
}
