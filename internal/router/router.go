package router

import (
	"html/template"
	"io/fs"
	"net/http"

	"github.com/leesanghooooon/moneymate-sub001/internal/config"
	"github.com/leesanghooooon/moneymate-sub001/internal/handler"
	"github.com/leesanghooooon/moneymate-sub001/internal/middleware"
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/leesanghooooon/moneymate-sub001/web"
	"github.com/rs/zerolog"

	"github.com/gin-gonic/gin"
)

// SetupRouter configures the Gin engine, embedded pages and the JSON API.
func SetupRouter(cfg *config.Config, st *store.Store, log zerolog.Logger) *gin.Engine {
	if cfg.Server.Mode != "" {
		gin.SetMode(cfg.Server.Mode)
	}
	r := gin.New()
	r.Use(middleware.RequestLogger(log), gin.Recovery())

	// templates and static files
	r.SetHTMLTemplate(template.Must(template.ParseFS(web.TemplatesFS, "templates/*.html")))
	static, err := fs.Sub(web.StaticFS, "static")
	if err != nil {
		panic(err)
	}
	r.StaticFS("/static", http.FS(static))

	auth := middleware.NewAuth(cfg.JWT.Secret, cfg.Security.CookieName, st)

	// ====== pages ======
	guest := r.Group("")
	guest.Use(auth.Guest())
	guest.GET("/login", handler.Page("login", "Log in"))
	guest.GET("/signup", handler.Page("signup", "Sign up"))

	pages := r.Group("")
	pages.Use(auth.Page())
	pages.GET("/", handler.Page("home", "Calendar"))
	pages.GET("/wallets", handler.Page("wallets", "Wallets"))
	pages.GET("/transactions", handler.Page("transactions", "Transactions"))

	// ====== API ======
	api := r.Group("/api")

	authHandler := handler.NewAuthHandler(st, cfg.JWT.Secret, cfg.JWT.Issuer, cfg.TokenTTL(),
		cfg.Security.CookieName, cfg.Security.CookieSecure)
	userHandler := handler.NewUserHandler(st)
	healthHandler := handler.NewHealthHandler(st, cfg.Health)

	// no login required
	api.POST("/users", userHandler.Signup)
	api.POST("/auth/login", authHandler.Login)
	api.GET("/health", healthHandler.Check)

	protected := api.Group("")
	protected.Use(
		auth.API(),
		middleware.AuditMiddleware(st),
	)

	protected.POST("/auth/logout", authHandler.Logout)
	protected.GET("/auth/session", authHandler.Session)

	protected.GET("/users/:id", userHandler.Get)
	protected.POST("/users/:id", userHandler.CheckCredentials)

	protected.PUT("/profile", handler.UpdateProfile(st))
	protected.POST("/profile/password", handler.ChangePassword(st))
	protected.POST("/profile/deactivate", handler.DeactivateAccount(st, cfg.Security.CookieName, cfg.Security.CookieSecure))

	walletHandler := handler.NewWalletHandler(st)
	protected.GET("/wallets", walletHandler.List)
	protected.POST("/wallets", walletHandler.Create)
	protected.GET("/wallets/:id", walletHandler.Get)
	protected.PUT("/wallets/:id", walletHandler.Update)
	protected.DELETE("/wallets/:id", walletHandler.Delete)

	trxHandler := handler.NewTransactionHandler(st)
	protected.GET("/transactions", trxHandler.List)
	protected.POST("/transactions", trxHandler.Create)
	protected.GET("/transactions/export", trxHandler.Export)
	protected.GET("/transactions/:id", trxHandler.Get)
	protected.DELETE("/transactions/:id", trxHandler.Delete)

	calendarHandler := handler.NewCalendarHandler(st)
	protected.GET("/calendar", calendarHandler.Month)

	statsHandler := handler.NewStatsHandler(st)
	protected.GET("/stats/monthly-expenses", statsHandler.MonthlyExpenses)
	protected.GET("/stats/weekly-expenses", statsHandler.WeeklyExpenses)
	protected.GET("/stats/wallet-expenses", statsHandler.WalletExpenses)
	protected.GET("/expenses/monthly-by-wallets", statsHandler.MonthlyByWallets)

	protected.GET("/common-codes", handler.ListCommonCodes(st))

	groupHandler := handler.NewShareGroupHandler(st)
	protected.GET("/share-groups", groupHandler.List)
	protected.POST("/share-groups", groupHandler.Create)
	protected.POST("/share-groups/:id/members", groupHandler.Invite)
	protected.PUT("/share-groups/:id/members/me", groupHandler.Respond)

	savingsHandler := handler.NewSavingsHandler(st)
	protected.GET("/savings-goals", savingsHandler.List)
	protected.POST("/savings-goals", savingsHandler.Create)
	protected.GET("/savings-goals/:id/contributions", savingsHandler.Contributions)
	protected.POST("/savings-goals/:id/contributions", savingsHandler.Contribute)

	logHandler := handler.NewLogHandler(st)
	protected.GET("/audit-logs", logHandler.ListLogs)

	return r
}
