package handler

import (
	"context"
	"net"
	"net/http"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/config"
	"github.com/leesanghooooon/moneymate-sub001/internal/logger"

	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
)

// Pinger is the database round-trip the health check depends on.
type Pinger interface {
	Ping(ctx context.Context) error
}

// HealthHandler reports reachability of the database, DNS and an outbound port.
type HealthHandler struct {
	DB       Pinger
	DNSHost  string
	TCPAddr  string
	Timeout  time.Duration
	Resolver *net.Resolver
	Dialer   *net.Dialer
}

func NewHealthHandler(db Pinger, cfg config.HealthConfig) *HealthHandler {
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	return &HealthHandler{
		DB:       db,
		DNSHost:  cfg.DNSHost,
		TCPAddr:  cfg.TCPAddr,
		Timeout:  timeout,
		Resolver: net.DefaultResolver,
		Dialer:   &net.Dialer{},
	}
}

type checkResult struct {
	Status  string `json:"status"`
	Latency string `json:"latency"`
	Error   string `json:"error,omitempty"`
}

func runCheck(ctx context.Context, timeout time.Duration, fn func(context.Context) error) checkResult {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()

	start := time.Now()
	err := fn(ctx)
	res := checkResult{Status: "ok", Latency: time.Since(start).String()}
	if err != nil {
		res.Status = "failed"
		res.Error = err.Error()
	}
	return res
}

// Check handles GET /api/health. DNS and port results are advisory;
// only the database decides between 200 and 503.
func (h *HealthHandler) Check(c *gin.Context) {
	ctx := c.Request.Context()
	var dbRes, dnsRes, tcpRes checkResult

	// each check records its own failure, so the group never cancels early
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		dbRes = runCheck(gctx, h.Timeout, h.DB.Ping)
		return nil
	})
	g.Go(func() error {
		dnsRes = h.optional(gctx, h.DNSHost, func(ctx context.Context) error {
			_, err := h.Resolver.LookupHost(ctx, h.DNSHost)
			return err
		})
		return nil
	})
	g.Go(func() error {
		tcpRes = h.optional(gctx, h.TCPAddr, func(ctx context.Context) error {
			conn, err := h.Dialer.DialContext(ctx, "tcp", h.TCPAddr)
			if err != nil {
				return err
			}
			return conn.Close()
		})
		return nil
	})
	_ = g.Wait()

	status, httpStatus := "ok", http.StatusOK
	if dbRes.Status != "ok" {
		status, httpStatus = "unavailable", http.StatusServiceUnavailable
		log := logger.FromContext(ctx)
		log.Error().Str("error", dbRes.Error).Msg("health check: database unreachable")
	}

	c.JSON(httpStatus, gin.H{
		"status":    status,
		"timestamp": time.Now().Format(time.RFC3339),
		"checks": gin.H{
			"database": dbRes,
			"dns":      dnsRes,
			"tcp":      tcpRes,
		},
	})
}

func (h *HealthHandler) optional(ctx context.Context, target string, fn func(context.Context) error) checkResult {
	if target == "" {
		return checkResult{Status: "skipped", Latency: "0s"}
	}
	return runCheck(ctx, h.Timeout, fn)
}
