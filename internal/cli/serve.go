package cli

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/leesanghooooon/moneymate-sub001/internal/database"
	"github.com/leesanghooooon/moneymate-sub001/internal/router"
	"github.com/leesanghooooon/moneymate-sub001/internal/store"
	"github.com/spf13/cobra"
)

const shutdownTimeout = 30 * time.Second

func newServeCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Run the HTTP server",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()

			a, err := bootstrap(ctx, *cfgPath)
			if err != nil {
				return err
			}
			defer database.Close(a.db)

			st := store.New(a.db, store.WithBcryptCost(a.cfg.Security.BcryptCost))
			srv := &http.Server{
				Addr:              fmt.Sprintf("%s:%d", a.cfg.Server.Address, a.cfg.Server.Port),
				Handler:           router.SetupRouter(a.cfg, st, a.log),
				ReadHeaderTimeout: 10 * time.Second,
			}

			errCh := make(chan error, 1)
			go func() {
				a.log.Info().Str("addr", srv.Addr).Msg("server listening")
				if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
					errCh <- err
				}
				close(errCh)
			}()

			select {
			case err := <-errCh:
				return fmt.Errorf("run server: %w", err)
			case <-ctx.Done():
			}

			a.log.Info().Msg("shutdown signal received")
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				return fmt.Errorf("shutdown: %w", err)
			}
			a.log.Info().Msg("shutdown complete")
			return nil
		},
	}
}
