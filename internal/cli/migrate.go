package cli

import (
	"github.com/leesanghooooon/moneymate-sub001/internal/database"
	"github.com/spf13/cobra"
)

func newMigrateCmd(cfgPath *string) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create tables, seed common codes and calendar days, then exit",
		RunE: func(cmd *cobra.Command, _ []string) error {
			a, err := bootstrap(cmd.Context(), *cfgPath)
			if err != nil {
				return err
			}
			return database.Close(a.db)
		},
	}
}
