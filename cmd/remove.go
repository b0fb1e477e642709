package cmd

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <license-plate|id>",
	Aliases: []string{"rm"},
	Short:   "Remove a vehicle from the lot (requires login)",
	Args:    cobra.ExactArgs(1),
	RunE:    runRemove,
}

func runRemove(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		e, err := a.registry.Delete(ctx, args[0])
		if err != nil {
			return classify(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Removed %s (%s). Parked %s, cost: $%s\n",
			e.LicensePlate, e.Owner, formatHours(e), formatCost(a, e))
		return nil
	})
}
