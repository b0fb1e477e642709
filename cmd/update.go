package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/model"
)

var updateCmd = &cobra.Command{
	Use:   "update <id>",
	Short: "Change fields of a parked vehicle (requires login)",
	Long: `Change fields of a parked vehicle. Only the flags given are applied;
the result is validated like a new entry. Use 'spot list' to find the id.`,
	Example: `  spot update 3f0c... --exit 12:00 --type Paid`,
	Args:    cobra.ExactArgs(1),
	RunE:    runUpdate,
}

func init() {
	f := updateCmd.Flags()
	f.String("owner", "", "Owner name")
	f.String("car", "", "Car model")
	f.String("plate", "", "License plate")
	f.String("entry", "", "Entry time (HH:MM)")
	f.String("exit", "", "Exit time (HH:MM)")
	f.String("date", "", "Date (YYYY-MM-DD)")
	f.String("type", "", "Parking type: Free or Paid")
	f.String("mobile", "", "Mobile number, empty to remove")
}

// patchFromFlags builds a Patch from the flags that were set explicitly.
func patchFromFlags(cmd *cobra.Command) (model.Patch, error) {
	var p model.Patch
	str := func(name string) *string {
		if !cmd.Flags().Changed(name) {
			return nil
		}
		v, _ := cmd.Flags().GetString(name)
		return &v
	}
	p.Owner = str("owner")
	p.Car = str("car")
	p.LicensePlate = str("plate")
	p.EntryTime = str("entry")
	p.ExitTime = str("exit")
	p.Date = str("date")
	p.MobileNumber = str("mobile")
	if raw := str("type"); raw != nil {
		pt, ok := model.ParseParkingType(*raw)
		if !ok {
			return p, fmt.Errorf("unknown parking type %q, use Free or Paid", *raw)
		}
		p.ParkingType = &pt
	}
	return p, nil
}

func runUpdate(cmd *cobra.Command, args []string) error {
	patch, err := patchFromFlags(cmd)
	if err != nil {
		return userError(err)
	}
	if patch.Empty() {
		return userError(errors.New("nothing to update, pass at least one field flag"))
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		if err := a.requireLogin(); err != nil {
			return err
		}
		e, err := a.registry.Update(ctx, args[0], patch)
		if err != nil {
			return classify(err)
		}
		fmt.Fprintf(cmd.OutOrStdout(), "Updated %s (%s). Duration: %s, cost: $%s\n",
			e.LicensePlate, e.Owner, formatHours(e), formatCost(a, e))
		return nil
	})
}
