package cmd

import (
	"context"
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/notify"
	"github.com/Tiliavir/spotsecure/internal/timecalc"
)

var (
	addEntry  string
	addExit   string
	addDate   string
	addType   string
	addMobile string
)

var addCmd = &cobra.Command{
	Use:   "add <owner> <car> <license-plate>",
	Short: "Register a parked vehicle",
	Long: `Register a parked vehicle. The license plate must look like LL-NN-NN,
NN-LL-NN or NN-NN-LL. When a mobile number is given a confirmation push
message is sent to it.`,
	Example: `  spot add "Jane Doe" "VW Golf" AB-12-34 --entry 08:00 --exit 10:30 --type Paid --mobile 0612345678`,
	Args:    cobra.ExactArgs(3),
	RunE:    runAdd,
}

func init() {
	addCmd.Flags().StringVar(&addEntry, "entry", "", "Entry time (HH:MM)")
	addCmd.Flags().StringVar(&addExit, "exit", "", "Exit time (HH:MM)")
	addCmd.Flags().StringVar(&addDate, "date", "", "Date (YYYY-MM-DD, default today)")
	addCmd.Flags().StringVar(&addType, "type", string(model.Free), "Parking type: Free or Paid")
	addCmd.Flags().StringVar(&addMobile, "mobile", "", "Mobile number for the confirmation (10 digits)")
	_ = addCmd.MarkFlagRequired("entry")
	_ = addCmd.MarkFlagRequired("exit")
}

func runAdd(cmd *cobra.Command, args []string) error {
	pt, ok := model.ParseParkingType(addType)
	if !ok {
		return userError(fmt.Errorf("unknown parking type %q, use Free or Paid", addType))
	}
	date := addDate
	if date == "" {
		date = timecalc.Today(time.Now())
	}

	draft := model.Draft{
		Owner:        args[0],
		Car:          args[1],
		LicensePlate: args[2],
		EntryTime:    addEntry,
		ExitTime:     addExit,
		Date:         date,
		ParkingType:  pt,
		MobileNumber: addMobile,
	}.Normalize()

	return withApp(cmd, func(ctx context.Context, a *app) error {
		entry, err := a.registry.Create(ctx, draft)
		if err != nil {
			return classify(err)
		}

		d := notify.NewDispatcher(a.notifier, a.log)
		d.Dispatch(ctx, entry)

		fmt.Fprintf(cmd.OutOrStdout(), "Added %s (%s, %s) with id %s. Duration: %s, cost: $%s\n",
			entry.LicensePlate, entry.Owner, entry.ParkingType, entry.ID,
			formatHours(entry), formatCost(a, entry))

		for _, o := range d.Wait() {
			if o.Err != nil {
				printWarning(cmd, "could not send confirmation to %s: %v", entry.MobileNumber, o.Err)
			}
		}
		return nil
	})
}
