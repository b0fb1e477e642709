package cmd

import (
	"context"
	"fmt"
	"io"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/billing"
	"github.com/Tiliavir/spotsecure/internal/export"
	"github.com/Tiliavir/spotsecure/internal/model"
	"github.com/Tiliavir/spotsecure/internal/registry"
	"github.com/Tiliavir/spotsecure/internal/timecalc"
)

var (
	listSearch string
	listFormat string
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List parked vehicles",
	Args:  cobra.NoArgs,
	RunE:  runList,
}

func init() {
	listCmd.Flags().StringVar(&listSearch, "search", "", "Only show entries containing this text")
	listCmd.Flags().StringVar(&listFormat, "format", "table", "Output format: table, json")
}

func runList(cmd *cobra.Command, args []string) error {
	if listFormat != "table" && listFormat != "json" {
		return userError(fmt.Errorf("unknown format %q, use table or json", listFormat))
	}

	return withApp(cmd, func(ctx context.Context, a *app) error {
		entries, err := a.registry.List(ctx)
		if err != nil {
			return storageError(err)
		}
		entries = registry.Search(entries, listSearch)

		if listFormat == "json" {
			if err := export.WriteJSON(cmd.OutOrStdout(), entries); err != nil {
				return storageError(err)
			}
			return nil
		}
		printList(cmd.OutOrStdout(), entries, a.engine)
		return nil
	})
}

// printList prints entries as an aligned table.
func printList(out io.Writer, entries []model.Entry, engine billing.Engine) {
	if len(entries) == 0 {
		fmt.Fprintln(out, "No entries found.")
		return
	}

	tw := tabwriter.NewWriter(out, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tOWNER\tCAR\tPLATE\tDATE\tENTRY\tEXIT\tTYPE\tMOBILE\tDURATION\tCOST")
	for _, e := range entries {
		mobile := e.MobileNumber
		if mobile == "" {
			mobile = "-"
		}
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t%s\t$%s\n",
			e.ID, e.Owner, e.Car, e.LicensePlate, e.Date, e.EntryTime, e.ExitTime,
			e.ParkingType, mobile,
			timecalc.FormatHours(billing.Duration(e)),
			export.FormatAmount(engine.Cost(e)),
		)
	}
	_ = tw.Flush()
}

func formatHours(e model.Entry) string {
	return timecalc.FormatHours(billing.Duration(e))
}

func formatCost(a *app, e model.Entry) string {
	return export.FormatAmount(a.engine.Cost(e))
}
