package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/billing"
	"github.com/Tiliavir/spotsecure/internal/export"
)

var statsFormat string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Show occupancy and revenue",
	Args:  cobra.NoArgs,
	RunE:  runStats,
}

func init() {
	statsCmd.Flags().StringVar(&statsFormat, "format", "md", "Output format: md, csv, json")
}

func runStats(cmd *cobra.Command, args []string) error {
	return withApp(cmd, func(ctx context.Context, a *app) error {
		entries, err := a.registry.List(ctx)
		if err != nil {
			return storageError(err)
		}
		if err := printStats(cmd.OutOrStdout(), a.engine.Aggregate(entries), statsFormat); err != nil {
			return userError(err)
		}
		return nil
	})
}

func printStats(out io.Writer, s billing.Stats, format string) error {
	switch format {
	case "csv":
		fmt.Fprintln(out, "metric,value")
		fmt.Fprintf(out, "total_vehicles,%d\n", s.TotalCount)
		fmt.Fprintf(out, "paid,%d\n", s.PaidCount)
		fmt.Fprintf(out, "free,%d\n", s.FreeCount)
		fmt.Fprintf(out, "revenue,%s\n", export.FormatAmount(s.TotalRevenue))
		fmt.Fprintf(out, "occupancy_percent,%.1f\n", s.OccupancyRate)
		fmt.Fprintf(out, "capacity,%d\n", s.Capacity)
	case "json":
		enc := json.NewEncoder(out)
		enc.SetIndent("", "  ")
		if err := enc.Encode(s); err != nil {
			return fmt.Errorf("error encoding JSON: %w", err)
		}
	case "md":
		fmt.Fprintln(out, "Parking statistics")
		fmt.Fprintln(out, "--------------------------------")
		fmt.Fprintf(out, "%-20s%d\n", "Total vehicles", s.TotalCount)
		fmt.Fprintf(out, "%-20s%d\n", "Paid", s.PaidCount)
		fmt.Fprintf(out, "%-20s%d\n", "Free", s.FreeCount)
		fmt.Fprintf(out, "%-20s$%s\n", "Revenue", export.FormatAmount(s.TotalRevenue))
		fmt.Fprintln(out, "--------------------------------")
		fmt.Fprintf(out, "%-20s%.1f%% (%d/%d)\n", "Occupancy", s.OccupancyRate, s.TotalCount, s.Capacity)
	default:
		return fmt.Errorf("unknown format %q, use md, csv or json", format)
	}
	return nil
}
