package cmd

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Tiliavir/spotsecure/internal/config"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the config file location and environment overrides",
	Args:  cobra.NoArgs,
	RunE:  runConfig,
}

func runConfig(cmd *cobra.Command, args []string) error {
	path := configPath
	if path == "" {
		p, err := config.DefaultPath()
		if err != nil {
			return storageError(err)
		}
		path = p
	}
	cfg, err := config.Load(path)
	if err != nil {
		return userError(err)
	}
	help, err := config.Help()
	if err != nil {
		return userError(err)
	}

	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Config file: %s\n", path)
	fmt.Fprintf(out, "Storage:     %s\n", cfg.Storage.Backend)
	fmt.Fprintf(out, "Capacity:    %d\n", cfg.Billing.Capacity)
	fmt.Fprintf(out, "Rate:        $%v per hour\n", cfg.Billing.RatePerHour)
	if cfg.Notify.AppKey == "" {
		fmt.Fprintln(out, "Notify:      disabled")
	} else {
		fmt.Fprintf(out, "Notify:      %s\n", cfg.Notify.BaseURL)
	}
	fmt.Fprintln(out)
	fmt.Fprint(out, help)
	return nil
}
