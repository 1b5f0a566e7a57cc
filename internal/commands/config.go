package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long:  `Print the configuration after merging defaults, files and environment`,
	RunE:  runConfigShow,
}

func runConfigShow(cmd *cobra.Command, args []string) error {
	fmt.Println("Server:")
	fmt.Printf("  address:          %s\n", cfg.Server.Address())
	fmt.Printf("  debug:            %v\n", cfg.Server.Debug)
	fmt.Printf("  tls:              %v\n", cfg.Server.TLSEnabled)

	fmt.Println("Store:")
	fmt.Printf("  content_root:     %s\n", cfg.Store.ContentRoot)

	fmt.Println("Bus:")
	fmt.Printf("  buffer_size:      %d\n", cfg.Bus.BufferSize)

	fmt.Println("Diagnostics:")
	fmt.Printf("  history_limit:    %d\n", cfg.Diagnostics.HistoryLimit)

	fmt.Println("Backup:")
	fmt.Printf("  auto_enabled:     %v\n", cfg.Backup.AutoEnabled)
	fmt.Printf("  interval:         %s\n", cfg.Backup.Interval)

	fmt.Println("Security:")
	fmt.Printf("  auth_enabled:     %v\n", cfg.Security.AuthEnabled)
	fmt.Printf("  rate_limit:       %d req/s\n", cfg.Security.RateLimit)
	fmt.Printf("  api_keys:         %d configured\n", len(cfg.Security.APIKeys))
	fmt.Printf("  jwt_expiration:   %s\n", cfg.Security.JWTExpiration)

	fmt.Println("Logging:")
	fmt.Printf("  level:            %s\n", cfg.Logging.Level)
	fmt.Printf("  format:           %s\n", cfg.Logging.Format)

	return nil
}
